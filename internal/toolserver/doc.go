// Package toolserver exposes the get_pr tool over the Model Context Protocol.
//
// Server registers the tool descriptor with the MCP SDK, validates loosely
// typed call arguments into pullrequests lookups, serializes calls and turns
// every failure into an error-flagged text result so a single bad call never
// takes the process down.
package toolserver
