// Package cli constructs the commit-to-pr-mcp command-line interface. The root
// command serves the get_pr tool over stdio; the lookup subcommand runs the
// same resolution once and prints the result. Both share the Viper backed
// configuration and the zap logger built here.
package cli
