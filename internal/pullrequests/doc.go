// Package pullrequests resolves pull request details from a commit reference or
// a pull request number.
//
// Resolver determines the target repository, walks an ordered list of number
// strategies for commit lookups, and assembles Details from the code host
// record. Repository state and code host access are supplied through narrow
// interfaces so both can be replaced in tests.
package pullrequests
