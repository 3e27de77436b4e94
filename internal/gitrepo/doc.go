// Package gitrepo interrogates local Git working trees.
//
// RepositoryInspector answers whether a directory belongs to a work tree and
// which URL a remote points to, and ParseRepositoryIdentifier reduces SSH and
// HTTPS remote URLs to the owner/name form understood by the GitHub CLI.
package gitrepo
