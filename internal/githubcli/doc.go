// Package githubcli wraps the GitHub CLI for pull request lookups.
//
// It layers typed request and response structures over gh pr list, gh pr view
// and gh api, and integrates with execshell so interactions with GitHub can be
// stubbed during testing.
package githubcli
