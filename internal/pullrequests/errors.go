package pullrequests

import (
	"errors"
	"fmt"
)

const (
	configurationErrorMessageConstant     = "No repository specified and not in a git repository. Please provide the 'repo' parameter in owner/repo format, or the 'cwd' parameter pointing to a git repository."
	notFoundErrorTemplateConstant         = "No PR found for commit: %s in %s. This commit may not be associated with any pull request."
	inspectorNotConfiguredMessageConstant = "repository inspector not configured"
	clientNotConfiguredMessageConstant    = "code host client not configured"
	unsupportedLookupTemplateConstant     = "unsupported lookup %T"
)

var (
	// ErrInspectorNotConfigured indicates the resolver was constructed without a repository inspector.
	ErrInspectorNotConfigured = errors.New(inspectorNotConfiguredMessageConstant)
	// ErrClientNotConfigured indicates the resolver was constructed without a code host client.
	ErrClientNotConfigured = errors.New(clientNotConfiguredMessageConstant)
)

// ConfigurationError reports that no repository could be determined for a lookup.
type ConfigurationError struct {
	WorkingDirectory string
	Cause            error
}

// Error describes how to supply a repository.
func (configurationError ConfigurationError) Error() string {
	return configurationErrorMessageConstant
}

// Unwrap exposes the remote lookup failure, when there was one.
func (configurationError ConfigurationError) Unwrap() error {
	return configurationError.Cause
}

// NotFoundError reports that every number strategy came up empty for a commit.
type NotFoundError struct {
	Commit     string
	Repository string
}

// Error names the commit and the repository that were searched.
func (notFoundError NotFoundError) Error() string {
	return fmt.Sprintf(notFoundErrorTemplateConstant, notFoundError.Commit, notFoundError.Repository)
}

type unsupportedLookupError struct {
	lookup Lookup
}

func (lookupError unsupportedLookupError) Error() string {
	return fmt.Sprintf(unsupportedLookupTemplateConstant, lookupError.lookup)
}
