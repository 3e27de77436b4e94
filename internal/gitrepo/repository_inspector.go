package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/commit-to-pr-mcp/internal/execshell"
)

const (
	gitRevParseSubcommandConstant            = "rev-parse"
	gitInsideWorkTreeFlagConstant            = "--is-inside-work-tree"
	gitRemoteSubcommandConstant              = "remote"
	gitGetURLSubcommandConstant              = "get-url"
	gitInsideWorkTreeTrueValueConstant       = "true"
	gitTerminalPromptEnvironmentNameConstant = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptDisabledValueConstant   = "0"
	executorNotConfiguredMessageConstant     = "git executor not configured"
	remoteNameFieldConstant                  = "remote name"
	emptyRemoteURLMessageConstant            = "remote url is empty"
)

// ErrExecutorNotConfigured indicates the inspector was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// GitCommandExecutor is the subset of execshell.ShellExecutor used for git.
type GitCommandExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryInspector reads working tree state through the git CLI.
type RepositoryInspector struct {
	executor GitCommandExecutor
}

// NewRepositoryInspector constructs a RepositoryInspector.
func NewRepositoryInspector(executor GitCommandExecutor) (*RepositoryInspector, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryInspector{executor: executor}, nil
}

// IsWorkingTree reports whether directory lies inside a Git work tree. An empty
// directory means the process working directory. Any git failure yields false.
func (inspector *RepositoryInspector) IsWorkingTree(executionContext context.Context, directory string) bool {
	executionResult, executionError := inspector.executor.ExecuteGit(executionContext, inspector.commandDetails(directory, gitRevParseSubcommandConstant, gitInsideWorkTreeFlagConstant))
	if executionError != nil {
		return false
	}
	return strings.TrimSpace(executionResult.StandardOutput) == gitInsideWorkTreeTrueValueConstant
}

// RemoteURL returns the URL configured for remoteName in directory.
func (inspector *RepositoryInspector) RemoteURL(executionContext context.Context, directory string, remoteName string) (string, error) {
	trimmedRemoteName := strings.TrimSpace(remoteName)
	if len(trimmedRemoteName) == 0 {
		return "", RemoteURLParseError{Input: remoteNameFieldConstant, Message: requiredValueMessageConstant}
	}

	executionResult, executionError := inspector.executor.ExecuteGit(executionContext, inspector.commandDetails(directory, gitRemoteSubcommandConstant, gitGetURLSubcommandConstant, trimmedRemoteName))
	if executionError != nil {
		return "", executionError
	}

	remoteURL := strings.TrimSpace(executionResult.StandardOutput)
	if len(remoteURL) == 0 {
		return "", RemoteURLParseError{Input: trimmedRemoteName, Message: emptyRemoteURLMessageConstant}
	}
	return remoteURL, nil
}

func (inspector *RepositoryInspector) commandDetails(directory string, arguments ...string) execshell.CommandDetails {
	return execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     strings.TrimSpace(directory),
		EnvironmentVariables: map[string]string{gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptDisabledValueConstant},
	}
}
