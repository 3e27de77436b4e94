package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStartedMessageForWorkTreeProbe(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"rev-parse", "--is-inside-work-tree"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	require.Equal(t, "Analyzing repository at /workspace/repo", formatter.BuildStartedMessage(command))
}

func TestBuildSuccessMessageForRemoteLookupIncludesURL(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments: []string{"remote", "get-url", "origin"},
		},
	}

	message := formatter.BuildSuccessMessage(command, ExecutionResult{StandardOutput: "git@github.com:acme/widgets.git\n"})

	require.Equal(t, "origin remote for current directory points to git@github.com:acme/widgets.git", message)
}

func TestBuildFailureMessageForPullRequestSearchIncludesStandardError(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGitHub,
		Details: CommandDetails{
			Arguments: []string{"pr", "list", "--search", "abc123", "--state", "all", "--json", "number", "--repo", "acme/widgets"},
		},
	}

	message := formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 1, StandardError: "HTTP 404\n"})

	require.Equal(t, "Failed to search all pull requests in acme/widgets for abc123 (exit code 1: HTTP 404)", message)
}

func TestBuildStartedMessageForPullRequestView(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGitHub,
		Details: CommandDetails{
			Arguments: []string{"pr", "view", "42", "--repo", "acme/widgets", "--json", "number"},
		},
	}

	require.Equal(t, "Retrieving pull request #42 from acme/widgets", formatter.BuildStartedMessage(command))
}

func TestBuildExecutionFailureMessageForCommitRead(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGitHub,
		Details: CommandDetails{
			Arguments: []string{"api", "repos/acme/widgets/commits/abc123", "--jq", ".commit.message"},
		},
	}

	message := formatter.BuildExecutionFailureMessage(command, errors.New("executable file not found"))

	require.Equal(t, "Unable to read commit abc123 from acme/widgets: executable file not found", message)
}

func TestBuildStartedMessageFallsBackToGenericLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"--version"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	require.Equal(t, "Running git --version (in /workspace/repo)", formatter.BuildStartedMessage(command))
}
