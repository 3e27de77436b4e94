package gitrepo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/commit-to-pr-mcp/internal/execshell"
	"github.com/temirov/commit-to-pr-mcp/internal/gitrepo"
)

const (
	testWorkingDirectoryConstant     = "/work/widgets"
	testRemoteNameConstant           = "origin"
	testRemoteURLConstant            = "git@github.com:acme/widgets.git"
	testInsideWorkTreeCaseConstant   = "inside_work_tree"
	testOutsideWorkTreeCaseConstant  = "outside_work_tree"
	testUnexpectedOutputCaseConstant = "unexpected_output"
)

type stubGitExecutor struct {
	executionResult execshell.ExecutionResult
	executionError  error
	recordedDetails []execshell.CommandDetails
}

func (executor *stubGitExecutor) ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	return executor.executionResult, executor.executionError
}

func TestNewRepositoryInspectorRequiresExecutor(testInstance *testing.T) {
	inspector, creationError := gitrepo.NewRepositoryInspector(nil)
	require.ErrorIs(testInstance, creationError, gitrepo.ErrExecutorNotConfigured)
	require.Nil(testInstance, inspector)
}

func TestRepositoryInspectorIsWorkingTree(testInstance *testing.T) {
	testCases := []struct {
		name           string
		result         execshell.ExecutionResult
		executionError error
		expected       bool
	}{
		{
			name:     testInsideWorkTreeCaseConstant,
			result:   execshell.ExecutionResult{StandardOutput: "true\n"},
			expected: true,
		},
		{
			name: testOutsideWorkTreeCaseConstant,
			executionError: execshell.CommandFailedError{
				Command: execshell.ShellCommand{Name: execshell.CommandGit},
				Result:  execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal: not a git repository"},
			},
			expected: false,
		},
		{
			name:     testUnexpectedOutputCaseConstant,
			result:   execshell.ExecutionResult{StandardOutput: "false\n"},
			expected: false,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &stubGitExecutor{executionResult: testCase.result, executionError: testCase.executionError}
			inspector, creationError := gitrepo.NewRepositoryInspector(executor)
			require.NoError(testInstance, creationError)

			require.Equal(testInstance, testCase.expected, inspector.IsWorkingTree(context.Background(), testWorkingDirectoryConstant))
			require.Len(testInstance, executor.recordedDetails, 1)
			require.Equal(testInstance, []string{"rev-parse", "--is-inside-work-tree"}, executor.recordedDetails[0].Arguments)
			require.Equal(testInstance, testWorkingDirectoryConstant, executor.recordedDetails[0].WorkingDirectory)
			require.Equal(testInstance, "0", executor.recordedDetails[0].EnvironmentVariables["GIT_TERMINAL_PROMPT"])
		})
	}
}

func TestRepositoryInspectorRemoteURL(testInstance *testing.T) {
	executor := &stubGitExecutor{executionResult: execshell.ExecutionResult{StandardOutput: testRemoteURLConstant + "\n"}}
	inspector, creationError := gitrepo.NewRepositoryInspector(executor)
	require.NoError(testInstance, creationError)

	remoteURL, remoteError := inspector.RemoteURL(context.Background(), testWorkingDirectoryConstant, testRemoteNameConstant)
	require.NoError(testInstance, remoteError)
	require.Equal(testInstance, testRemoteURLConstant, remoteURL)
	require.Equal(testInstance, []string{"remote", "get-url", testRemoteNameConstant}, executor.recordedDetails[0].Arguments)
}

func TestRepositoryInspectorRemoteURLFailures(testInstance *testing.T) {
	executionFailure := errors.New("no such remote")

	testCases := []struct {
		name            string
		remoteName      string
		executor        *stubGitExecutor
		expectedCalls   int
		expectedErrorIs error
	}{
		{
			name:          "missing_remote_name",
			remoteName:    "  ",
			executor:      &stubGitExecutor{},
			expectedCalls: 0,
		},
		{
			name:            "git_failure",
			remoteName:      testRemoteNameConstant,
			executor:        &stubGitExecutor{executionError: executionFailure},
			expectedCalls:   1,
			expectedErrorIs: executionFailure,
		},
		{
			name:          "empty_output",
			remoteName:    testRemoteNameConstant,
			executor:      &stubGitExecutor{executionResult: execshell.ExecutionResult{StandardOutput: "\n"}},
			expectedCalls: 1,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			inspector, creationError := gitrepo.NewRepositoryInspector(testCase.executor)
			require.NoError(testInstance, creationError)

			remoteURL, remoteError := inspector.RemoteURL(context.Background(), testWorkingDirectoryConstant, testCase.remoteName)
			require.Error(testInstance, remoteError)
			require.Empty(testInstance, remoteURL)
			require.Len(testInstance, testCase.executor.recordedDetails, testCase.expectedCalls)
			if testCase.expectedErrorIs != nil {
				require.ErrorIs(testInstance, remoteError, testCase.expectedErrorIs)
			}
		})
	}
}
