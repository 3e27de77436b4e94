package toolserver_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/commit-to-pr-mcp/internal/pullrequests"
	"github.com/temirov/commit-to-pr-mcp/internal/toolserver"
)

func TestParseLookupSelectsVariant(testInstance *testing.T) {
	testCases := []struct {
		name           string
		arguments      string
		expectedLookup pullrequests.Lookup
	}{
		{
			name:           "commit_only",
			arguments:      `{"commit":"abc1234"}`,
			expectedLookup: pullrequests.CommitLookup{Commit: "abc1234"},
		},
		{
			name:           "commit_with_repository_and_directory",
			arguments:      `{"commit":"main","repo":"acme/widgets","cwd":"~/src/widgets"}`,
			expectedLookup: pullrequests.CommitLookup{Commit: "main", Repository: "acme/widgets", WorkingDirectory: "~/src/widgets"},
		},
		{
			name:           "number_only",
			arguments:      `{"pr_number":5,"repo":"acme/widgets"}`,
			expectedLookup: pullrequests.DirectLookup{Number: 5, Repository: "acme/widgets"},
		},
		{
			name:           "number_takes_precedence_over_commit",
			arguments:      `{"commit":"abc1234","pr_number":5}`,
			expectedLookup: pullrequests.DirectLookup{Number: 5},
		},
		{
			name:           "integral_float_number",
			arguments:      `{"pr_number":12.0}`,
			expectedLookup: pullrequests.DirectLookup{Number: 12},
		},
		{
			name:           "zero_number_falls_back_to_commit",
			arguments:      `{"commit":"abc1234","pr_number":0}`,
			expectedLookup: pullrequests.CommitLookup{Commit: "abc1234"},
		},
		{
			name:           "null_values_are_absent",
			arguments:      `{"commit":"abc1234","pr_number":null,"repo":null}`,
			expectedLookup: pullrequests.CommitLookup{Commit: "abc1234"},
		},
		{
			name:           "padded_commit_is_trimmed",
			arguments:      `{"commit":"  abc1234\n"}`,
			expectedLookup: pullrequests.CommitLookup{Commit: "abc1234"},
		},
		{
			name:           "unknown_arguments_ignored",
			arguments:      `{"commit":"abc1234","verbose":true}`,
			expectedLookup: pullrequests.CommitLookup{Commit: "abc1234"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			lookup, parseError := toolserver.ParseLookup(json.RawMessage(testCase.arguments))
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedLookup, lookup)
		})
	}
}

func TestParseLookupRequiresTarget(testInstance *testing.T) {
	testCases := []struct {
		name      string
		arguments json.RawMessage
	}{
		{name: "nil_arguments", arguments: nil},
		{name: "empty_object", arguments: json.RawMessage(`{}`)},
		{name: "null_arguments", arguments: json.RawMessage(`null`)},
		{name: "empty_commit_and_zero_number", arguments: json.RawMessage(`{"commit":"","pr_number":0}`)},
		{name: "repository_only", arguments: json.RawMessage(`{"repo":"acme/widgets"}`)},
		{name: "whitespace_commit", arguments: json.RawMessage(`{"commit":"   ","repo":"acme/widgets"}`)},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			lookup, parseError := toolserver.ParseLookup(testCase.arguments)
			require.ErrorIs(testInstance, parseError, toolserver.ErrLookupTargetMissing)
			require.Nil(testInstance, lookup)
			require.Equal(testInstance, "Either 'commit' or 'pr_number' must be provided.", parseError.Error())
		})
	}
}

func TestParseLookupRejectsMalformedArguments(testInstance *testing.T) {
	testCases := []struct {
		name             string
		arguments        string
		expectedArgument string
		expectedMessage  string
	}{
		{name: "arguments_not_object", arguments: `[1,2]`, expectedArgument: "arguments", expectedMessage: "invalid 'arguments' argument: arguments must be a JSON object"},
		{name: "commit_not_string", arguments: `{"commit":42}`, expectedArgument: "commit", expectedMessage: "invalid 'commit' argument: must be a string"},
		{name: "number_not_number", arguments: `{"pr_number":"5"}`, expectedArgument: "pr_number", expectedMessage: "invalid 'pr_number' argument: must be a number"},
		{name: "number_fractional", arguments: `{"pr_number":4.5}`, expectedArgument: "pr_number", expectedMessage: "invalid 'pr_number' argument: must be a non-negative integer"},
		{name: "number_negative", arguments: `{"pr_number":-3}`, expectedArgument: "pr_number", expectedMessage: "invalid 'pr_number' argument: must be a non-negative integer"},
		{name: "number_out_of_range", arguments: `{"pr_number":4294967296}`, expectedArgument: "pr_number", expectedMessage: "invalid 'pr_number' argument: is out of range"},
		{name: "repository_not_string", arguments: `{"commit":"abc","repo":["acme","widgets"]}`, expectedArgument: "repo", expectedMessage: "invalid 'repo' argument: must be a string"},
		{name: "directory_not_string", arguments: `{"commit":"abc","cwd":true}`, expectedArgument: "cwd", expectedMessage: "invalid 'cwd' argument: must be a string"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			_, parseError := toolserver.ParseLookup(json.RawMessage(testCase.arguments))
			var argumentError toolserver.ArgumentError
			require.ErrorAs(testInstance, parseError, &argumentError)
			require.Equal(testInstance, testCase.expectedArgument, argumentError.Argument)
			require.Equal(testInstance, testCase.expectedMessage, parseError.Error())
		})
	}
}

func TestNewLookupRejectsNegativeNumber(testInstance *testing.T) {
	_, lookupError := toolserver.NewLookup("", -1, "", "")
	require.IsType(testInstance, toolserver.ArgumentError{}, lookupError)
}
