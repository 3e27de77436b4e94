package toolserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/temirov/commit-to-pr-mcp/internal/pullrequests"
)

const (
	missingLookupTargetMessageConstant = "Either 'commit' or 'pr_number' must be provided."
	argumentErrorTemplateConstant      = "invalid '%s' argument: %s"
	argumentsObjectMessageConstant     = "arguments must be a JSON object"
	stringExpectedMessageConstant      = "must be a string"
	numberExpectedMessageConstant      = "must be a number"
	integerExpectedMessageConstant     = "must be a non-negative integer"
	numberOutOfRangeMessageConstant    = "is out of range"
	argumentsFieldNameConstant         = "arguments"
	jsonNullLiteralConstant            = "null"
)

// ErrLookupTargetMissing indicates that neither commit nor pr_number was supplied.
var ErrLookupTargetMissing = errors.New(missingLookupTargetMessageConstant)

// ArgumentError reports a get_pr argument with an unusable JSON type or value.
type ArgumentError struct {
	Argument string
	Message  string
}

// Error describes the invalid argument.
func (argumentError ArgumentError) Error() string {
	return fmt.Sprintf(argumentErrorTemplateConstant, argumentError.Argument, argumentError.Message)
}

type rawLookupArguments struct {
	Commit            json.RawMessage `json:"commit"`
	PullRequestNumber json.RawMessage `json:"pr_number"`
	Repository        json.RawMessage `json:"repo"`
	WorkingDirectory  json.RawMessage `json:"cwd"`
}

// ParseLookup validates raw get_pr arguments into a lookup. A positive
// pr_number selects a DirectLookup even when a commit is also present. The
// commit is trimmed, so a blank commit and a zero pr_number both count as
// absent. Unknown argument names are ignored.
func ParseLookup(arguments json.RawMessage) (pullrequests.Lookup, error) {
	var rawArguments rawLookupArguments
	if !isAbsent(arguments) {
		if decodingError := json.Unmarshal(arguments, &rawArguments); decodingError != nil {
			return nil, ArgumentError{Argument: argumentsFieldNameConstant, Message: argumentsObjectMessageConstant}
		}
	}

	commit, commitError := decodeOptionalString(ArgumentCommit, rawArguments.Commit)
	if commitError != nil {
		return nil, commitError
	}

	pullRequestNumber, numberError := decodeOptionalNumber(ArgumentPullRequestNumber, rawArguments.PullRequestNumber)
	if numberError != nil {
		return nil, numberError
	}

	repository, repositoryError := decodeOptionalString(ArgumentRepository, rawArguments.Repository)
	if repositoryError != nil {
		return nil, repositoryError
	}

	workingDirectory, workingDirectoryError := decodeOptionalString(ArgumentWorkingDirectory, rawArguments.WorkingDirectory)
	if workingDirectoryError != nil {
		return nil, workingDirectoryError
	}

	return NewLookup(commit, pullRequestNumber, repository, workingDirectory)
}

// NewLookup selects the lookup variant for already typed arguments.
func NewLookup(commit string, pullRequestNumber int, repository string, workingDirectory string) (pullrequests.Lookup, error) {
	if pullRequestNumber < 0 {
		return nil, ArgumentError{Argument: ArgumentPullRequestNumber, Message: integerExpectedMessageConstant}
	}

	if pullRequestNumber > 0 {
		return pullrequests.DirectLookup{Number: pullRequestNumber, Repository: repository, WorkingDirectory: workingDirectory}, nil
	}

	trimmedCommit := strings.TrimSpace(commit)
	if len(trimmedCommit) > 0 {
		return pullrequests.CommitLookup{Commit: trimmedCommit, Repository: repository, WorkingDirectory: workingDirectory}, nil
	}

	return nil, ErrLookupTargetMissing
}

func decodeOptionalString(argumentName string, rawValue json.RawMessage) (string, error) {
	if isAbsent(rawValue) {
		return "", nil
	}

	var decodedValue string
	if decodingError := json.Unmarshal(rawValue, &decodedValue); decodingError != nil {
		return "", ArgumentError{Argument: argumentName, Message: stringExpectedMessageConstant}
	}
	return decodedValue, nil
}

func decodeOptionalNumber(argumentName string, rawValue json.RawMessage) (int, error) {
	if isAbsent(rawValue) {
		return 0, nil
	}

	var decodedValue float64
	if decodingError := json.Unmarshal(rawValue, &decodedValue); decodingError != nil {
		return 0, ArgumentError{Argument: argumentName, Message: numberExpectedMessageConstant}
	}

	if decodedValue < 0 || decodedValue != math.Trunc(decodedValue) {
		return 0, ArgumentError{Argument: argumentName, Message: integerExpectedMessageConstant}
	}
	if decodedValue > math.MaxInt32 {
		return 0, ArgumentError{Argument: argumentName, Message: numberOutOfRangeMessageConstant}
	}
	return int(decodedValue), nil
}

func isAbsent(rawValue json.RawMessage) bool {
	trimmedValue := bytes.TrimSpace(rawValue)
	return len(trimmedValue) == 0 || string(trimmedValue) == jsonNullLiteralConstant
}
