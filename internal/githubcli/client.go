package githubcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/temirov/commit-to-pr-mcp/internal/execshell"
)

const (
	pullRequestSubcommandConstant           = "pr"
	listSubcommandConstant                  = "list"
	viewSubcommandConstant                  = "view"
	apiSubcommandConstant                   = "api"
	searchFlagConstant                      = "--search"
	stateFlagConstant                       = "--state"
	jsonFlagConstant                        = "--json"
	repoFlagConstant                        = "--repo"
	jqFlagConstant                          = "--jq"
	allStatesValueConstant                  = "all"
	searchJSONFieldsConstant                = "number"
	pullRequestDetailsJSONFieldsConstant    = "number,title,body,state,url,author,createdAt,mergedAt,baseRefName,headRefName,labels,reviews"
	commitMessageJQExpressionConstant       = ".commit.message"
	commitEndpointTemplateConstant          = "repos/%s/commits/%s"
	repositoryFieldNameConstant             = "repository"
	queryFieldNameConstant                  = "query"
	referenceFieldNameConstant              = "reference"
	pullRequestNumberFieldNameConstant      = "pull request number"
	requiredValueMessageConstant            = "value required"
	positiveValueMessageConstant            = "must be a positive integer"
	executorNotConfiguredMessageConstant    = "github cli executor not configured"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	responseDecodingErrorTemplateConstant   = "%s response decoding failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	searchPullRequestsOperationNameConstant = OperationName("SearchPullRequests")
	commitMessageOperationNameConstant      = OperationName("CommitMessage")
	pullRequestDetailsOperationNameConstant = OperationName("PullRequestDetails")
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// PullRequestReference identifies a pull request returned by a search.
type PullRequestReference struct {
	Number int
}

// ReviewRecord is a single review as reported by gh pr view.
type ReviewRecord struct {
	AuthorLogin string
	State       string
	SubmittedAt string
}

// PullRequestRecord captures the pull request fields requested from gh pr view.
// MergedAt is nil for pull requests that were never merged.
type PullRequestRecord struct {
	Number      int
	Title       string
	Body        string
	State       string
	URL         string
	AuthorLogin string
	CreatedAt   string
	MergedAt    *string
	BaseRefName string
	HeadRefName string
	Labels      []string
	Reviews     []ReviewRecord
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor GitHubCommandExecutor
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError indicates JSON decoding failures.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// NewClient constructs a GitHub CLI client.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// SearchPullRequests runs gh pr list --search across every pull request state
// and returns the matches in the order gh reports them.
func (client *Client) SearchPullRequests(executionContext context.Context, repository string, query string) ([]PullRequestReference, error) {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return nil, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	searchQuery := strings.TrimSpace(query)
	if len(searchQuery) == 0 {
		return nil, InvalidInputError{FieldName: queryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			pullRequestSubcommandConstant,
			listSubcommandConstant,
			searchFlagConstant,
			searchQuery,
			stateFlagConstant,
			allStatesValueConstant,
			jsonFlagConstant,
			searchJSONFieldsConstant,
			repoFlagConstant,
			repositoryIdentifier,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return nil, OperationError{Operation: searchPullRequestsOperationNameConstant, Cause: executionError}
	}

	var response []struct {
		Number int `json:"number"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return nil, ResponseDecodingError{Operation: searchPullRequestsOperationNameConstant, Cause: decodingError}
	}

	references := make([]PullRequestReference, 0, len(response))
	for _, responseEntry := range response {
		references = append(references, PullRequestReference{Number: responseEntry.Number})
	}

	return references, nil
}

// CommitMessage reads the full message of a commit through the GitHub REST API.
func (client *Client) CommitMessage(executionContext context.Context, repository string, reference string) (string, error) {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return "", InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commitReference := strings.TrimSpace(reference)
	if len(commitReference) == 0 {
		return "", InvalidInputError{FieldName: referenceFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			fmt.Sprintf(commitEndpointTemplateConstant, repositoryIdentifier, commitReference),
			jqFlagConstant,
			commitMessageJQExpressionConstant,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return "", OperationError{Operation: commitMessageOperationNameConstant, Cause: executionError}
	}

	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// PullRequestDetails retrieves the full record of a pull request using gh pr view.
func (client *Client) PullRequestDetails(executionContext context.Context, repository string, number int) (PullRequestRecord, error) {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return PullRequestRecord{}, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	if number <= 0 {
		return PullRequestRecord{}, InvalidInputError{FieldName: pullRequestNumberFieldNameConstant, Message: positiveValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			pullRequestSubcommandConstant,
			viewSubcommandConstant,
			strconv.Itoa(number),
			repoFlagConstant,
			repositoryIdentifier,
			jsonFlagConstant,
			pullRequestDetailsJSONFieldsConstant,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return PullRequestRecord{}, OperationError{Operation: pullRequestDetailsOperationNameConstant, Cause: executionError}
	}

	type actorResponse struct {
		Login string `json:"login"`
	}

	var response struct {
		Number      int            `json:"number"`
		Title       string         `json:"title"`
		Body        string         `json:"body"`
		State       string         `json:"state"`
		URL         string         `json:"url"`
		Author      *actorResponse `json:"author"`
		CreatedAt   string         `json:"createdAt"`
		MergedAt    *string        `json:"mergedAt"`
		BaseRefName string         `json:"baseRefName"`
		HeadRefName string         `json:"headRefName"`
		Labels      []struct {
			Name string `json:"name"`
		} `json:"labels"`
		Reviews []struct {
			Author      *actorResponse `json:"author"`
			State       string         `json:"state"`
			SubmittedAt string         `json:"submittedAt"`
		} `json:"reviews"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return PullRequestRecord{}, ResponseDecodingError{Operation: pullRequestDetailsOperationNameConstant, Cause: decodingError}
	}

	record := PullRequestRecord{
		Number:      response.Number,
		Title:       response.Title,
		Body:        response.Body,
		State:       response.State,
		URL:         response.URL,
		CreatedAt:   response.CreatedAt,
		MergedAt:    response.MergedAt,
		BaseRefName: response.BaseRefName,
		HeadRefName: response.HeadRefName,
		Labels:      make([]string, 0, len(response.Labels)),
		Reviews:     make([]ReviewRecord, 0, len(response.Reviews)),
	}
	if response.Author != nil {
		record.AuthorLogin = response.Author.Login
	}

	for _, labelEntry := range response.Labels {
		record.Labels = append(record.Labels, labelEntry.Name)
	}

	for _, reviewEntry := range response.Reviews {
		review := ReviewRecord{State: reviewEntry.State, SubmittedAt: reviewEntry.SubmittedAt}
		if reviewEntry.Author != nil {
			review.AuthorLogin = reviewEntry.Author.Login
		}
		record.Reviews = append(record.Reviews, review)
	}

	return record, nil
}
