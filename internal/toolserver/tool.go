package toolserver

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Argument names accepted by get_pr.
const (
	ArgumentCommit            = "commit"
	ArgumentPullRequestNumber = "pr_number"
	ArgumentRepository        = "repo"
	ArgumentWorkingDirectory  = "cwd"
)

const (
	// GetPullRequestToolName is the only tool served.
	GetPullRequestToolName = "get_pr"

	getPullRequestDescriptionConstant    = "Get PR details by commit hash or PR number. Extracts PR number from git commits (merge commits, squash commits) and returns full PR details including title, description, author, status, and reviews. Auto-detects repository from working directory."
	commitDescriptionConstant            = "Git commit hash (full or short), branch name, or any git reference. Use this OR pr_number."
	pullRequestNumberDescriptionConstant = "PR number to look up directly. Use this OR commit."
	repositoryDescriptionConstant        = "GitHub repository in owner/repo format. If not provided, auto-detects from cwd."
	workingDirectoryDescriptionConstant  = "Working directory path to auto-detect the GitHub repository from git remote."
	objectSchemaTypeConstant             = "object"
	stringSchemaTypeConstant             = "string"
	numberSchemaTypeConstant             = "number"
)

// NewGetPullRequestTool builds the get_pr descriptor.
func NewGetPullRequestTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        GetPullRequestToolName,
		Description: getPullRequestDescriptionConstant,
		InputSchema: NewGetPullRequestInputSchema(),
	}
}

// NewGetPullRequestInputSchema describes the get_pr arguments. None of the
// properties is required; the commit or pr_number rule is enforced when a call
// is parsed.
func NewGetPullRequestInputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: objectSchemaTypeConstant,
		Properties: map[string]*jsonschema.Schema{
			ArgumentCommit:            {Type: stringSchemaTypeConstant, Description: commitDescriptionConstant},
			ArgumentPullRequestNumber: {Type: numberSchemaTypeConstant, Description: pullRequestNumberDescriptionConstant},
			ArgumentRepository:        {Type: stringSchemaTypeConstant, Description: repositoryDescriptionConstant},
			ArgumentWorkingDirectory:  {Type: stringSchemaTypeConstant, Description: workingDirectoryDescriptionConstant},
		},
	}
}
