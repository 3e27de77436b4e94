package pullrequests

import (
	"encoding/json"

	"github.com/temirov/commit-to-pr-mcp/internal/githubcli"
)

const (
	unknownAuthorConstant         = "unknown"
	jsonIndentationPrefixConstant = ""
	jsonIndentationConstant       = "  "
)

// Review summarizes a single pull request review.
type Review struct {
	Author      string `json:"author"`
	State       string `json:"state"`
	SubmittedAt string `json:"submittedAt"`
}

// Details is the pull request payload returned to callers.
type Details struct {
	Number    int      `json:"number"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	State     string   `json:"state"`
	URL       string   `json:"url"`
	Author    string   `json:"author"`
	CreatedAt string   `json:"createdAt"`
	MergedAt  *string  `json:"mergedAt"`
	BaseRef   string   `json:"baseRef"`
	HeadRef   string   `json:"headRef"`
	Labels    []string `json:"labels"`
	Reviews   []Review `json:"reviews"`
}

// Serialize renders details as JSON indented with two spaces.
func (details Details) Serialize() (string, error) {
	encodedDetails, encodingError := json.MarshalIndent(details, jsonIndentationPrefixConstant, jsonIndentationConstant)
	if encodingError != nil {
		return "", encodingError
	}
	return string(encodedDetails), nil
}

func newDetails(record githubcli.PullRequestRecord) Details {
	details := Details{
		Number:    record.Number,
		Title:     record.Title,
		Body:      record.Body,
		State:     record.State,
		URL:       record.URL,
		Author:    authorOrUnknown(record.AuthorLogin),
		CreatedAt: record.CreatedAt,
		MergedAt:  record.MergedAt,
		BaseRef:   record.BaseRefName,
		HeadRef:   record.HeadRefName,
		Labels:    make([]string, 0, len(record.Labels)),
		Reviews:   make([]Review, 0, len(record.Reviews)),
	}

	details.Labels = append(details.Labels, record.Labels...)
	for _, reviewRecord := range record.Reviews {
		details.Reviews = append(details.Reviews, Review{
			Author:      authorOrUnknown(reviewRecord.AuthorLogin),
			State:       reviewRecord.State,
			SubmittedAt: reviewRecord.SubmittedAt,
		})
	}

	return details
}

func authorOrUnknown(login string) string {
	if len(login) == 0 {
		return unknownAuthorConstant
	}
	return login
}
