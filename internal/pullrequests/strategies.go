package pullrequests

import (
	"context"
	"regexp"
	"strconv"

	"go.uber.org/zap"

	"github.com/temirov/commit-to-pr-mcp/internal/githubcli"
)

// Number strategy names.
const (
	StrategySearch        = StrategyName("search")
	StrategyCommitMessage = StrategyName("commit-message")
)

const (
	mergeCommitPatternConstant          = `Merge pull request #(\d+)`
	squashCommitPatternConstant         = `(?m)\(#(\d+)\)\r?$`
	strategyLogFieldConstant            = "strategy"
	repositoryLogFieldConstant          = "repository"
	commitLogFieldConstant              = "commit"
	commitMessageUnavailableLogConstant = "Commit message unavailable; treating commit as unmatched"
)

var (
	mergeCommitPattern  = regexp.MustCompile(mergeCommitPatternConstant)
	squashCommitPattern = regexp.MustCompile(squashCommitPatternConstant)
)

// StrategyName identifies a pull request number strategy.
type StrategyName string

// CodeHostClient is the subset of githubcli.Client used by the resolver.
type CodeHostClient interface {
	SearchPullRequests(executionContext context.Context, repository string, query string) ([]githubcli.PullRequestReference, error)
	CommitMessage(executionContext context.Context, repository string, reference string) (string, error)
	PullRequestDetails(executionContext context.Context, repository string, number int) (githubcli.PullRequestRecord, error)
}

// NumberStrategy maps a commit reference to a pull request number. A strategy
// reports found=false when it has no answer; a non-nil error aborts resolution.
type NumberStrategy interface {
	Name() StrategyName
	ResolveNumber(executionContext context.Context, repository string, commit string) (number int, found bool, resolutionError error)
}

// DefaultStrategies returns the search strategy followed by the commit message strategy.
func DefaultStrategies(client CodeHostClient, logger *zap.Logger) []NumberStrategy {
	return []NumberStrategy{
		NewSearchStrategy(client),
		NewCommitMessageStrategy(client, logger),
	}
}

// SearchStrategy uses the code host search. The first reported match is authoritative.
type SearchStrategy struct {
	client CodeHostClient
}

// NewSearchStrategy constructs a SearchStrategy.
func NewSearchStrategy(client CodeHostClient) SearchStrategy {
	return SearchStrategy{client: client}
}

// Name identifies the strategy.
func (strategy SearchStrategy) Name() StrategyName {
	return StrategySearch
}

// ResolveNumber searches pull requests for the commit reference.
func (strategy SearchStrategy) ResolveNumber(executionContext context.Context, repository string, commit string) (int, bool, error) {
	references, searchError := strategy.client.SearchPullRequests(executionContext, repository, commit)
	if searchError != nil {
		return 0, false, searchError
	}
	if len(references) == 0 {
		return 0, false, nil
	}
	return references[0].Number, true, nil
}

// CommitMessageStrategy recognizes merge commit and squash commit messages.
// A commit message that cannot be fetched counts as no match.
type CommitMessageStrategy struct {
	client CodeHostClient
	logger *zap.Logger
}

// NewCommitMessageStrategy constructs a CommitMessageStrategy.
func NewCommitMessageStrategy(client CodeHostClient, logger *zap.Logger) CommitMessageStrategy {
	return CommitMessageStrategy{client: client, logger: logger}
}

// Name identifies the strategy.
func (strategy CommitMessageStrategy) Name() StrategyName {
	return StrategyCommitMessage
}

// ResolveNumber fetches the commit message and extracts a pull request number from it.
func (strategy CommitMessageStrategy) ResolveNumber(executionContext context.Context, repository string, commit string) (int, bool, error) {
	commitMessage, messageError := strategy.client.CommitMessage(executionContext, repository, commit)
	if messageError != nil {
		if strategy.logger != nil {
			strategy.logger.Debug(commitMessageUnavailableLogConstant,
				zap.String(strategyLogFieldConstant, string(StrategyCommitMessage)),
				zap.String(repositoryLogFieldConstant, repository),
				zap.String(commitLogFieldConstant, commit),
				zap.Error(messageError),
			)
		}
		return 0, false, nil
	}

	number, found := ParseCommitMessageNumber(commitMessage)
	return number, found, nil
}

// ParseCommitMessageNumber extracts a pull request number from a commit message.
// "Merge pull request #N" wins over a "(#N)" suffix at the end of any line;
// the first pattern that matches decides, even when its number is unusable.
func ParseCommitMessageNumber(commitMessage string) (int, bool) {
	for _, pattern := range []*regexp.Regexp{mergeCommitPattern, squashCommitPattern} {
		submatches := pattern.FindStringSubmatch(commitMessage)
		if len(submatches) < 2 {
			continue
		}
		number, conversionError := strconv.Atoi(submatches[1])
		if conversionError != nil || number <= 0 {
			return 0, false
		}
		return number, true
	}
	return 0, false
}
