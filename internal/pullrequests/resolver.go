package pullrequests

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/commit-to-pr-mcp/internal/gitrepo"
	pathutils "github.com/temirov/commit-to-pr-mcp/internal/utils/path"
)

const (
	defaultRemoteNameConstant         = "origin"
	workingDirectoryLogFieldConstant  = "working_directory"
	pullRequestNumberLogFieldConstant = "pr_number"
	remoteLogFieldConstant            = "remote"
	explicitRepositoryLogConstant     = "Using explicitly requested repository"
	detectedRepositoryLogConstant     = "Detected repository from git remote"
	strategyMatchedLogConstant        = "Number strategy matched commit"
	strategyMissedLogConstant         = "Number strategy found no pull request"
	detailsRetrievedLogConstant       = "Retrieved pull request details"
)

// RepositoryInspector is the subset of gitrepo.RepositoryInspector used by the resolver.
type RepositoryInspector interface {
	IsWorkingTree(executionContext context.Context, directory string) bool
	RemoteURL(executionContext context.Context, directory string, remoteName string) (string, error)
}

// PathExpander rewrites user supplied directories before they reach git.
type PathExpander interface {
	Expand(candidatePath string) string
}

// Dependencies enumerates collaborators required by the resolver.
type Dependencies struct {
	Logger              *zap.Logger
	RepositoryInspector RepositoryInspector
	CodeHostClient      CodeHostClient
	Strategies          []NumberStrategy
	PathExpander        PathExpander
}

// Configuration controls repository detection.
type Configuration struct {
	RemoteName string   `mapstructure:"remote"`
	Hosts      []string `mapstructure:"hosts"`
}

// Resolver turns a Lookup into pull request Details.
type Resolver struct {
	logger        *zap.Logger
	inspector     RepositoryInspector
	client        CodeHostClient
	strategies    []NumberStrategy
	pathExpander  PathExpander
	configuration Configuration
}

// NewResolver constructs a Resolver. Strategies default to DefaultStrategies and
// the path expander defaults to pathutils.DirectoryExpander.
func NewResolver(dependencies Dependencies, configuration Configuration) (*Resolver, error) {
	if dependencies.RepositoryInspector == nil {
		return nil, ErrInspectorNotConfigured
	}
	if dependencies.CodeHostClient == nil {
		return nil, ErrClientNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	strategies := dependencies.Strategies
	if len(strategies) == 0 {
		strategies = DefaultStrategies(dependencies.CodeHostClient, logger)
	}

	pathExpander := dependencies.PathExpander
	if pathExpander == nil {
		pathExpander = pathutils.NewDirectoryExpander()
	}

	configuration.RemoteName = strings.TrimSpace(configuration.RemoteName)
	if len(configuration.RemoteName) == 0 {
		configuration.RemoteName = defaultRemoteNameConstant
	}

	return &Resolver{
		logger:        logger,
		inspector:     dependencies.RepositoryInspector,
		client:        dependencies.CodeHostClient,
		strategies:    strategies,
		pathExpander:  pathExpander,
		configuration: configuration,
	}, nil
}

// Resolve determines the repository, the pull request number and its details.
// A commit that no strategy can map returns NotFoundError.
func (resolver *Resolver) Resolve(executionContext context.Context, lookup Lookup) (Details, error) {
	if lookup == nil {
		return Details{}, unsupportedLookupError{lookup: lookup}
	}

	repository, repositoryError := resolver.ResolveRepository(executionContext, lookup.repositoryArgument(), lookup.workingDirectoryArgument())
	if repositoryError != nil {
		return Details{}, repositoryError
	}

	var pullRequestNumber int
	switch typedLookup := lookup.(type) {
	case DirectLookup:
		pullRequestNumber = typedLookup.Number
	case CommitLookup:
		number, numberError := resolver.resolveNumber(executionContext, repository, typedLookup.Commit)
		if numberError != nil {
			return Details{}, numberError
		}
		pullRequestNumber = number
	default:
		return Details{}, unsupportedLookupError{lookup: lookup}
	}

	record, detailsError := resolver.client.PullRequestDetails(executionContext, repository, pullRequestNumber)
	if detailsError != nil {
		return Details{}, detailsError
	}

	resolver.logger.Debug(detailsRetrievedLogConstant,
		zap.String(repositoryLogFieldConstant, repository),
		zap.Int(pullRequestNumberLogFieldConstant, pullRequestNumber),
	)

	return newDetails(record), nil
}

// ResolveRepository returns the explicit repository unchanged when one is
// given. Otherwise it derives owner/name from the configured remote of the
// working directory, or of the process directory when none is supplied.
func (resolver *Resolver) ResolveRepository(executionContext context.Context, explicitRepository string, workingDirectory string) (string, error) {
	trimmedRepository := strings.TrimSpace(explicitRepository)
	if len(trimmedRepository) > 0 {
		resolver.logger.Debug(explicitRepositoryLogConstant, zap.String(repositoryLogFieldConstant, trimmedRepository))
		return trimmedRepository, nil
	}

	directory := resolver.pathExpander.Expand(strings.TrimSpace(workingDirectory))
	if !resolver.inspector.IsWorkingTree(executionContext, directory) {
		return "", ConfigurationError{WorkingDirectory: directory}
	}

	remoteURL, remoteError := resolver.inspector.RemoteURL(executionContext, directory, resolver.configuration.RemoteName)
	if remoteError != nil {
		return "", ConfigurationError{WorkingDirectory: directory, Cause: remoteError}
	}

	repositoryIdentifier, parseError := gitrepo.ParseRepositoryIdentifier(remoteURL, resolver.configuration.Hosts)
	if parseError != nil {
		return "", ConfigurationError{WorkingDirectory: directory, Cause: parseError}
	}

	resolver.logger.Debug(detectedRepositoryLogConstant,
		zap.String(repositoryLogFieldConstant, repositoryIdentifier.String()),
		zap.String(remoteLogFieldConstant, resolver.configuration.RemoteName),
		zap.String(workingDirectoryLogFieldConstant, directory),
	)

	return repositoryIdentifier.String(), nil
}

func (resolver *Resolver) resolveNumber(executionContext context.Context, repository string, commit string) (int, error) {
	for _, strategy := range resolver.strategies {
		number, found, strategyError := strategy.ResolveNumber(executionContext, repository, commit)
		if strategyError != nil {
			return 0, strategyError
		}
		if found {
			resolver.logger.Debug(strategyMatchedLogConstant,
				zap.String(strategyLogFieldConstant, string(strategy.Name())),
				zap.String(commitLogFieldConstant, commit),
				zap.Int(pullRequestNumberLogFieldConstant, number),
			)
			return number, nil
		}
		resolver.logger.Debug(strategyMissedLogConstant,
			zap.String(strategyLogFieldConstant, string(strategy.Name())),
			zap.String(commitLogFieldConstant, commit),
		)
	}

	return 0, NotFoundError{Commit: commit, Repository: repository}
}
