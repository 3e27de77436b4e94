package toolserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/temirov/commit-to-pr-mcp/internal/pullrequests"
)

const (
	defaultServerNameConstant            = "commit-to-pr-mcp"
	defaultServerVersionConstant         = "1.0.0"
	errorMessagePrefixConstant           = "Error: "
	panicMessageTemplateConstant         = "panic: %v"
	callIdentifierLogFieldConstant       = "call_id"
	toolLogFieldConstant                 = "tool"
	commitLogFieldConstant               = "commit"
	repositoryLogFieldConstant           = "repository"
	pullRequestNumberLogFieldConstant    = "pr_number"
	callStartedLogMessageConstant        = "Tool call started"
	callSucceededLogMessageConstant      = "Tool call succeeded"
	callRejectedLogMessageConstant       = "Tool call rejected"
	callNotFoundLogMessageConstant       = "No pull request matched commit"
	callFailedLogMessageConstant         = "Tool call failed"
	callPanickedLogMessageConstant       = "Tool call panicked"
	resolverNotConfiguredMessageConstant = "pull request resolver not configured"
	callConcurrencyLimitConstant         = 1
	panicLogFieldConstant                = "panic"
)

// ErrResolverNotConfigured indicates the server was constructed without a resolver.
var ErrResolverNotConfigured = errors.New(resolverNotConfiguredMessageConstant)

// LookupResolver is the subset of pullrequests.Resolver used by the server.
type LookupResolver interface {
	Resolve(executionContext context.Context, lookup pullrequests.Lookup) (pullrequests.Details, error)
}

// Dependencies enumerates collaborators required by the server.
type Dependencies struct {
	Logger   *zap.Logger
	Resolver LookupResolver
}

// Configuration names the implementation reported during initialization.
type Configuration struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// Server serves get_pr over an MCP transport, one call at a time.
type Server struct {
	logger    *zap.Logger
	resolver  LookupResolver
	registry  *Registry
	callGate  *semaphore.Weighted
	mcpServer *mcp.Server
}

// NewServer constructs a Server with get_pr registered.
func NewServer(dependencies Dependencies, configuration Configuration) (*Server, error) {
	if dependencies.Resolver == nil {
		return nil, ErrResolverNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	implementation := &mcp.Implementation{Name: configuration.Name, Version: configuration.Version}
	if len(implementation.Name) == 0 {
		implementation.Name = defaultServerNameConstant
	}
	if len(implementation.Version) == 0 {
		implementation.Version = defaultServerVersionConstant
	}

	server := &Server{
		logger:    logger,
		resolver:  dependencies.Resolver,
		registry:  NewRegistry(),
		callGate:  semaphore.NewWeighted(callConcurrencyLimitConstant),
		mcpServer: mcp.NewServer(implementation, nil),
	}

	server.registry.Register(NewGetPullRequestTool(), server.handleGetPullRequest)
	server.registry.Install(server.mcpServer)
	server.mcpServer.AddReceivingMiddleware(server.registry.UnknownToolMiddleware(logger))

	return server, nil
}

// Tools returns the descriptors the server lists.
func (server *Server) Tools() []*mcp.Tool {
	return server.registry.Descriptors()
}

// Connect starts a session on the transport without waiting for it to end.
func (server *Server) Connect(executionContext context.Context, transport mcp.Transport) (*mcp.ServerSession, error) {
	return server.mcpServer.Connect(executionContext, transport, nil)
}

// Serve connects to the transport, invokes onReady once the session is
// established and blocks until the peer disconnects or the context ends.
// Context cancellation is a clean shutdown.
func (server *Server) Serve(executionContext context.Context, transport mcp.Transport, onReady func()) error {
	session, connectError := server.Connect(executionContext, transport)
	if connectError != nil {
		return connectError
	}

	if onReady != nil {
		onReady()
	}

	sessionDone := make(chan error, 1)
	go func() {
		sessionDone <- session.Wait()
	}()

	select {
	case <-executionContext.Done():
		closeError := session.Close()
		<-sessionDone
		return closeError
	case waitError := <-sessionDone:
		return waitError
	}
}

// Lookup runs a validated lookup and returns the serialized details. It is the
// non-protocol entry point shared with the command line.
func (server *Server) Lookup(executionContext context.Context, lookup pullrequests.Lookup) (string, error) {
	if acquireError := server.callGate.Acquire(executionContext, callConcurrencyLimitConstant); acquireError != nil {
		return "", acquireError
	}
	defer server.callGate.Release(callConcurrencyLimitConstant)

	details, resolutionError := server.resolver.Resolve(executionContext, lookup)
	if resolutionError != nil {
		return "", resolutionError
	}
	return details.Serialize()
}

func (server *Server) handleGetPullRequest(executionContext context.Context, request *mcp.CallToolRequest) (result *mcp.CallToolResult, handlerError error) {
	callLogger := server.logger.With(
		zap.String(callIdentifierLogFieldConstant, ulid.Make().String()),
		zap.String(toolLogFieldConstant, GetPullRequestToolName),
	)

	defer func() {
		if recovered := recover(); recovered != nil {
			callLogger.Error(callPanickedLogMessageConstant, zap.Any(panicLogFieldConstant, recovered))
			result = errorResult(formatErrorMessage(fmt.Errorf(panicMessageTemplateConstant, recovered)))
			handlerError = nil
		}
	}()

	var rawArguments []byte
	if request != nil && request.Params != nil {
		rawArguments = request.Params.Arguments
	}

	lookup, parseError := ParseLookup(rawArguments)
	if parseError != nil {
		callLogger.Info(callRejectedLogMessageConstant, zap.Error(parseError))
		if errors.Is(parseError, ErrLookupTargetMissing) {
			return errorResult(parseError.Error()), nil
		}
		return errorResult(formatErrorMessage(parseError)), nil
	}

	callLogger = callLogger.With(lookupLogFields(lookup)...)
	callLogger.Debug(callStartedLogMessageConstant)

	serializedDetails, lookupError := server.Lookup(executionContext, lookup)
	if lookupError != nil {
		var notFoundError pullrequests.NotFoundError
		if errors.As(lookupError, &notFoundError) {
			callLogger.Info(callNotFoundLogMessageConstant)
			return errorResult(notFoundError.Error()), nil
		}
		if contextError := executionContext.Err(); contextError != nil {
			return nil, contextError
		}
		callLogger.Warn(callFailedLogMessageConstant, zap.Error(lookupError))
		return errorResult(formatErrorMessage(lookupError)), nil
	}

	callLogger.Info(callSucceededLogMessageConstant)
	return textResult(serializedDetails), nil
}

func lookupLogFields(lookup pullrequests.Lookup) []zap.Field {
	switch typedLookup := lookup.(type) {
	case pullrequests.DirectLookup:
		return []zap.Field{
			zap.Int(pullRequestNumberLogFieldConstant, typedLookup.Number),
			zap.String(repositoryLogFieldConstant, typedLookup.Repository),
		}
	case pullrequests.CommitLookup:
		return []zap.Field{
			zap.String(commitLogFieldConstant, typedLookup.Commit),
			zap.String(repositoryLogFieldConstant, typedLookup.Repository),
		}
	default:
		return nil
	}
}

func formatErrorMessage(failure error) string {
	message := failure.Error()
	if len(message) == 0 {
		message = fmt.Sprintf("%#v", failure)
	}
	return errorMessagePrefixConstant + message
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}, IsError: true}
}
