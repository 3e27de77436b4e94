package toolserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

const (
	toolsCallMethodConstant       = "tools/call"
	unknownToolTemplateConstant   = "Unknown tool: %s"
	unknownToolLogMessageConstant = "Rejected call for unknown tool"
)

type registeredTool struct {
	descriptor *mcp.Tool
	handler    mcp.ToolHandler
}

// Registry keeps the tools a server answers for, in registration order.
type Registry struct {
	tools     map[string]registeredTool
	toolNames []string
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]registeredTool)}
}

// Register adds or replaces a tool.
func (registry *Registry) Register(descriptor *mcp.Tool, handler mcp.ToolHandler) {
	if _, exists := registry.tools[descriptor.Name]; !exists {
		registry.toolNames = append(registry.toolNames, descriptor.Name)
	}
	registry.tools[descriptor.Name] = registeredTool{descriptor: descriptor, handler: handler}
}

// Contains reports whether a tool with the given name is registered.
func (registry *Registry) Contains(toolName string) bool {
	_, exists := registry.tools[toolName]
	return exists
}

// Descriptors returns the registered tool descriptors.
func (registry *Registry) Descriptors() []*mcp.Tool {
	descriptors := make([]*mcp.Tool, 0, len(registry.toolNames))
	for _, toolName := range registry.toolNames {
		descriptors = append(descriptors, registry.tools[toolName].descriptor)
	}
	return descriptors
}

// Install adds every registered tool to the MCP server.
func (registry *Registry) Install(server *mcp.Server) {
	for _, toolName := range registry.toolNames {
		registeredEntry := registry.tools[toolName]
		server.AddTool(registeredEntry.descriptor, registeredEntry.handler)
	}
}

// UnknownToolMiddleware answers tools/call requests for unregistered names with
// an error-flagged result instead of a protocol error.
func (registry *Registry) UnknownToolMiddleware(logger *zap.Logger) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(executionContext context.Context, method string, request mcp.Request) (mcp.Result, error) {
			if method != toolsCallMethodConstant {
				return next(executionContext, method, request)
			}

			callRequest, isCallRequest := request.(*mcp.CallToolRequest)
			if !isCallRequest || callRequest.Params == nil || registry.Contains(callRequest.Params.Name) {
				return next(executionContext, method, request)
			}

			logger.Warn(unknownToolLogMessageConstant, zap.String(toolLogFieldConstant, callRequest.Params.Name))
			return errorResult(formatErrorMessage(fmt.Errorf(unknownToolTemplateConstant, callRequest.Params.Name))), nil
		}
	}
}
