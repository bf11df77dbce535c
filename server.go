package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/BrunoKrugel/brevo-mcp/pkg/swagger"
	"github.com/BrunoKrugel/brevo-mcp/pkg/transport"
	"github.com/BrunoKrugel/brevo-mcp/pkg/types"
)

// ProtocolVersion is the MCP revision implemented by the server
const ProtocolVersion = "2024-11-05"

type BrevoMCP struct {
	transport     transport.Transport
	config        *Config
	tools         map[string]registeredTool
	resources     map[string]registeredResource
	name          string
	version       string
	description   string
	toolOrder     []string
	resourceOrder []string
	mu            sync.RWMutex
}

type Config struct {
	Name              string
	Version           string
	Description       string
	Instructions      string
	EnableSwaggerInfo bool
}

type registeredTool struct {
	handler types.ToolHandler
	tool    types.Tool
}

type registeredResource struct {
	handler  types.ResourceHandler
	resource types.Resource
}

// NewWithConfig creates a new BrevoMCP instance
func NewWithConfig(config *Config) *BrevoMCP {
	if config == nil {
		config = &Config{}
	}

	// Auto-populate name, description, and version from Swagger if available and not provided
	name := config.Name
	description := config.Description
	version := config.Version

	if config.EnableSwaggerInfo && (name == "" || description == "" || version == "") {
		if spec, err := swagger.GetSwaggerSpec(); err == nil && spec.Info != nil {
			if name == "" && spec.Info.Title != "" {
				name = spec.Info.Title
			}
			if description == "" && spec.Info.Description != "" {
				description = spec.Info.Description
			}
			if version == "" && spec.Info.Version != "" {
				version = spec.Info.Version
			}
		}
	}

	return &BrevoMCP{
		name:        name,
		version:     version,
		description: description,
		config:      config,
		tools:       make(map[string]registeredTool),
		resources:   make(map[string]registeredResource),
	}
}

// New creates a new BrevoMCP instance that takes its server info from the published Swagger document
func New() *BrevoMCP {
	return NewWithConfig(&Config{EnableSwaggerInfo: true})
}

// RegisterTool adds a tool, replacing any tool with the same name
func (e *BrevoMCP) RegisterTool(tool types.Tool, handler types.ToolHandler) {
	e.mu.Lock()
	if _, exists := e.tools[tool.Name]; !exists {
		e.toolOrder = append(e.toolOrder, tool.Name)
	}
	e.tools[tool.Name] = registeredTool{tool: tool, handler: handler}
	t := e.transport
	e.mu.Unlock()

	if t != nil {
		t.NotifyToolsChanged()
	}
}

// RegisterResource adds a resource, replacing any resource with the same URI
func (e *BrevoMCP) RegisterResource(resource types.Resource, handler types.ResourceHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.resources[resource.URI]; !exists {
		e.resourceOrder = append(e.resourceOrder, resource.URI)
	}
	e.resources[resource.URI] = registeredResource{resource: resource, handler: handler}
}

// Mount mounts the MCP server on router at the specified path (Streamable HTTP transport)
func (e *BrevoMCP) Mount(router *echo.Echo, path string) error {
	if router == nil {
		return fmt.Errorf("failed to mount MCP server: nil echo instance")
	}

	t := transport.NewHTTPTransport(path)
	e.registerHandlers(t)

	router.POST(path, t.HandleMessage)
	router.GET(path, t.HandleConnection)
	router.DELETE(path, t.HandleDelete)

	log.WithField("path", path).Info("[MCP] mounted HTTP transport")
	return nil
}

// ServeStdio serves MCP on newline-delimited JSON until in is closed or ctx is done
func (e *BrevoMCP) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	t := transport.NewStdioTransport(in, out)
	e.registerHandlers(t)

	log.Info("[MCP] serving on stdio")
	return t.Serve(ctx)
}

// registerHandlers wires the MCP methods into t and makes it the active transport
func (e *BrevoMCP) registerHandlers(t transport.Transport) {
	t.RegisterHandler("initialize", e.handleInitialize)
	t.RegisterHandler("ping", e.handlePing)
	t.RegisterHandler("tools/list", e.handleToolsList)
	t.RegisterHandler("tools/call", e.handleToolCall)
	t.RegisterHandler("resources/list", e.handleResourcesList)
	t.RegisterHandler("resources/read", e.handleResourcesRead)

	e.mu.Lock()
	e.transport = t
	e.mu.Unlock()
}

// handleInitialize handles MCP initialize requests
func (e *BrevoMCP) handleInitialize(_ context.Context, params any) (any, error) {
	version := e.version
	if version == "" {
		version = "1.0.0" // Fallback default
	}

	if paramMap, ok := params.(map[string]any); ok {
		if clientInfo, ok := paramMap["clientInfo"].(map[string]any); ok {
			log.WithFields(log.Fields{
				"client":  clientInfo["name"],
				"version": clientInfo["version"],
			}).Info("[MCP] client initialized")
		}
	}

	return InitializeResponse{
		ProtocolVersion: ProtocolVersion,
		Capabilities: &Capabilities{
			Tools:     map[string]any{"listChanged": true},
			Resources: map[string]any{},
		},
		ServerInfo: &ServerInfo{
			Name:    e.name,
			Version: version,
		},
		Instructions: e.config.Instructions,
	}, nil
}

// handlePing answers liveness checks
func (e *BrevoMCP) handlePing(_ context.Context, _ any) (any, error) {
	return map[string]any{}, nil
}

// handleToolsList handles tools/list requests
func (e *BrevoMCP) handleToolsList(_ context.Context, _ any) (any, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	tools := make([]types.Tool, 0, len(e.toolOrder))
	for _, name := range e.toolOrder {
		tools = append(tools, e.tools[name].tool)
	}

	return ToolsListResponse{
		Tools: tools,
	}, nil
}

// handleToolCall handles tools/call requests
func (e *BrevoMCP) handleToolCall(ctx context.Context, params any) (any, error) {
	paramMap, ok := params.(map[string]any)
	if !ok {
		return nil, types.NewError(types.CodeInvalidParams, "invalid parameters")
	}

	toolName, ok := paramMap["name"].(string)
	if !ok {
		return nil, types.NewError(types.CodeInvalidParams, "missing tool name")
	}

	arguments, ok := paramMap["arguments"].(map[string]any)
	if !ok {
		arguments = make(map[string]any)
	}

	e.mu.RLock()
	registered, exists := e.tools[toolName]
	e.mu.RUnlock()

	if !exists {
		return nil, types.NewError(types.CodeMethodNotFound, "Unknown tool: %s", toolName)
	}

	text, err := registered.handler(ctx, arguments)
	if err != nil {
		log.WithError(err).WithField("tool", toolName).Error("[MCP] tool call failed")

		code := types.CodeInternalError
		var mcpErr *types.MCPError
		if errors.As(err, &mcpErr) {
			code = mcpErr.Code
		}
		return nil, types.NewError(code, "Error executing %s: %s", toolName, err.Error())
	}

	return ToolCallResponse{
		Content: []Content{
			{
				Type: "text",
				Text: text,
			},
		},
	}, nil
}

// handleResourcesList handles resources/list requests
func (e *BrevoMCP) handleResourcesList(_ context.Context, _ any) (any, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	resources := make([]types.Resource, 0, len(e.resourceOrder))
	for _, uri := range e.resourceOrder {
		resources = append(resources, e.resources[uri].resource)
	}

	return ResourcesListResponse{
		Resources: resources,
	}, nil
}

// handleResourcesRead handles resources/read requests
func (e *BrevoMCP) handleResourcesRead(ctx context.Context, params any) (any, error) {
	paramMap, ok := params.(map[string]any)
	if !ok {
		return nil, types.NewError(types.CodeInvalidParams, "invalid parameters")
	}

	uri, ok := paramMap["uri"].(string)
	if !ok || uri == "" {
		return nil, types.NewError(types.CodeInvalidParams, "missing resource uri")
	}

	e.mu.RLock()
	registered, exists := e.resources[uri]
	e.mu.RUnlock()

	if !exists {
		return nil, types.NewError(types.CodeInvalidParams, "Unknown resource: %s", uri)
	}

	text, err := registered.handler(ctx)
	if err != nil {
		log.WithError(err).WithField("uri", uri).Error("[MCP] resource read failed")

		var mcpErr *types.MCPError
		if errors.As(err, &mcpErr) {
			return nil, mcpErr
		}
		return nil, types.NewError(types.CodeInternalError, "Failed to read %s: %s", uri, err.Error())
	}

	return ResourceReadResponse{
		Contents: []types.ResourceContents{
			{
				URI:      uri,
				MimeType: registered.resource.MimeType,
				Text:     text,
			},
		},
	}, nil
}

// GetServerInfo returns the server information (useful for testing)
func (e *BrevoMCP) GetServerInfo() (name, version, description string) {
	return e.name, e.version, e.description
}
