package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/BrunoKrugel/brevo-mcp/pkg/types"
)

// MessageHandler defines the function signature for handling MCP messages
type MessageHandler func(ctx context.Context, params any) (any, error)

// Transport defines the interface for MCP transport mechanisms
type Transport interface {
	// RegisterHandler registers a message handler for a specific method
	RegisterHandler(method string, handler MessageHandler)

	// NotifyToolsChanged sends a notification that tools have changed
	NotifyToolsChanged()
}

// dispatcher routes JSON-RPC messages to registered handlers. It is shared by every transport.
type dispatcher struct {
	handlers map[string]MessageHandler
	mu       sync.RWMutex
}

// RegisterHandler registers a message handler
func (d *dispatcher) RegisterHandler(method string, handler MessageHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[method] = handler
}

// processMessage handles an incoming MCP message and returns a response.
// Notifications return nil.
func (d *dispatcher) processMessage(ctx context.Context, msg *types.MCPMessage) *types.MCPMessage {
	d.mu.RLock()
	handler, exists := d.handlers[msg.Method]
	d.mu.RUnlock()

	if msg.IsNotification() {
		if exists {
			if _, err := handler(ctx, msg.Params); err != nil {
				log.WithError(err).WithField("method", msg.Method).Warn("[MCP] notification handler failed")
			}
		}
		return nil
	}

	response := &types.MCPMessage{
		Jsonrpc: "2.0",
		ID:      msg.ID,
	}

	if !exists {
		response.Error = &types.MCPError{
			Code:    types.CodeMethodNotFound,
			Message: fmt.Sprintf("Method '%s' not found", msg.Method),
		}
		return response
	}

	result, err := handler(ctx, msg.Params)
	if err != nil {
		var mcpErr *types.MCPError
		if errors.As(err, &mcpErr) {
			response.Error = mcpErr
		} else {
			response.Error = &types.MCPError{
				Code:    types.CodeInternalError,
				Message: err.Error(),
			}
		}
	} else {
		response.Result = result
	}

	return response
}
