package types

import (
	"context"
	"encoding/json"
	"fmt"
)

// JSON-RPC error codes used by the server
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// RawMessage is a raw encoded JSON value.
// It implements Marshaler and Unmarshaler and can
// be used to delay JSON decoding or precompute a JSON encoding.
// Defined as its own type based on json.RawMessage to be available
// for use in other packages (like server.go) without modifying them.
type RawMessage json.RawMessage

// MarshalJSON returns m as the JSON encoding of m.
func (m RawMessage) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	return m, nil
}

// UnmarshalJSON sets *m to a copy of data.
func (m *RawMessage) UnmarshalJSON(data []byte) error {
	if m == nil {
		return fmt.Errorf("cannot unmarshal into nil RawMessage")
	}
	*m = append((*m)[0:0], data...)
	return nil
}

// MCPMessage represents a generic MCP message structure
type MCPMessage struct {
	Params  any        `json:"params,omitempty"`
	Result  any        `json:"result,omitempty"`
	Error   *MCPError  `json:"error,omitempty"`
	Jsonrpc string     `json:"jsonrpc"`
	Method  string     `json:"method,omitempty"`
	ID      RawMessage `json:"id,omitempty"`
}

// IsNotification reports whether the message expects no response
func (m *MCPMessage) IsNotification() bool {
	return len(m.ID) == 0 && m.Method != ""
}

// MCPError represents an MCP error
type MCPError struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// NewError creates an MCPError with the given code
func NewError(code int, format string, args ...any) *MCPError {
	return &MCPError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *MCPError) Error() string {
	return e.Message
}

// Tool represents an MCP tool definition
type Tool struct {
	InputSchema any    `json:"inputSchema"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ToolHandler executes a tool call and returns its text result
type ToolHandler func(ctx context.Context, arguments map[string]any) (string, error)

// Resource represents an MCP resource listed by resources/list
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ResourceContents is one entry of a resources/read response
type ResourceContents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text"`
}

// ResourceHandler produces the text of a resource
type ResourceHandler func(ctx context.Context) (string, error)
