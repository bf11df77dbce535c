package transport

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/BrunoKrugel/brevo-mcp/pkg/types"
)

// HeaderSessionID carries the MCP session id on Streamable HTTP requests
const HeaderSessionID = "Mcp-Session-Id"

// HTTPTransport implements MCP over HTTP (Streamable HTTP transport)
type HTTPTransport struct {
	sessions  map[string]*Session
	mountPath string
	dispatcher
	sessionMu sync.RWMutex
}

// Session represents an HTTP session
type Session struct {
	ID      string
	Created int64
}

// NewHTTPTransport creates a new HTTP transport
func NewHTTPTransport(mountPath string) *HTTPTransport {
	return &HTTPTransport{
		dispatcher: dispatcher{handlers: make(map[string]MessageHandler)},
		mountPath:  mountPath,
		sessions:   make(map[string]*Session),
	}
}

// MountPath returns the mount path
func (h *HTTPTransport) MountPath() string {
	return h.mountPath
}

// HandleConnection handles GET requests on the mount path. Server initiated streams are not offered.
func (h *HTTPTransport) HandleConnection(c echo.Context) error {
	return echo.NewHTTPError(http.StatusMethodNotAllowed, "GET method not supported for HTTP transport")
}

// HandleMessage processes incoming MCP messages via POST
func (h *HTTPTransport) HandleMessage(c echo.Context) error {
	sessionID := c.Request().Header.Get(HeaderSessionID)

	var msg types.MCPMessage
	if err := c.Bind(&msg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid message format")
	}

	// Special handling for initialize requests
	if msg.Method == "initialize" {
		return h.handleInitialize(c, &msg)
	}

	// For other requests, validate session if we're using sessions
	if sessionID != "" && !h.isValidSession(sessionID) {
		return echo.NewHTTPError(http.StatusNotFound, "Session not found")
	}

	response := h.processMessage(c.Request().Context(), &msg)
	if response == nil {
		return c.NoContent(http.StatusAccepted)
	}

	return c.JSON(http.StatusOK, response)
}

// HandleDelete terminates the session named by the session header
func (h *HTTPTransport) HandleDelete(c echo.Context) error {
	sessionID := c.Request().Header.Get(HeaderSessionID)
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing session id")
	}

	h.sessionMu.Lock()
	_, exists := h.sessions[sessionID]
	delete(h.sessions, sessionID)
	h.sessionMu.Unlock()

	if !exists {
		return echo.NewHTTPError(http.StatusNotFound, "Session not found")
	}

	log.WithField("session", sessionID).Debug("[HTTP] session closed")
	return c.NoContent(http.StatusNoContent)
}

// handleInitialize specifically handles initialize requests
func (h *HTTPTransport) handleInitialize(c echo.Context, msg *types.MCPMessage) error {
	response := h.processMessage(c.Request().Context(), msg)

	// Create a new session for this client
	sessionID := h.createSession()
	c.Response().Header().Set(HeaderSessionID, sessionID)

	return c.JSON(http.StatusOK, response)
}

// createSession creates a new session
func (h *HTTPTransport) createSession() string {
	h.sessionMu.Lock()
	defer h.sessionMu.Unlock()

	sessionID := uuid.New().String()
	h.sessions[sessionID] = &Session{
		ID:      sessionID,
		Created: time.Now().Unix(),
	}

	log.WithField("session", sessionID).Debug("[HTTP] session created")
	return sessionID
}

// isValidSession checks if a session ID is valid
func (h *HTTPTransport) isValidSession(sessionID string) bool {
	h.sessionMu.RLock()
	defer h.sessionMu.RUnlock()
	_, exists := h.sessions[sessionID]
	return exists
}

// NotifyToolsChanged sends a tools changed notification (not applicable for HTTP transport)
func (h *HTTPTransport) NotifyToolsChanged() {
	log.Debug("[HTTP] NotifyToolsChanged called (no-op for HTTP transport)")
}
