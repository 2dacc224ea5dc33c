// Package http provides the HTTP transport for the bridge.
package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/openclaw/a2a-bridge/internal/a2a"
	"github.com/openclaw/a2a-bridge/internal/config"
	"github.com/openclaw/a2a-bridge/internal/gateway"
	"github.com/openclaw/a2a-bridge/internal/identity"
)

// Handler handles bridge HTTP requests.
type Handler struct {
	client  *gateway.Client
	cardDir string

	// newTaskID generates per-call task identifiers. Tests substitute a
	// deterministic generator.
	newTaskID func() string
}

// NewHandler creates a new bridge handler.
func NewHandler(cfg *config.Config, client *gateway.Client) *Handler {
	return &Handler{
		client:    client,
		cardDir:   cfg.AgentCardDir,
		newTaskID: uuid.NewString,
	}
}

// RegisterRoutes registers bridge routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/.well-known/agent.json", h.AgentCard)
	e.GET("/.well-known/agent-card.json", h.AgentCard)
	e.GET("/healthz", h.Health)

	// A2A callers POST JSON-RPC to any path.
	e.POST("/", h.RPC)
	e.POST("/*", h.RPC)
}

// Health returns health status.
// GET /healthz
func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// AgentCard serves a discovery document verbatim from the agent card directory.
// GET /.well-known/agent.json, GET /.well-known/agent-card.json
func (h *Handler) AgentCard(c echo.Context) error {
	filename := path.Base(c.Request().URL.Path)
	content, err := os.ReadFile(filepath.Join(h.cardDir, filename))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("%s not found", filename))
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, content)
}

// RPC dispatches an inbound A2A JSON-RPC request.
// POST /*
func (h *Handler) RPC(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, a2a.NewError(nil, a2a.CodeParseError, "Parse error"))
	}

	var req a2a.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return c.JSON(http.StatusBadRequest, a2a.NewError(nil, a2a.CodeParseError, "Parse error"))
	}

	userText := a2a.ExtractText(req.Params.Message.Parts)
	if userText == "" {
		return c.JSON(http.StatusOK, a2a.NewError(req.ID, a2a.CodeInvalidParams, "No text in message parts"))
	}

	// Sender identity pins the gateway session; absence is fine.
	senderID := identity.Resolve(c.Request().Header)
	if senderID != "" {
		log.Printf("Session pinned to sender: %s", senderID)
	}

	switch req.Method {
	case a2a.MethodSend:
		return h.handleSend(c, &req, userText, senderID)
	case a2a.MethodStream:
		return h.handleStream(c, &req, userText, senderID)
	default:
		return c.JSON(http.StatusOK, a2a.NewError(req.ID, a2a.CodeMethodNotFound, fmt.Sprintf("Unknown method: %s", req.Method)))
	}
}

// handleSend proxies a non-streaming message/send call.
func (h *Handler) handleSend(c echo.Context, req *a2a.Request, userText, senderID string) error {
	text, err := h.client.CreateChatCompletion(c.Request().Context(), userText, senderID)
	if err != nil {
		return c.JSON(http.StatusOK, a2a.NewError(req.ID, a2a.CodeGatewayError, err.Error()))
	}
	return c.JSON(http.StatusOK, a2a.NewResult(req.ID, h.newTaskID(), a2a.StateCompleted, text))
}
