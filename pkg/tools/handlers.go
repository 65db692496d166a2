// Package tools implements the MCP tool surface. Every handler returns a
// JSON envelope as tool text and never surfaces a Go error to the MCP
// runtime for domain failures.
package tools

import (
	"errors"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"intervalsmcp/pkg/config"
	"intervalsmcp/pkg/icu"
	"intervalsmcp/pkg/response"
)

// Handlers holds the dependencies shared by all tool handlers.
type Handlers struct {
	cfg *config.Config
	log *slog.Logger
	now func() time.Time
}

// NewHandlers builds the tool handler set.
func NewHandlers(cfg *config.Config, log *slog.Logger) *Handlers {
	return &Handlers{
		cfg: cfg,
		log: log,
		now: time.Now,
	}
}

// All returns every tool of the server.
func (h *Handlers) All() []server.ServerTool {
	var tools []server.ServerTool
	tools = append(tools, h.activityTools()...)
	tools = append(tools, h.analysisTools()...)
	tools = append(tools, h.athleteTools()...)
	tools = append(tools, h.wellnessTools()...)
	tools = append(tools, h.eventTools()...)
	tools = append(tools, h.eventManagementTools()...)
	tools = append(tools, h.curveTools()...)
	tools = append(tools, h.libraryTools()...)
	tools = append(tools, h.gearTools()...)
	tools = append(tools, h.sportSettingsTools()...)
	return tools
}

func (h *Handlers) open() (*icu.Client, error) {
	return icu.Open(h.cfg)
}

func (h *Handlers) today() time.Time {
	t := h.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func successResult(data any, extra map[string]any) *mcp.CallToolResult {
	return mcp.NewToolResultText(response.Success(data, extra))
}

func errorResult(typ response.ErrorType, message string) *mcp.CallToolResult {
	return mcp.NewToolResultText(response.Error(typ, message))
}

// failure maps a client error to the matching error envelope.
func (h *Handlers) failure(tool string, err error) *mcp.CallToolResult {
	var apiErr *icu.APIError
	if errors.As(err, &apiErr) {
		h.log.Error("api call failed", "tool", tool, "status", apiErr.StatusCode, "message", apiErr.Message)
		return errorResult(response.APIError, apiErr.Message)
	}
	h.log.Error("tool failed", "tool", tool, "error", err)
	return errorResult(response.InternalError, "Unexpected error: "+err.Error())
}

// Optional metrics appear in summaries only when present and non-zero,
// matching the wire behavior agents already depend on.

func hasInt(v *int) bool {
	return v != nil && *v != 0
}

func hasFloat(v *float64) bool {
	return v != nil && *v != 0
}

func hasStr(v *string) bool {
	return v != nil && *v != ""
}

func strOr(v *string, fallback string) string {
	if hasStr(v) {
		return *v
	}
	return fallback
}

// datePart strips the time portion from an ISO-8601 local timestamp.
func datePart(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == 'T' {
			return s[:i]
		}
	}
	return s
}
