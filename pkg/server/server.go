// Package server assembles the MCP server: tools, the athlete profile
// resource and the prompt templates.
package server

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"intervalsmcp/pkg/config"
	"intervalsmcp/pkg/icu"
	"intervalsmcp/pkg/response"
	"intervalsmcp/pkg/tools"
)

const (
	serverName = "intervals-icu"

	profileResourceURI = "intervals-icu://athlete/profile"

	instructions = "Tools for querying and managing Intervals.icu training data: " +
		"activities, wellness, calendar events, workout library, gear, sport " +
		"settings and performance curves. Every tool returns a JSON envelope " +
		"with either a 'data' or an 'error' key."
)

// New builds the MCP server with every capability registered.
func New(cfg *config.Config, log *slog.Logger, version string) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(false),
		server.WithInstructions(instructions),
	)

	handlers := tools.NewHandlers(cfg, log)
	s.AddTools(handlers.All()...)

	s.AddResource(
		mcp.NewResource(
			profileResourceURI,
			"Athlete Profile",
			mcp.WithResourceDescription("Complete athlete profile with fitness metrics and sport settings."),
			mcp.WithMIMEType("application/json"),
		),
		profileResourceHandler(cfg, log),
	)

	registerPrompts(s)

	return s
}

// ServeStdio runs the server on stdin/stdout until the stream closes.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func profileResourceHandler(cfg *config.Config, log *slog.Logger) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text := profileResourceText(ctx, cfg, log)
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     text,
			},
		}, nil
	}
}

func profileResourceText(ctx context.Context, cfg *config.Config, log *slog.Logger) string {
	client, err := icu.Open(cfg)
	if err != nil {
		return response.Error(response.APIError, err.Error())
	}
	defer client.Close()

	athlete, err := client.GetAthlete(ctx)
	if err != nil {
		var apiErr *icu.APIError
		if errors.As(err, &apiErr) {
			log.Error("profile resource fetch failed", "status", apiErr.StatusCode, "message", apiErr.Message)
			return response.Error(response.APIError, apiErr.Message)
		}
		log.Error("profile resource fetch failed", "error", err)
		return response.Error(response.InternalError, "Unexpected error: "+err.Error())
	}

	return response.Success(tools.AthleteProfileData(athlete), map[string]any{
		"metadata": map[string]any{"type": "athlete_profile"},
	})
}
