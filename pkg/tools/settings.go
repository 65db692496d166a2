package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"intervalsmcp/pkg/icu"
	"intervalsmcp/pkg/response"
)

func (h *Handlers) sportSettingsTools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("get_sport_settings",
				mcp.WithDescription("Get per-sport settings: FTP, FTHR, pace and swim thresholds."),
			),
			Handler: h.getSportSettings,
		},
		{
			Tool: mcp.NewTool("create_sport_settings",
				mcp.WithDescription("Create a sport settings record."),
				mcp.WithString("data", mcp.Required(), mcp.Description("JSON object with the settings, e.g. {\"type\": \"Ride\", \"ftp\": 250}")),
			),
			Handler: h.createSportSettings,
		},
		{
			Tool: mcp.NewTool("update_sport_settings",
				mcp.WithDescription("Update a sport settings record (FTP, FTHR, pace threshold and so on)."),
				mcp.WithNumber("sport_id", mcp.Required(), mcp.Description("Sport settings ID")),
				mcp.WithString("data", mcp.Required(), mcp.Description("JSON object with the fields to update")),
			),
			Handler: h.updateSportSettings,
		},
		{
			Tool: mcp.NewTool("apply_sport_settings",
				mcp.WithDescription("Apply a sport's zones and thresholds to historical activities."),
				mcp.WithNumber("sport_id", mcp.Required(), mcp.Description("Sport settings ID")),
				mcp.WithString("oldest", mcp.Description("Oldest date to apply settings to, YYYY-MM-DD")),
			),
			Handler: h.applySportSettings,
		},
		{
			Tool: mcp.NewTool("delete_sport_settings",
				mcp.WithDescription("Delete a sport settings record."),
				mcp.WithNumber("sport_id", mcp.Required(), mcp.Description("Sport settings ID")),
			),
			Handler: h.deleteSportSettings,
		},
	}
}

func (h *Handlers) getSportSettings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	client, err := h.open()
	if err != nil {
		return h.failure("get_sport_settings", err), nil
	}
	defer client.Close()

	settings, err := client.GetSportSettings(ctx)
	if err != nil {
		return h.failure("get_sport_settings", err), nil
	}

	items := make([]map[string]any, 0, len(settings))
	for _, s := range settings {
		items = append(items, sportSettingItem(&s))
	}

	return successResult(
		map[string]any{"settings": items, "count": len(items)},
		map[string]any{"query_type": "sport_settings"},
	), nil
}

func (h *Handlers) createSportSettings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("data")
	if err != nil {
		return errorResult(response.ValidationError, "data is required"), nil
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return errorResult(response.ValidationError, "Invalid JSON format: "+err.Error()), nil
	}
	if len(fields) == 0 {
		return errorResult(response.ValidationError, "data must contain at least one field"), nil
	}

	client, err := h.open()
	if err != nil {
		return h.failure("create_sport_settings", err), nil
	}
	defer client.Close()

	setting, err := client.CreateSportSettings(ctx, fields)
	if err != nil {
		return h.failure("create_sport_settings", err), nil
	}

	return successResult(sportSettingItem(setting), map[string]any{
		"query_type": "create_sport_settings",
		"analysis": map[string]any{
			"message": "Sport settings created successfully",
		},
	}), nil
}

func (h *Handlers) updateSportSettings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sportID, err := req.RequireInt("sport_id")
	if err != nil {
		return errorResult(response.ValidationError, "sport_id is required"), nil
	}
	raw, err := req.RequireString("data")
	if err != nil {
		return errorResult(response.ValidationError, "data is required"), nil
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return errorResult(response.ValidationError, "Invalid JSON format: "+err.Error()), nil
	}
	if len(fields) == 0 {
		return errorResult(response.ValidationError, "data must contain at least one field to update"), nil
	}

	client, err := h.open()
	if err != nil {
		return h.failure("update_sport_settings", err), nil
	}
	defer client.Close()

	setting, err := client.UpdateSportSettings(ctx, sportID, fields)
	if err != nil {
		return h.failure("update_sport_settings", err), nil
	}

	return successResult(sportSettingItem(setting), map[string]any{
		"query_type": "update_sport_settings",
		"analysis": map[string]any{
			"message":        fmt.Sprintf("Sport settings %d updated successfully", sportID),
			"fields_updated": len(fields),
		},
	}), nil
}

func (h *Handlers) applySportSettings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sportID, err := req.RequireInt("sport_id")
	if err != nil {
		return errorResult(response.ValidationError, "sport_id is required"), nil
	}
	oldest := req.GetString("oldest", "")

	client, err := h.open()
	if err != nil {
		return h.failure("apply_sport_settings", err), nil
	}
	defer client.Close()

	result, err := client.ApplySportSettings(ctx, sportID, oldest)
	if err != nil {
		return h.failure("apply_sport_settings", err), nil
	}

	analysis := map[string]any{
		"message": fmt.Sprintf("Sport settings %d applied to historical activities", sportID),
	}
	if oldest != "" {
		analysis["applied_from"] = oldest
	}

	return successResult(
		map[string]any{"sport_id": sportID, "result": result},
		map[string]any{
			"query_type": "apply_sport_settings",
			"analysis":   analysis,
		},
	), nil
}

func (h *Handlers) deleteSportSettings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sportID, err := req.RequireInt("sport_id")
	if err != nil {
		return errorResult(response.ValidationError, "sport_id is required"), nil
	}

	client, err := h.open()
	if err != nil {
		return h.failure("delete_sport_settings", err), nil
	}
	defer client.Close()

	if err := client.DeleteSportSettings(ctx, sportID); err != nil {
		return h.failure("delete_sport_settings", err), nil
	}

	return successResult(
		map[string]any{"deleted": true, "sport_id": sportID},
		map[string]any{
			"query_type": "delete_sport_settings",
			"analysis": map[string]any{
				"message": fmt.Sprintf("Sport settings %d deleted successfully", sportID),
			},
		},
	), nil
}

func sportSettingItem(s *icu.SportSetting) map[string]any {
	item := map[string]any{"id": s.ID}
	if hasStr(s.Type) {
		item["type"] = *s.Type
	}
	if hasInt(s.FTP) {
		item["ftp"] = *s.FTP
	}
	if hasInt(s.FTHR) {
		item["fthr"] = *s.FTHR
	}
	if hasFloat(s.PaceThreshold) {
		item["pace_threshold"] = *s.PaceThreshold
	}
	if hasFloat(s.SwimThreshold) {
		item["swim_threshold"] = *s.SwimThreshold
	}
	return item
}
