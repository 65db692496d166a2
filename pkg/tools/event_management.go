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

var eventCategories = map[string]bool{
	"WORKOUT": true,
	"NOTE":    true,
	"RACE":    true,
	"GOAL":    true,
}

func (h *Handlers) eventManagementTools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("create_event",
				mcp.WithDescription("Create a calendar event: a planned workout, note, race or goal."),
				mcp.WithString("name", mcp.Required(), mcp.Description("Event name")),
				mcp.WithString("start_date", mcp.Required(), mcp.Description("Date in YYYY-MM-DD format")),
				mcp.WithString("category", mcp.Description("Event category"), mcp.Enum("WORKOUT", "NOTE", "RACE", "GOAL"), mcp.DefaultString("WORKOUT")),
				mcp.WithString("description", mcp.Description("Event description; for workouts this is the structured workout text")),
				mcp.WithString("type", mcp.Description("Activity type, e.g. Ride or Run")),
				mcp.WithNumber("moving_time", mcp.Description("Planned duration in seconds")),
				mcp.WithNumber("distance", mcp.Description("Planned distance in meters")),
				mcp.WithNumber("training_load", mcp.Description("Planned training load")),
				mcp.WithString("color", mcp.Description("Calendar color")),
			),
			Handler: h.createEvent,
		},
		{
			Tool: mcp.NewTool("update_event",
				mcp.WithDescription("Update fields on a calendar event."),
				mcp.WithNumber("event_id", mcp.Required(), mcp.Description("Event ID")),
				mcp.WithString("data", mcp.Required(), mcp.Description("JSON object with the fields to update")),
			),
			Handler: h.updateEvent,
		},
		{
			Tool: mcp.NewTool("delete_event",
				mcp.WithDescription("Delete a calendar event. This cannot be undone."),
				mcp.WithNumber("event_id", mcp.Required(), mcp.Description("Event ID")),
			),
			Handler: h.deleteEvent,
		},
		{
			Tool: mcp.NewTool("bulk_create_events",
				mcp.WithDescription("Create multiple calendar events in one call."),
				mcp.WithString("events", mcp.Required(), mcp.Description("JSON array of event objects; each needs start_date_local and category")),
			),
			Handler: h.bulkCreateEvents,
		},
		{
			Tool: mcp.NewTool("bulk_delete_events",
				mcp.WithDescription("Delete multiple calendar events in one call."),
				mcp.WithString("event_ids", mcp.Required(), mcp.Description("JSON array of event IDs")),
			),
			Handler: h.bulkDeleteEvents,
		},
		{
			Tool: mcp.NewTool("duplicate_event",
				mcp.WithDescription("Copy an existing event to a new date."),
				mcp.WithNumber("event_id", mcp.Required(), mcp.Description("Event ID to duplicate")),
				mcp.WithString("new_date", mcp.Required(), mcp.Description("Date for the copy in YYYY-MM-DD format")),
			),
			Handler: h.duplicateEvent,
		},
	}
}

func (h *Handlers) createEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil || name == "" {
		return errorResult(response.ValidationError, "name is required"), nil
	}
	startDate, err := req.RequireString("start_date")
	if err != nil || startDate == "" {
		return errorResult(response.ValidationError, "start_date is required"), nil
	}
	category := req.GetString("category", "WORKOUT")
	if !eventCategories[category] {
		return errorResult(response.ValidationError,
			"category must be one of 'WORKOUT', 'NOTE', 'RACE' or 'GOAL'"), nil
	}

	fields := map[string]any{
		"name":             name,
		"start_date_local": startDate,
		"category":         category,
	}
	if v := req.GetString("description", ""); v != "" {
		fields["description"] = v
	}
	if v := req.GetString("type", ""); v != "" {
		fields["type"] = v
	}
	if v := req.GetInt("moving_time", 0); v > 0 {
		fields["moving_time"] = v
	}
	if v := req.GetFloat("distance", 0); v > 0 {
		fields["distance"] = v
	}
	if v := req.GetInt("training_load", 0); v > 0 {
		fields["icu_training_load"] = v
	}
	if v := req.GetString("color", ""); v != "" {
		fields["color"] = v
	}

	client, err := h.open()
	if err != nil {
		return h.failure("create_event", err), nil
	}
	defer client.Close()

	event, err := client.CreateEvent(ctx, fields)
	if err != nil {
		return h.failure("create_event", err), nil
	}

	return successResult(createdEventItem(event), map[string]any{
		"query_type": "create_event",
		"analysis": map[string]any{
			"message": fmt.Sprintf("%s '%s' created for %s", category, name, startDate),
		},
	}), nil
}

func (h *Handlers) updateEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eventID, err := req.RequireInt("event_id")
	if err != nil {
		return errorResult(response.ValidationError, "event_id is required"), nil
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
		return h.failure("update_event", err), nil
	}
	defer client.Close()

	event, err := client.UpdateEvent(ctx, eventID, fields)
	if err != nil {
		return h.failure("update_event", err), nil
	}

	return successResult(createdEventItem(event), map[string]any{
		"query_type": "update_event",
		"analysis": map[string]any{
			"message":        fmt.Sprintf("Event %d updated successfully", eventID),
			"fields_updated": len(fields),
		},
	}), nil
}

func (h *Handlers) deleteEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eventID, err := req.RequireInt("event_id")
	if err != nil {
		return errorResult(response.ValidationError, "event_id is required"), nil
	}

	client, err := h.open()
	if err != nil {
		return h.failure("delete_event", err), nil
	}
	defer client.Close()

	if err := client.DeleteEvent(ctx, eventID); err != nil {
		return h.failure("delete_event", err), nil
	}

	return successResult(
		map[string]any{"deleted": true, "event_id": eventID},
		map[string]any{
			"query_type": "delete_event",
			"analysis": map[string]any{
				"message": fmt.Sprintf("Event %d deleted successfully", eventID),
			},
		},
	), nil
}

func (h *Handlers) bulkCreateEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("events")
	if err != nil {
		return errorResult(response.ValidationError, "events is required"), nil
	}

	var events []map[string]any
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		return errorResult(response.ValidationError, "Invalid JSON format: "+err.Error()), nil
	}
	if len(events) == 0 {
		return errorResult(response.ValidationError, "events array cannot be empty"), nil
	}

	for i, event := range events {
		for _, field := range []string{"start_date_local", "category"} {
			if _, ok := event[field]; !ok {
				return errorResult(response.ValidationError,
					fmt.Sprintf("Event at index %d missing required field: %s", i, field)), nil
			}
		}
		if cat, ok := event["category"].(string); ok && !eventCategories[cat] {
			return errorResult(response.ValidationError,
				fmt.Sprintf("Event at index %d has invalid category: %s", i, cat)), nil
		}
	}

	client, err := h.open()
	if err != nil {
		return h.failure("bulk_create_events", err), nil
	}
	defer client.Close()

	created, err := client.BulkCreateEvents(ctx, events)
	if err != nil {
		return h.failure("bulk_create_events", err), nil
	}

	items := make([]map[string]any, 0, len(created))
	for i := range created {
		items = append(items, createdEventItem(&created[i]))
	}

	return successResult(
		map[string]any{"events": items, "count": len(items)},
		map[string]any{
			"query_type": "bulk_create_events",
			"analysis": map[string]any{
				"message": fmt.Sprintf("%d events created successfully", len(items)),
			},
		},
	), nil
}

func (h *Handlers) bulkDeleteEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("event_ids")
	if err != nil {
		return errorResult(response.ValidationError, "event_ids is required"), nil
	}

	var eventIDs []int
	if err := json.Unmarshal([]byte(raw), &eventIDs); err != nil {
		return errorResult(response.ValidationError, "event_ids must be a JSON array of integers"), nil
	}
	if len(eventIDs) == 0 {
		return errorResult(response.ValidationError, "event_ids array cannot be empty"), nil
	}

	client, err := h.open()
	if err != nil {
		return h.failure("bulk_delete_events", err), nil
	}
	defer client.Close()

	result, err := client.BulkDeleteEvents(ctx, eventIDs)
	if err != nil {
		return h.failure("bulk_delete_events", err), nil
	}

	return successResult(
		map[string]any{
			"requested": len(eventIDs),
			"result":    result,
		},
		map[string]any{
			"query_type": "bulk_delete_events",
			"analysis": map[string]any{
				"message": fmt.Sprintf("Bulk delete of %d events submitted", len(eventIDs)),
			},
		},
	), nil
}

func (h *Handlers) duplicateEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eventID, err := req.RequireInt("event_id")
	if err != nil {
		return errorResult(response.ValidationError, "event_id is required"), nil
	}
	newDate, err := req.RequireString("new_date")
	if err != nil || newDate == "" {
		return errorResult(response.ValidationError, "new_date is required"), nil
	}

	client, err := h.open()
	if err != nil {
		return h.failure("duplicate_event", err), nil
	}
	defer client.Close()

	event, err := client.DuplicateEvent(ctx, eventID, newDate)
	if err != nil {
		return h.failure("duplicate_event", err), nil
	}

	return successResult(createdEventItem(event), map[string]any{
		"query_type": "duplicate_event",
		"analysis": map[string]any{
			"message": fmt.Sprintf("Event %d duplicated to %s", eventID, newDate),
		},
	}), nil
}

func createdEventItem(e *icu.Event) map[string]any {
	item := map[string]any{
		"id":       e.ID,
		"date":     datePart(e.StartDateLocal),
		"name":     eventDisplayName(e),
		"category": e.Category,
	}
	if hasStr(e.Type) {
		item["type"] = *e.Type
	}
	if hasStr(e.Description) {
		item["description"] = *e.Description
	}
	if hasInt(e.MovingTime) {
		item["duration_seconds"] = *e.MovingTime
	}
	if distance := eventDistance(e); distance > 0 {
		item["distance_meters"] = distance
	}
	if hasInt(e.TrainingLoad) {
		item["training_load"] = *e.TrainingLoad
	}
	return item
}
