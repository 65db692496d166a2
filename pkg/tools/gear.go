package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"intervalsmcp/pkg/response"
)

func (h *Handlers) gearTools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("get_gear_list",
				mcp.WithDescription("Get all gear items with lifetime usage and maintenance reminders."),
			),
			Handler: h.getGearList,
		},
		{
			Tool: mcp.NewTool("create_gear",
				mcp.WithDescription("Create a gear item, e.g. a bike or pair of shoes."),
				mcp.WithString("name", mcp.Required(), mcp.Description("Gear name")),
				mcp.WithString("gear_type", mcp.Required(), mcp.Description("Gear type, e.g. BIKE or SHOE")),
				mcp.WithString("brand", mcp.Description("Brand name")),
				mcp.WithString("model", mcp.Description("Model name")),
			),
			Handler: h.createGear,
		},
		{
			Tool: mcp.NewTool("update_gear",
				mcp.WithDescription("Update fields on a gear item."),
				mcp.WithString("gear_id", mcp.Required(), mcp.Description("Gear ID")),
				mcp.WithString("data", mcp.Required(), mcp.Description("JSON object with the fields to update")),
			),
			Handler: h.updateGear,
		},
		{
			Tool: mcp.NewTool("delete_gear",
				mcp.WithDescription("Delete a gear item. This cannot be undone."),
				mcp.WithString("gear_id", mcp.Required(), mcp.Description("Gear ID")),
			),
			Handler: h.deleteGear,
		},
		{
			Tool: mcp.NewTool("create_gear_reminder",
				mcp.WithDescription("Add a maintenance reminder to a gear item, triggered by distance or time."),
				mcp.WithString("gear_id", mcp.Required(), mcp.Description("Gear ID")),
				mcp.WithString("text", mcp.Required(), mcp.Description("Reminder text, e.g. 'Replace chain'")),
				mcp.WithNumber("distance_alert", mcp.Description("Trigger distance in meters")),
				mcp.WithNumber("time_alert", mcp.Description("Trigger time in seconds")),
			),
			Handler: h.createGearReminder,
		},
		{
			Tool: mcp.NewTool("update_gear_reminder",
				mcp.WithDescription("Update a gear maintenance reminder, including snoozing it."),
				mcp.WithString("gear_id", mcp.Required(), mcp.Description("Gear ID")),
				mcp.WithNumber("reminder_id", mcp.Required(), mcp.Description("Reminder ID")),
				mcp.WithString("data", mcp.Required(), mcp.Description("JSON object with the fields to update")),
			),
			Handler: h.updateGearReminder,
		},
	}
}

func (h *Handlers) getGearList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	client, err := h.open()
	if err != nil {
		return h.failure("get_gear_list", err), nil
	}
	defer client.Close()

	gear, err := client.GetGear(ctx)
	if err != nil {
		return h.failure("get_gear_list", err), nil
	}

	if len(gear) == 0 {
		return successResult(
			map[string]any{"gear": []any{}, "count": 0},
			map[string]any{"metadata": map[string]any{"message": "No gear found"}},
		), nil
	}

	items := make([]map[string]any, 0, len(gear))
	activeCount := 0
	dueReminders := 0

	for i := range gear {
		g := &gear[i]
		item := map[string]any{
			"id":   g.ID,
			"name": g.Name,
		}
		if hasStr(g.GearType) {
			item["type"] = *g.GearType
		}
		if hasStr(g.Brand) {
			item["brand"] = *g.Brand
		}
		if hasStr(g.Model) {
			item["model"] = *g.Model
		}
		if g.Active != nil {
			item["active"] = *g.Active
			if *g.Active {
				activeCount++
			}
		}
		if g.Primary != nil {
			item["primary"] = *g.Primary
		}

		usage := map[string]any{}
		if hasFloat(g.Distance) {
			usage["distance_meters"] = *g.Distance
		}
		if hasInt(g.MovingTime) {
			usage["moving_time_seconds"] = *g.MovingTime
		}
		if hasInt(g.ActivityCount) {
			usage["activity_count"] = *g.ActivityCount
		}
		if len(usage) > 0 {
			item["usage"] = usage
		}

		if len(g.Reminders) > 0 {
			reminders := make([]map[string]any, 0, len(g.Reminders))
			for _, r := range g.Reminders {
				reminder := map[string]any{"id": r.ID}
				if hasStr(r.Text) {
					reminder["text"] = *r.Text
				}
				if hasFloat(r.DistanceAlert) {
					reminder["distance_alert_meters"] = *r.DistanceAlert
				}
				if hasInt(r.TimeAlert) {
					reminder["time_alert_seconds"] = *r.TimeAlert
				}
				if hasFloat(r.DueDistance) {
					reminder["due_distance_meters"] = *r.DueDistance
				}
				if hasInt(r.DueTime) {
					reminder["due_time_seconds"] = *r.DueTime
				}
				if r.IsDue != nil {
					reminder["is_due"] = *r.IsDue
					if *r.IsDue {
						dueReminders++
					}
				}
				if hasStr(r.SnoozedUntil) {
					reminder["snoozed_until"] = *r.SnoozedUntil
				}
				reminders = append(reminders, reminder)
			}
			item["reminders"] = reminders
		}

		items = append(items, item)
	}

	summary := map[string]any{
		"total_gear":    len(gear),
		"active_gear":   activeCount,
		"due_reminders": dueReminders,
	}

	return successResult(
		map[string]any{"gear": items, "summary": summary},
		map[string]any{"query_type": "gear_list"},
	), nil
}

func (h *Handlers) createGear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil || name == "" {
		return errorResult(response.ValidationError, "name is required"), nil
	}
	gearType, err := req.RequireString("gear_type")
	if err != nil || gearType == "" {
		return errorResult(response.ValidationError, "gear_type is required"), nil
	}

	fields := map[string]any{
		"name":      name,
		"gear_type": gearType,
	}
	if brand := req.GetString("brand", ""); brand != "" {
		fields["brand"] = brand
	}
	if model := req.GetString("model", ""); model != "" {
		fields["model"] = model
	}

	client, err := h.open()
	if err != nil {
		return h.failure("create_gear", err), nil
	}
	defer client.Close()

	gear, err := client.CreateGear(ctx, fields)
	if err != nil {
		return h.failure("create_gear", err), nil
	}

	return successResult(
		map[string]any{
			"id":   gear.ID,
			"name": gear.Name,
			"type": gear.GearType,
		},
		map[string]any{
			"query_type": "create_gear",
			"analysis": map[string]any{
				"message": fmt.Sprintf("Gear '%s' created successfully", name),
			},
		},
	), nil
}

func (h *Handlers) updateGear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gearID, err := req.RequireString("gear_id")
	if err != nil {
		return errorResult(response.ValidationError, "gear_id is required"), nil
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
		return h.failure("update_gear", err), nil
	}
	defer client.Close()

	gear, err := client.UpdateGear(ctx, gearID, fields)
	if err != nil {
		return h.failure("update_gear", err), nil
	}

	return successResult(
		map[string]any{
			"id":   gear.ID,
			"name": gear.Name,
			"type": gear.GearType,
		},
		map[string]any{
			"query_type": "update_gear",
			"analysis": map[string]any{
				"message":        fmt.Sprintf("Gear %s updated successfully", gearID),
				"fields_updated": len(fields),
			},
		},
	), nil
}

func (h *Handlers) deleteGear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gearID, err := req.RequireString("gear_id")
	if err != nil {
		return errorResult(response.ValidationError, "gear_id is required"), nil
	}

	client, err := h.open()
	if err != nil {
		return h.failure("delete_gear", err), nil
	}
	defer client.Close()

	if err := client.DeleteGear(ctx, gearID); err != nil {
		return h.failure("delete_gear", err), nil
	}

	return successResult(
		map[string]any{"deleted": true, "gear_id": gearID},
		map[string]any{
			"query_type": "delete_gear",
			"analysis": map[string]any{
				"message": fmt.Sprintf("Gear %s deleted successfully", gearID),
			},
		},
	), nil
}

func (h *Handlers) createGearReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gearID, err := req.RequireString("gear_id")
	if err != nil {
		return errorResult(response.ValidationError, "gear_id is required"), nil
	}
	text, err := req.RequireString("text")
	if err != nil || text == "" {
		return errorResult(response.ValidationError, "text is required"), nil
	}

	fields := map[string]any{"text": text}
	if v := req.GetFloat("distance_alert", 0); v > 0 {
		fields["distance_alert"] = v
	}
	if v := req.GetInt("time_alert", 0); v > 0 {
		fields["time_alert"] = v
	}

	client, err := h.open()
	if err != nil {
		return h.failure("create_gear_reminder", err), nil
	}
	defer client.Close()

	reminder, err := client.CreateGearReminder(ctx, gearID, fields)
	if err != nil {
		return h.failure("create_gear_reminder", err), nil
	}

	return successResult(
		map[string]any{
			"id":      reminder.ID,
			"gear_id": gearID,
			"text":    reminder.Text,
		},
		map[string]any{
			"query_type": "create_gear_reminder",
			"analysis": map[string]any{
				"message": fmt.Sprintf("Reminder added to gear %s", gearID),
			},
		},
	), nil
}

func (h *Handlers) updateGearReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gearID, err := req.RequireString("gear_id")
	if err != nil {
		return errorResult(response.ValidationError, "gear_id is required"), nil
	}
	reminderID, err := req.RequireInt("reminder_id")
	if err != nil {
		return errorResult(response.ValidationError, "reminder_id is required"), nil
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
		return h.failure("update_gear_reminder", err), nil
	}
	defer client.Close()

	reminder, err := client.UpdateGearReminder(ctx, gearID, reminderID, fields)
	if err != nil {
		return h.failure("update_gear_reminder", err), nil
	}

	return successResult(
		map[string]any{
			"id":      reminder.ID,
			"gear_id": gearID,
			"text":    reminder.Text,
		},
		map[string]any{
			"query_type": "update_gear_reminder",
			"analysis": map[string]any{
				"message":        fmt.Sprintf("Reminder %d updated successfully", reminderID),
				"fields_updated": len(fields),
			},
		},
	), nil
}
