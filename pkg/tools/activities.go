package tools

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"intervalsmcp/pkg/icu"
	"intervalsmcp/pkg/response"
)

func (h *Handlers) activityTools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("get_recent_activities",
				mcp.WithDescription("Get recent activities with key metrics for a lookback period."),
				mcp.WithNumber("days_back", mcp.Description("Number of days to look back"), mcp.DefaultNumber(30)),
				mcp.WithNumber("limit", mcp.Description("Maximum number of activities to return"), mcp.DefaultNumber(10)),
			),
			Handler: h.getRecentActivities,
		},
		{
			Tool: mcp.NewTool("get_activity_details",
				mcp.WithDescription("Get full details for a single activity including power, heart rate and subjective metrics."),
				mcp.WithString("activity_id", mcp.Required(), mcp.Description("Activity ID")),
			),
			Handler: h.getActivityDetails,
		},
		{
			Tool: mcp.NewTool("search_activities",
				mcp.WithDescription("Search activities by name or tag."),
				mcp.WithString("query", mcp.Required(), mcp.Description("Search query (name or tag)")),
				mcp.WithNumber("limit", mcp.Description("Maximum number of results"), mcp.DefaultNumber(10)),
			),
			Handler: h.searchActivities,
		},
		{
			Tool: mcp.NewTool("search_activities_full",
				mcp.WithDescription("Search activities by name or tag, returning full activity details."),
				mcp.WithString("query", mcp.Required(), mcp.Description("Search query (name or tag)")),
				mcp.WithNumber("limit", mcp.Description("Maximum number of results"), mcp.DefaultNumber(5)),
			),
			Handler: h.searchActivitiesFull,
		},
		{
			Tool: mcp.NewTool("get_activities_around",
				mcp.WithDescription("Get activities before and after a reference activity for comparison."),
				mcp.WithString("activity_id", mcp.Required(), mcp.Description("Reference activity ID")),
				mcp.WithNumber("count", mcp.Description("Number of activities before and after"), mcp.DefaultNumber(5)),
			),
			Handler: h.getActivitiesAround,
		},
		{
			Tool: mcp.NewTool("update_activity",
				mcp.WithDescription("Update fields on an activity, e.g. name, description, type, feel or perceived exertion."),
				mcp.WithString("activity_id", mcp.Required(), mcp.Description("Activity ID")),
				mcp.WithString("data", mcp.Required(), mcp.Description("JSON object with the fields to update")),
			),
			Handler: h.updateActivity,
		},
		{
			Tool: mcp.NewTool("delete_activity",
				mcp.WithDescription("Permanently delete an activity. This cannot be undone."),
				mcp.WithString("activity_id", mcp.Required(), mcp.Description("Activity ID")),
			),
			Handler: h.deleteActivity,
		},
		{
			Tool: mcp.NewTool("download_activity_file",
				mcp.WithDescription("Download the originally uploaded file for an activity as base64."),
				mcp.WithString("activity_id", mcp.Required(), mcp.Description("Activity ID")),
			),
			Handler: h.downloadFile("original", (*icu.Client).DownloadActivityFile),
		},
		{
			Tool: mcp.NewTool("download_fit_file",
				mcp.WithDescription("Download an activity converted to FIT format as base64."),
				mcp.WithString("activity_id", mcp.Required(), mcp.Description("Activity ID")),
			),
			Handler: h.downloadFile("fit", (*icu.Client).DownloadFitFile),
		},
		{
			Tool: mcp.NewTool("download_gpx_file",
				mcp.WithDescription("Download an activity converted to GPX format as base64."),
				mcp.WithString("activity_id", mcp.Required(), mcp.Description("Activity ID")),
			),
			Handler: h.downloadFile("gpx", (*icu.Client).DownloadGPXFile),
		},
	}
}

func (h *Handlers) getRecentActivities(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	daysBack := req.GetInt("days_back", 30)
	limit := req.GetInt("limit", 10)

	newest := h.now().Format("2006-01-02")
	oldest := h.now().AddDate(0, 0, -daysBack).Format("2006-01-02")

	client, err := h.open()
	if err != nil {
		return h.failure("get_recent_activities", err), nil
	}
	defer client.Close()

	activities, err := client.GetActivities(ctx, oldest, newest, limit)
	if err != nil {
		return h.failure("get_recent_activities", err), nil
	}

	if len(activities) == 0 {
		return successResult(
			map[string]any{"activities": []any{}, "count": 0},
			map[string]any{"metadata": map[string]any{
				"message": fmt.Sprintf("No activities found in the last %d days", daysBack),
			}},
		), nil
	}

	items := make([]map[string]any, 0, len(activities))
	for _, a := range activities {
		items = append(items, activitySummaryItem(a))
	}

	return successResult(
		map[string]any{
			"activities": items,
			"count":      len(items),
			"date_range": map[string]any{"oldest": oldest, "newest": newest},
		},
		map[string]any{"query_type": "recent_activities"},
	), nil
}

func (h *Handlers) getActivityDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	activityID, err := req.RequireString("activity_id")
	if err != nil {
		return errorResult(response.ValidationError, "activity_id is required"), nil
	}

	client, err := h.open()
	if err != nil {
		return h.failure("get_activity_details", err), nil
	}
	defer client.Close()

	activity, err := client.GetActivity(ctx, activityID)
	if err != nil {
		return h.failure("get_activity_details", err), nil
	}

	return successResult(activityDetailItem(activity), map[string]any{
		"query_type": "activity_details",
	}), nil
}

func (h *Handlers) searchActivities(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil || query == "" {
		return errorResult(response.ValidationError, "query is required"), nil
	}
	limit := req.GetInt("limit", 10)

	client, err := h.open()
	if err != nil {
		return h.failure("search_activities", err), nil
	}
	defer client.Close()

	results, err := client.SearchActivities(ctx, query, limit)
	if err != nil {
		return h.failure("search_activities", err), nil
	}

	items := make([]map[string]any, 0, len(results))
	for _, r := range results {
		item := map[string]any{
			"id":   r.ID,
			"date": datePart(r.StartDateLocal),
			"name": strOr(r.Name, "Activity"),
		}
		if hasStr(r.Type) {
			item["type"] = *r.Type
		}
		if hasFloat(r.Distance) {
			item["distance_meters"] = *r.Distance
		}
		if hasInt(r.MovingTime) {
			item["duration_seconds"] = *r.MovingTime
		}
		items = append(items, item)
	}

	return successResult(
		map[string]any{"results": items, "count": len(items), "query": query},
		map[string]any{"query_type": "activity_search"},
	), nil
}

func (h *Handlers) searchActivitiesFull(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil || query == "" {
		return errorResult(response.ValidationError, "query is required"), nil
	}
	limit := req.GetInt("limit", 5)

	client, err := h.open()
	if err != nil {
		return h.failure("search_activities_full", err), nil
	}
	defer client.Close()

	results, err := client.SearchActivitiesFull(ctx, query, limit)
	if err != nil {
		return h.failure("search_activities_full", err), nil
	}

	items := make([]map[string]any, 0, len(results))
	for i := range results {
		items = append(items, activityDetailItem(&results[i]))
	}

	return successResult(
		map[string]any{"results": items, "count": len(items), "query": query},
		map[string]any{"query_type": "activity_search_full"},
	), nil
}

func (h *Handlers) getActivitiesAround(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	activityID, err := req.RequireString("activity_id")
	if err != nil {
		return errorResult(response.ValidationError, "activity_id is required"), nil
	}
	count := req.GetInt("count", 5)

	client, err := h.open()
	if err != nil {
		return h.failure("get_activities_around", err), nil
	}
	defer client.Close()

	activities, err := client.GetActivitiesAround(ctx, activityID, count)
	if err != nil {
		return h.failure("get_activities_around", err), nil
	}

	items := make([]map[string]any, 0, len(activities))
	for _, a := range activities {
		items = append(items, activitySummaryItem(a.ActivitySummary))
	}

	return successResult(
		map[string]any{
			"activities":   items,
			"count":        len(items),
			"reference_id": activityID,
		},
		map[string]any{"query_type": "activities_around"},
	), nil
}

func (h *Handlers) updateActivity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	activityID, err := req.RequireString("activity_id")
	if err != nil {
		return errorResult(response.ValidationError, "activity_id is required"), nil
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
		return h.failure("update_activity", err), nil
	}
	defer client.Close()

	activity, err := client.UpdateActivity(ctx, activityID, fields)
	if err != nil {
		return h.failure("update_activity", err), nil
	}

	return successResult(activityDetailItem(activity), map[string]any{
		"query_type": "update_activity",
		"analysis": map[string]any{
			"message":        fmt.Sprintf("Activity %s updated successfully", activityID),
			"fields_updated": len(fields),
		},
	}), nil
}

func (h *Handlers) deleteActivity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	activityID, err := req.RequireString("activity_id")
	if err != nil {
		return errorResult(response.ValidationError, "activity_id is required"), nil
	}

	client, err := h.open()
	if err != nil {
		return h.failure("delete_activity", err), nil
	}
	defer client.Close()

	if err := client.DeleteActivity(ctx, activityID); err != nil {
		return h.failure("delete_activity", err), nil
	}

	return successResult(
		map[string]any{"deleted": true, "activity_id": activityID},
		map[string]any{
			"query_type": "delete_activity",
			"analysis": map[string]any{
				"message": fmt.Sprintf("Activity %s deleted successfully", activityID),
			},
		},
	), nil
}

func (h *Handlers) downloadFile(format string, fetch func(*icu.Client, context.Context, string) ([]byte, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		activityID, err := req.RequireString("activity_id")
		if err != nil {
			return errorResult(response.ValidationError, "activity_id is required"), nil
		}

		client, err := h.open()
		if err != nil {
			return h.failure("download_"+format+"_file", err), nil
		}
		defer client.Close()

		data, err := fetch(client, ctx, activityID)
		if err != nil {
			return h.failure("download_"+format+"_file", err), nil
		}

		return successResult(
			map[string]any{
				"activity_id":    activityID,
				"format":         format,
				"content_base64": base64.StdEncoding.EncodeToString(data),
			},
			map[string]any{"metadata": map[string]any{"size_bytes": len(data)}},
		), nil
	}
}

func activitySummaryItem(a icu.ActivitySummary) map[string]any {
	item := map[string]any{
		"id":   a.ID,
		"date": datePart(a.StartDateLocal),
		"name": strOr(a.Name, "Activity"),
	}
	if hasStr(a.Type) {
		item["type"] = *a.Type
	}
	if hasFloat(a.Distance) {
		item["distance_meters"] = *a.Distance
	}
	if hasInt(a.MovingTime) {
		item["duration_seconds"] = *a.MovingTime
	}
	if hasFloat(a.TotalElevationGain) {
		item["elevation_gain_meters"] = *a.TotalElevationGain
	}
	if hasFloat(a.AverageSpeed) {
		item["average_speed"] = *a.AverageSpeed
	}
	if hasInt(a.AverageHeartrate) {
		item["average_heartrate"] = *a.AverageHeartrate
	}
	if hasInt(a.AverageWatts) {
		item["average_watts"] = *a.AverageWatts
	}
	if hasInt(a.NormalizedPower) {
		item["normalized_power"] = *a.NormalizedPower
	}
	if hasInt(a.TrainingLoad) {
		item["training_load"] = *a.TrainingLoad
	}
	if hasFloat(a.Intensity) {
		item["intensity_factor"] = *a.Intensity
	}
	return item
}

func activityDetailItem(a *icu.Activity) map[string]any {
	item := activitySummaryItem(a.ActivitySummary)

	if hasStr(a.Description) {
		item["description"] = *a.Description
	}
	if hasStr(a.DeviceName) {
		item["device"] = *a.DeviceName
	}
	if a.Indoor != nil {
		item["indoor"] = *a.Indoor
	}
	if hasInt(a.Calories) {
		item["calories"] = *a.Calories
	}

	power := map[string]any{}
	if hasInt(a.MaxWatts) {
		power["max_watts"] = *a.MaxWatts
	}
	if hasInt(a.WeightedAverageWatts) {
		power["weighted_average_watts"] = *a.WeightedAverageWatts
	}
	if hasFloat(a.VariabilityIndex) {
		power["variability_index"] = *a.VariabilityIndex
	}
	if hasFloat(a.EfficiencyFactor) {
		power["efficiency_factor"] = *a.EfficiencyFactor
	}
	if len(power) > 0 {
		item["power"] = power
	}

	load := map[string]any{}
	if hasFloat(a.TSS) {
		load["tss"] = *a.TSS
	}
	if hasFloat(a.HRSS) {
		load["hrss"] = *a.HRSS
	}
	if hasFloat(a.TRIMP) {
		load["trimp"] = *a.TRIMP
	}
	if len(load) > 0 {
		item["load"] = load
	}

	subjective := map[string]any{}
	if hasInt(a.Feel) {
		subjective["feel"] = *a.Feel
	}
	if hasInt(a.PerceivedExertion) {
		subjective["perceived_exertion"] = *a.PerceivedExertion
	}
	if len(subjective) > 0 {
		item["subjective"] = subjective
	}

	if hasInt(a.MaxHeartrate) {
		item["max_heartrate"] = *a.MaxHeartrate
	}
	if hasFloat(a.MaxSpeed) {
		item["max_speed"] = *a.MaxSpeed
	}
	if hasFloat(a.Compliance) {
		item["compliance"] = *a.Compliance
	}

	return item
}
