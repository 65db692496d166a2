package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"intervalsmcp/pkg/icu"
	"intervalsmcp/pkg/response"
)

func (h *Handlers) analysisTools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("get_activity_streams",
				mcp.WithDescription("Get time-series data streams for an activity, e.g. watts, heartrate, cadence."),
				mcp.WithString("activity_id", mcp.Required(), mcp.Description("Activity ID")),
				mcp.WithString("types", mcp.Description("Comma separated stream types to fetch; all streams when omitted")),
			),
			Handler: h.getActivityStreams,
		},
		{
			Tool: mcp.NewTool("get_activity_intervals",
				mcp.WithDescription("Get the structured intervals of an activity with per-interval metrics."),
				mcp.WithString("activity_id", mcp.Required(), mcp.Description("Activity ID")),
			),
			Handler: h.getActivityIntervals,
		},
		{
			Tool: mcp.NewTool("get_best_efforts",
				mcp.WithDescription("Get the best efforts found in an activity."),
				mcp.WithString("activity_id", mcp.Required(), mcp.Description("Activity ID")),
			),
			Handler: h.getBestEfforts,
		},
		{
			Tool: mcp.NewTool("search_intervals",
				mcp.WithDescription("Search intervals across all activities by type and duration."),
				mcp.WithString("interval_type", mcp.Description("Interval type, e.g. WORK or REST")),
				mcp.WithNumber("min_duration", mcp.Description("Minimum duration in seconds")),
				mcp.WithNumber("max_duration", mcp.Description("Maximum duration in seconds")),
				mcp.WithNumber("limit", mcp.Description("Maximum number of results"), mcp.DefaultNumber(30)),
			),
			Handler: h.searchIntervals,
		},
		{
			Tool: mcp.NewTool("get_power_histogram",
				mcp.WithDescription("Get the power distribution histogram for an activity."),
				mcp.WithString("activity_id", mcp.Required(), mcp.Description("Activity ID")),
			),
			Handler: h.histogram("power", (*icu.Client).GetPowerHistogram),
		},
		{
			Tool: mcp.NewTool("get_hr_histogram",
				mcp.WithDescription("Get the heart rate distribution histogram for an activity."),
				mcp.WithString("activity_id", mcp.Required(), mcp.Description("Activity ID")),
			),
			Handler: h.histogram("hr", (*icu.Client).GetHRHistogram),
		},
		{
			Tool: mcp.NewTool("get_pace_histogram",
				mcp.WithDescription("Get the pace distribution histogram for an activity."),
				mcp.WithString("activity_id", mcp.Required(), mcp.Description("Activity ID")),
			),
			Handler: h.histogram("pace", (*icu.Client).GetPaceHistogram),
		},
		{
			Tool: mcp.NewTool("get_gap_histogram",
				mcp.WithDescription("Get the grade adjusted pace distribution histogram for an activity."),
				mcp.WithString("activity_id", mcp.Required(), mcp.Description("Activity ID")),
			),
			Handler: h.histogram("gap", (*icu.Client).GetGAPHistogram),
		},
	}
}

func (h *Handlers) getActivityStreams(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	activityID, err := req.RequireString("activity_id")
	if err != nil {
		return errorResult(response.ValidationError, "activity_id is required"), nil
	}

	var types []string
	if raw := req.GetString("types", ""); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
	}

	client, err := h.open()
	if err != nil {
		return h.failure("get_activity_streams", err), nil
	}
	defer client.Close()

	streams, err := client.GetActivityStreams(ctx, activityID, types)
	if err != nil {
		return h.failure("get_activity_streams", err), nil
	}

	available := []string{}
	samples := 0
	note := func(name string, n int) {
		if n > 0 {
			available = append(available, name)
			if n > samples {
				samples = n
			}
		}
	}
	note("watts", len(streams.Watts))
	note("heartrate", len(streams.Heartrate))
	note("cadence", len(streams.Cadence))
	note("velocity_smooth", len(streams.VelocitySmooth))
	note("altitude", len(streams.Altitude))
	note("distance", len(streams.Distance))
	note("time", len(streams.Time))
	note("latlng", len(streams.LatLng))
	note("temp", len(streams.Temp))
	note("moving", len(streams.Moving))
	note("grade_smooth", len(streams.GradeSmooth))

	return successResult(
		map[string]any{
			"activity_id": activityID,
			"streams":     streams,
		},
		map[string]any{
			"query_type": "activity_streams",
			"metadata": map[string]any{
				"available_streams": available,
				"sample_count":      samples,
			},
		},
	), nil
}

func (h *Handlers) getActivityIntervals(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	activityID, err := req.RequireString("activity_id")
	if err != nil {
		return errorResult(response.ValidationError, "activity_id is required"), nil
	}

	client, err := h.open()
	if err != nil {
		return h.failure("get_activity_intervals", err), nil
	}
	defer client.Close()

	intervals, err := client.GetActivityIntervals(ctx, activityID)
	if err != nil {
		return h.failure("get_activity_intervals", err), nil
	}

	items := make([]map[string]any, 0, len(intervals))
	workCount := 0
	for _, iv := range intervals {
		item := map[string]any{}
		if iv.ID != nil {
			item["id"] = *iv.ID
		}
		if hasStr(iv.Type) {
			item["type"] = *iv.Type
			if *iv.Type == "WORK" {
				workCount++
			}
		}
		if hasInt(iv.Duration) {
			item["duration_seconds"] = *iv.Duration
		}
		if hasFloat(iv.Distance) {
			item["distance_meters"] = *iv.Distance
		}
		if hasInt(iv.AverageWatts) {
			item["average_watts"] = *iv.AverageWatts
		}
		if hasInt(iv.NormalizedPower) {
			item["normalized_power"] = *iv.NormalizedPower
		}
		if hasInt(iv.AverageHeartrate) {
			item["average_heartrate"] = *iv.AverageHeartrate
		}
		if hasInt(iv.MaxHeartrate) {
			item["max_heartrate"] = *iv.MaxHeartrate
		}
		if hasFloat(iv.AverageCadence) {
			item["average_cadence"] = *iv.AverageCadence
		}
		if hasFloat(iv.AverageSpeed) {
			item["average_speed"] = *iv.AverageSpeed
		}
		if hasStr(iv.Target) {
			item["target"] = *iv.Target
		}
		items = append(items, item)
	}

	return successResult(
		map[string]any{
			"activity_id": activityID,
			"intervals":   items,
			"count":       len(items),
			"summary": map[string]any{
				"total_intervals": len(items),
				"work_intervals":  workCount,
			},
		},
		map[string]any{"query_type": "activity_intervals"},
	), nil
}

func (h *Handlers) getBestEfforts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	activityID, err := req.RequireString("activity_id")
	if err != nil {
		return errorResult(response.ValidationError, "activity_id is required"), nil
	}

	client, err := h.open()
	if err != nil {
		return h.failure("get_best_efforts", err), nil
	}
	defer client.Close()

	efforts, err := client.GetBestEfforts(ctx, activityID)
	if err != nil {
		return h.failure("get_best_efforts", err), nil
	}

	items := make([]map[string]any, 0, len(efforts))
	for _, e := range efforts {
		item := map[string]any{}
		if hasStr(e.Name) {
			item["name"] = *e.Name
		}
		if hasInt(e.ElapsedTime) {
			item["elapsed_time_seconds"] = *e.ElapsedTime
		}
		if hasFloat(e.Distance) {
			item["distance_meters"] = *e.Distance
		}
		if hasInt(e.AverageWatts) {
			item["average_watts"] = *e.AverageWatts
		}
		if hasInt(e.NormalizedPower) {
			item["normalized_power"] = *e.NormalizedPower
		}
		if hasInt(e.AverageHeartrate) {
			item["average_heartrate"] = *e.AverageHeartrate
		}
		if hasFloat(e.AverageSpeed) {
			item["average_speed"] = *e.AverageSpeed
		}
		items = append(items, item)
	}

	return successResult(
		map[string]any{
			"activity_id":  activityID,
			"best_efforts": items,
			"count":        len(items),
		},
		map[string]any{"query_type": "best_efforts"},
	), nil
}

func (h *Handlers) searchIntervals(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	intervalType := req.GetString("interval_type", "")
	minDuration := req.GetInt("min_duration", 0)
	maxDuration := req.GetInt("max_duration", 0)
	limit := req.GetInt("limit", 30)

	client, err := h.open()
	if err != nil {
		return h.failure("search_intervals", err), nil
	}
	defer client.Close()

	results, err := client.SearchIntervals(ctx, intervalType, minDuration, maxDuration, limit)
	if err != nil {
		return h.failure("search_intervals", err), nil
	}

	return successResult(
		map[string]any{"intervals": results, "count": len(results)},
		map[string]any{"query_type": "interval_search"},
	), nil
}

func (h *Handlers) histogram(kind string, fetch func(*icu.Client, context.Context, string) (*icu.Histogram, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		activityID, err := req.RequireString("activity_id")
		if err != nil {
			return errorResult(response.ValidationError, "activity_id is required"), nil
		}

		client, err := h.open()
		if err != nil {
			return h.failure("get_"+kind+"_histogram", err), nil
		}
		defer client.Close()

		histogram, err := fetch(client, ctx, activityID)
		if err != nil {
			return h.failure("get_"+kind+"_histogram", err), nil
		}

		data := map[string]any{
			"activity_id": activityID,
			"metric":      kind,
			"bins":        histogram.Bins,
			"bin_count":   len(histogram.Bins),
		}
		if histogram.TotalCount != nil {
			data["total_count"] = *histogram.TotalCount
		}
		if histogram.TotalSecs != nil {
			data["total_secs"] = *histogram.TotalSecs
		}

		return successResult(data, map[string]any{"query_type": kind + "_histogram"}), nil
	}
}
