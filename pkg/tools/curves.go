package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"intervalsmcp/pkg/icu"
)

func (h *Handlers) curveTools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("get_power_curves",
				mcp.WithDescription("Get best power efforts per duration over a lookback period."),
				mcp.WithNumber("days_back", mcp.Description("Number of days of history to include"), mcp.DefaultNumber(90)),
			),
			Handler: h.powerCurves,
		},
		{
			Tool: mcp.NewTool("get_hr_curves",
				mcp.WithDescription("Get best heart rate efforts per duration over a lookback period."),
				mcp.WithNumber("days_back", mcp.Description("Number of days of history to include"), mcp.DefaultNumber(90)),
			),
			Handler: h.hrCurves,
		},
		{
			Tool: mcp.NewTool("get_pace_curves",
				mcp.WithDescription("Get best pace efforts per duration over a lookback period."),
				mcp.WithNumber("days_back", mcp.Description("Number of days of history to include"), mcp.DefaultNumber(90)),
				mcp.WithBoolean("use_gap", mcp.Description("Use grade adjusted pace"), mcp.DefaultBool(false)),
			),
			Handler: h.paceCurves,
		},
	}
}

func (h *Handlers) powerCurves(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.curve(ctx, req, "power", func(client *icu.Client, oldest, newest string) (*icu.Curve, error) {
		return client.GetPowerCurves(ctx, oldest, newest)
	})
}

func (h *Handlers) hrCurves(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.curve(ctx, req, "hr", func(client *icu.Client, oldest, newest string) (*icu.Curve, error) {
		return client.GetHRCurves(ctx, oldest, newest)
	})
}

func (h *Handlers) paceCurves(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	useGAP := req.GetBool("use_gap", false)
	return h.curve(ctx, req, "pace", func(client *icu.Client, oldest, newest string) (*icu.Curve, error) {
		return client.GetPaceCurves(ctx, oldest, newest, useGAP)
	})
}

func (h *Handlers) curve(ctx context.Context, req mcp.CallToolRequest, metric string, fetch func(*icu.Client, string, string) (*icu.Curve, error)) (*mcp.CallToolResult, error) {
	daysBack := req.GetInt("days_back", 90)

	newest := h.now().Format("2006-01-02")
	oldest := h.now().AddDate(0, 0, -daysBack).Format("2006-01-02")

	client, err := h.open()
	if err != nil {
		return h.failure("get_"+metric+"_curves", err), nil
	}
	defer client.Close()

	curve, err := fetch(client, oldest, newest)
	if err != nil {
		return h.failure("get_"+metric+"_curves", err), nil
	}

	points := make([]map[string]any, 0, len(curve.Data))
	for _, pt := range curve.Data {
		point := map[string]any{"secs": pt.Secs}
		if pt.Watts != nil {
			point["watts"] = *pt.Watts
		}
		if pt.BPM != nil {
			point["bpm"] = *pt.BPM
		}
		if pt.Pace != nil {
			point["pace"] = *pt.Pace
		}
		if hasStr(pt.SrcActivityID) {
			point["activity_id"] = *pt.SrcActivityID
		}
		if hasStr(pt.Date) {
			point["date"] = *pt.Date
		}
		points = append(points, point)
	}

	return successResult(
		map[string]any{
			"metric":     metric,
			"points":     points,
			"count":      len(points),
			"date_range": map[string]any{"oldest": oldest, "newest": newest},
		},
		map[string]any{"query_type": metric + "_curves"},
	), nil
}
