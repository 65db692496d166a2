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

func (h *Handlers) wellnessTools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("get_wellness_data",
				mcp.WithDescription("Get wellness records (HRV, sleep, resting HR, subjective metrics) for a lookback period."),
				mcp.WithNumber("days_back", mcp.Description("Number of days to look back"), mcp.DefaultNumber(7)),
			),
			Handler: h.getWellnessData,
		},
		{
			Tool: mcp.NewTool("get_wellness_for_date",
				mcp.WithDescription("Get the wellness record for a specific date."),
				mcp.WithString("date", mcp.Required(), mcp.Description("Date in YYYY-MM-DD format")),
			),
			Handler: h.getWellnessForDate,
		},
		{
			Tool: mcp.NewTool("update_wellness",
				mcp.WithDescription("Update the wellness record for a date, creating it if absent. Accepts fields like weight, restingHR, hrv, sleepSecs, fatigue, soreness, stress, mood."),
				mcp.WithString("date", mcp.Required(), mcp.Description("Date in YYYY-MM-DD format")),
				mcp.WithString("data", mcp.Required(), mcp.Description("JSON object with the wellness fields to set")),
			),
			Handler: h.updateWellness,
		},
	}
}

func (h *Handlers) getWellnessData(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	daysBack := req.GetInt("days_back", 7)

	newest := h.now().Format("2006-01-02")
	oldest := h.now().AddDate(0, 0, -daysBack).Format("2006-01-02")

	client, err := h.open()
	if err != nil {
		return h.failure("get_wellness_data", err), nil
	}
	defer client.Close()

	records, err := client.GetWellness(ctx, oldest, newest)
	if err != nil {
		return h.failure("get_wellness_data", err), nil
	}

	if len(records) == 0 {
		return successResult(
			map[string]any{"records": []any{}, "count": 0},
			map[string]any{"metadata": map[string]any{
				"message": fmt.Sprintf("No wellness data found in the last %d days", daysBack),
			}},
		), nil
	}

	items := make([]map[string]any, 0, len(records))
	for i := range records {
		items = append(items, wellnessItem(&records[i]))
	}

	return successResult(
		map[string]any{
			"records":    items,
			"count":      len(items),
			"date_range": map[string]any{"oldest": oldest, "newest": newest},
		},
		map[string]any{"query_type": "wellness_data"},
	), nil
}

func (h *Handlers) getWellnessForDate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return errorResult(response.ValidationError, "date is required"), nil
	}

	client, err := h.open()
	if err != nil {
		return h.failure("get_wellness_for_date", err), nil
	}
	defer client.Close()

	record, err := client.GetWellnessForDate(ctx, date)
	if err != nil {
		return h.failure("get_wellness_for_date", err), nil
	}

	return successResult(wellnessItem(record), map[string]any{
		"query_type": "wellness_for_date",
	}), nil
}

func (h *Handlers) updateWellness(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return errorResult(response.ValidationError, "date is required"), nil
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
		return h.failure("update_wellness", err), nil
	}
	defer client.Close()

	record, err := client.UpdateWellnessForDate(ctx, date, fields)
	if err != nil {
		return h.failure("update_wellness", err), nil
	}

	return successResult(wellnessItem(record), map[string]any{
		"query_type": "update_wellness",
		"analysis": map[string]any{
			"message":        fmt.Sprintf("Wellness record for %s updated successfully", date),
			"fields_updated": len(fields),
		},
	}), nil
}

func wellnessItem(w *icu.Wellness) map[string]any {
	item := map[string]any{"date": w.ID}

	if hasFloat(w.Weight) {
		item["weight"] = *w.Weight
	}
	if hasInt(w.RestingHR) {
		item["resting_hr"] = *w.RestingHR
	}
	if hasFloat(w.HRV) {
		item["hrv"] = *w.HRV
	}
	if hasFloat(w.HRVSDNN) {
		item["hrv_sdnn"] = *w.HRVSDNN
	}

	sleep := map[string]any{}
	if hasInt(w.SleepSecs) {
		sleep["duration_seconds"] = *w.SleepSecs
	}
	if hasInt(w.SleepQuality) {
		sleep["quality"] = *w.SleepQuality
	}
	if hasFloat(w.SleepScore) {
		sleep["score"] = *w.SleepScore
	}
	if hasFloat(w.AvgSleepingHR) {
		sleep["avg_hr"] = *w.AvgSleepingHR
	}
	if len(sleep) > 0 {
		item["sleep"] = sleep
	}

	subjective := map[string]any{}
	if hasInt(w.Fatigue) {
		subjective["fatigue"] = *w.Fatigue
	}
	if hasInt(w.Soreness) {
		subjective["soreness"] = *w.Soreness
	}
	if hasInt(w.Stress) {
		subjective["stress"] = *w.Stress
	}
	if hasInt(w.Mood) {
		subjective["mood"] = *w.Mood
	}
	if hasInt(w.Motivation) {
		subjective["motivation"] = *w.Motivation
	}
	if hasInt(w.Injury) {
		subjective["injury"] = *w.Injury
	}
	if len(subjective) > 0 {
		item["subjective"] = subjective
	}

	if hasFloat(w.SpO2) {
		item["spo2"] = *w.SpO2
	}
	if hasFloat(w.Respiration) {
		item["respiration"] = *w.Respiration
	}
	if hasInt(w.Steps) {
		item["steps"] = *w.Steps
	}
	if hasInt(w.KcalConsumed) {
		item["kcal_consumed"] = *w.KcalConsumed
	}
	if hasFloat(w.BodyFat) {
		item["body_fat"] = *w.BodyFat
	}
	if hasFloat(w.Readiness) {
		item["readiness"] = *w.Readiness
	}
	if hasFloat(w.BloodGlucose) {
		item["blood_glucose"] = *w.BloodGlucose
	}
	if hasStr(w.MenstrualPhase) {
		item["menstrual_phase"] = *w.MenstrualPhase
	}
	if hasStr(w.Comments) {
		item["comments"] = *w.Comments
	}

	fitness := map[string]any{}
	if w.CTL != nil {
		fitness["ctl"] = *w.CTL
	}
	if w.ATL != nil {
		fitness["atl"] = *w.ATL
	}
	if w.TSB != nil {
		fitness["tsb"] = *w.TSB
	}
	if w.RampRate != nil {
		fitness["ramp_rate"] = *w.RampRate
	}
	if len(fitness) > 0 {
		item["fitness"] = fitness
	}

	return item
}
