package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"intervalsmcp/pkg/icu"
	"intervalsmcp/pkg/response"
)

// upcomingFetchDays is the fixed forward window scanned for planned
// workouts. The caller's limit bounds the result count only, never the
// fetch range.
const upcomingFetchDays = 30

func (h *Handlers) eventTools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("get_calendar_events",
				mcp.WithDescription("Get planned events (workouts, notes, races, goals) from the calendar, grouped by date."),
				mcp.WithNumber("days_ahead", mcp.Description("Number of days to look ahead"), mcp.DefaultNumber(7)),
				mcp.WithNumber("days_back", mcp.Description("Number of days to look back"), mcp.DefaultNumber(0)),
			),
			Handler: h.getCalendarEvents,
		},
		{
			Tool: mcp.NewTool("get_upcoming_workouts",
				mcp.WithDescription("Get upcoming planned workouts only, filtering out notes, races and goals."),
				mcp.WithNumber("limit", mcp.Description("Maximum number of workouts to return"), mcp.DefaultNumber(7)),
			),
			Handler: h.getUpcomingWorkouts,
		},
		{
			Tool: mcp.NewTool("get_event",
				mcp.WithDescription("Get full details for a single calendar event."),
				mcp.WithNumber("event_id", mcp.Required(), mcp.Description("Event ID")),
			),
			Handler: h.getEvent,
		},
	}
}

func (h *Handlers) getCalendarEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	daysAhead := req.GetInt("days_ahead", 7)
	daysBack := req.GetInt("days_back", 0)

	oldest := h.now().AddDate(0, 0, -daysBack).Format("2006-01-02")
	newest := h.now().AddDate(0, 0, daysAhead).Format("2006-01-02")

	client, err := h.open()
	if err != nil {
		return h.failure("get_calendar_events", err), nil
	}
	defer client.Close()

	events, err := client.GetEvents(ctx, oldest, newest)
	if err != nil {
		return h.failure("get_calendar_events", err), nil
	}

	if len(events) == 0 {
		return successResult(
			map[string]any{
				"events":     []any{},
				"count":      0,
				"date_range": map[string]any{"oldest": oldest, "newest": newest},
			},
			map[string]any{"metadata": map[string]any{
				"message": "No events found on your calendar for the specified period",
			}},
		), nil
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].StartDateLocal < events[j].StartDateLocal
	})

	today := h.today()
	eventsByDate := map[string][]map[string]any{}
	var workouts, races, notes, goals int

	for i := range events {
		event := &events[i]
		date := datePart(event.StartDateLocal)

		item := map[string]any{
			"date":            date,
			"relative_timing": relativeTiming(date, today, false),
			"name":            eventDisplayName(event),
			"category":        event.Category,
		}
		if hasStr(event.Type) {
			item["type"] = *event.Type
		}
		if category(event) == "WORKOUT" {
			addWorkoutMetrics(item, event)
		}
		if hasStr(event.Description) {
			item["description"] = strings.TrimSpace(*event.Description)
		}

		eventsByDate[date] = append(eventsByDate[date], item)

		switch category(event) {
		case "WORKOUT":
			workouts++
		case "RACE":
			races++
		case "NOTE":
			notes++
		case "GOAL":
			goals++
		}
	}

	summary := map[string]any{
		"total_events": len(events),
		"by_category": map[string]any{
			"workouts": workouts,
			"races":    races,
			"notes":    notes,
			"goals":    goals,
		},
	}

	return successResult(
		map[string]any{
			"events_by_date": eventsByDate,
			"date_range":     map[string]any{"oldest": oldest, "newest": newest},
			"summary":        summary,
		},
		map[string]any{"query_type": "calendar_events"},
	), nil
}

func (h *Handlers) getUpcomingWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 7)

	oldest := h.now().Format("2006-01-02")
	newest := h.now().AddDate(0, 0, upcomingFetchDays).Format("2006-01-02")

	client, err := h.open()
	if err != nil {
		return h.failure("get_upcoming_workouts", err), nil
	}
	defer client.Close()

	events, err := client.GetEvents(ctx, oldest, newest)
	if err != nil {
		return h.failure("get_upcoming_workouts", err), nil
	}

	var workouts []icu.Event
	for _, e := range events {
		if category(&e) == "WORKOUT" {
			workouts = append(workouts, e)
		}
	}

	if len(workouts) == 0 {
		return successResult(
			map[string]any{"workouts": []any{}, "count": 0},
			map[string]any{"metadata": map[string]any{
				"message": "No workouts planned on your calendar",
			}},
		), nil
	}

	sort.Slice(workouts, func(i, j int) bool {
		return workouts[i].StartDateLocal < workouts[j].StartDateLocal
	})
	if limit < 0 {
		limit = 0
	}
	if len(workouts) > limit {
		workouts = workouts[:limit]
	}

	today := h.today()
	items := make([]map[string]any, 0, len(workouts))
	totalLoad := 0

	for i := range workouts {
		workout := &workouts[i]
		date := datePart(workout.StartDateLocal)

		item := map[string]any{
			"date":            date,
			"relative_timing": relativeTiming(date, today, true),
			"name":            strOr(workout.Name, "Workout"),
		}
		if hasStr(workout.Type) {
			item["type"] = *workout.Type
		}
		addWorkoutMetrics(item, workout)
		if hasStr(workout.Description) {
			item["description"] = strings.TrimSpace(*workout.Description)
		}

		items = append(items, item)
		if workout.TrainingLoad != nil {
			totalLoad += *workout.TrainingLoad
		}
	}

	data := map[string]any{
		"workouts": items,
		"count":    len(items),
	}
	if totalLoad > 0 {
		data["total_planned_load"] = totalLoad
	} else {
		data["total_planned_load"] = nil
	}

	return successResult(data, map[string]any{"query_type": "upcoming_workouts"}), nil
}

func (h *Handlers) getEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eventID, err := req.RequireInt("event_id")
	if err != nil {
		return errorResult(response.ValidationError, "event_id is required"), nil
	}

	client, err := h.open()
	if err != nil {
		return h.failure("get_event", err), nil
	}
	defer client.Close()

	event, err := client.GetEvent(ctx, eventID)
	if err != nil {
		return h.failure("get_event", err), nil
	}

	data := map[string]any{
		"id":       event.ID,
		"date":     datePart(event.StartDateLocal),
		"name":     eventDisplayName(event),
		"category": event.Category,
	}
	if hasStr(event.Description) {
		data["description"] = *event.Description
	}
	if hasStr(event.Type) {
		data["type"] = *event.Type
	}

	metrics := map[string]any{}
	if distance := eventDistance(event); distance > 0 {
		metrics["distance_meters"] = distance
	}
	if hasInt(event.MovingTime) {
		metrics["duration_seconds"] = *event.MovingTime
	}
	if hasInt(event.TrainingLoad) {
		metrics["training_load"] = *event.TrainingLoad
	}
	if hasFloat(event.Intensity) {
		metrics["intensity_factor"] = *event.Intensity
	}
	if hasInt(event.Joules) {
		metrics["joules"] = *event.Joules
	}
	if hasInt(event.JoulesAboveFTP) {
		metrics["joules_above_ftp"] = *event.JoulesAboveFTP
	}
	if len(metrics) > 0 {
		data["metrics"] = metrics
	}

	fitness := map[string]any{}
	if event.CTL != nil {
		fitness["ctl"] = round1(*event.CTL)
	}
	if event.ATL != nil {
		fitness["atl"] = round1(*event.ATL)
	}
	if len(fitness) > 0 {
		data["fitness_context"] = fitness
	}

	if hasStr(event.Color) {
		data["color"] = *event.Color
	}
	if hasStr(event.ExternalID) {
		data["external_id"] = *event.ExternalID
	}

	return successResult(data, map[string]any{"query_type": "get_event"}), nil
}

// relativeTiming labels a date against today. The upcoming-workouts path
// labels one day ahead as "tomorrow"; the calendar path does not.
func relativeTiming(date string, today time.Time, tomorrowLabel bool) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}

	ty, tm, td := today.Date()
	todayUTC := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	days := int(parsed.Sub(todayUTC).Hours() / 24)
	switch {
	case days == 0:
		return "today"
	case days == 1 && tomorrowLabel:
		return "tomorrow"
	case days < 0:
		return fmt.Sprintf("%d_days_ago", -days)
	default:
		return fmt.Sprintf("in_%d_days", days)
	}
}

func category(e *icu.Event) string {
	if e.Category == nil {
		return ""
	}
	return *e.Category
}

func eventDisplayName(e *icu.Event) string {
	if hasStr(e.Name) {
		return *e.Name
	}
	if hasStr(e.Category) {
		return *e.Category
	}
	return "Event"
}

func eventDistance(e *icu.Event) float64 {
	if hasFloat(e.Distance) {
		return *e.Distance
	}
	if hasFloat(e.DistanceTarget) {
		return *e.DistanceTarget
	}
	return 0
}

func addWorkoutMetrics(item map[string]any, e *icu.Event) {
	if distance := eventDistance(e); distance > 0 {
		item["distance_meters"] = distance
	}
	if hasInt(e.MovingTime) {
		item["duration_seconds"] = *e.MovingTime
	}
	if hasInt(e.TrainingLoad) {
		item["training_load"] = *e.TrainingLoad
	}
	if hasFloat(e.Intensity) {
		item["intensity_factor"] = *e.Intensity
	}
}

func round1(v float64) float64 {
	if v >= 0 {
		return float64(int(v*10+0.5)) / 10
	}
	return float64(int(v*10-0.5)) / 10
}
