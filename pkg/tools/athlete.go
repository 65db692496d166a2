package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"intervalsmcp/pkg/icu"
)

func (h *Handlers) athleteTools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("get_athlete_profile",
				mcp.WithDescription("Get the athlete profile with fitness metrics and per-sport threshold settings."),
			),
			Handler: h.getAthleteProfile,
		},
		{
			Tool: mcp.NewTool("get_fitness_summary",
				mcp.WithDescription("Get current fitness metrics (CTL, ATL, TSB, ramp rate) with a plain-language interpretation."),
			),
			Handler: h.getFitnessSummary,
		},
	}
}

// AthleteProfileData builds the reshaped profile used by both the
// get_athlete_profile tool and the profile resource.
func AthleteProfileData(athlete *icu.Athlete) map[string]any {
	data := map[string]any{
		"profile": map[string]any{
			"id":     athlete.ID,
			"name":   athlete.Name,
			"weight": athlete.Weight,
		},
		"fitness": map[string]any{
			"ctl":       athlete.CTL,
			"atl":       athlete.ATL,
			"tsb":       athlete.TSB,
			"ramp_rate": athlete.RampRate,
		},
	}

	if len(athlete.SportSettings) > 0 {
		sports := make([]map[string]any, 0, len(athlete.SportSettings))
		for _, sport := range athlete.SportSettings {
			info := map[string]any{"type": sport.Type}
			if hasInt(sport.FTP) {
				info["ftp"] = *sport.FTP
			}
			if hasInt(sport.FTHR) {
				info["fthr"] = *sport.FTHR
			}
			if hasFloat(sport.PaceThreshold) {
				info["threshold_pace"] = *sport.PaceThreshold
			}
			if hasFloat(sport.SwimThreshold) {
				info["swim_threshold"] = *sport.SwimThreshold
			}
			sports = append(sports, info)
		}
		data["sports"] = sports
	}

	return data
}

func (h *Handlers) getAthleteProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	client, err := h.open()
	if err != nil {
		return h.failure("get_athlete_profile", err), nil
	}
	defer client.Close()

	athlete, err := client.GetAthlete(ctx)
	if err != nil {
		return h.failure("get_athlete_profile", err), nil
	}

	return successResult(AthleteProfileData(athlete), map[string]any{
		"metadata": map[string]any{"type": "athlete_profile"},
	}), nil
}

func (h *Handlers) getFitnessSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	client, err := h.open()
	if err != nil {
		return h.failure("get_fitness_summary", err), nil
	}
	defer client.Close()

	athlete, err := client.GetAthlete(ctx)
	if err != nil {
		return h.failure("get_fitness_summary", err), nil
	}

	data := map[string]any{
		"ctl":            athlete.CTL,
		"atl":            athlete.ATL,
		"tsb":            athlete.TSB,
		"ramp_rate":      athlete.RampRate,
		"date":           h.now().Format("2006-01-02"),
		"interpretation": interpretFitness(athlete.TSB, athlete.RampRate),
	}

	return successResult(data, map[string]any{"query_type": "fitness_summary"}), nil
}

func interpretFitness(tsb, rampRate *float64) map[string]any {
	interpretation := map[string]any{}

	if tsb != nil {
		var form string
		switch {
		case *tsb > 15:
			form = "very fresh, possibly losing fitness"
		case *tsb > 5:
			form = "fresh and ready for hard training or racing"
		case *tsb >= -10:
			form = "neutral, normal training range"
		case *tsb >= -30:
			form = "fatigued, building fitness"
		default:
			form = "very fatigued, recovery recommended"
		}
		interpretation["form"] = form
	}

	if rampRate != nil {
		var trend string
		switch {
		case *rampRate > 8:
			trend = "training load rising quickly, injury risk elevated"
		case *rampRate > 0:
			trend = "training load rising"
		case *rampRate == 0:
			trend = "training load stable"
		default:
			trend = "training load falling"
		}
		interpretation["trend"] = trend
	}

	return interpretation
}
