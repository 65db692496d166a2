package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerPrompts(s *server.MCPServer) {
	s.AddPrompt(
		mcp.NewPrompt("analyze_recent_training",
			mcp.WithPromptDescription("Analyze training over a time period."),
			mcp.WithArgument("days", mcp.ArgumentDescription("Number of days to analyze, e.g. 7, 30, 90")),
		),
		analyzeRecentTraining,
	)
	s.AddPrompt(
		mcp.NewPrompt("performance_analysis",
			mcp.WithPromptDescription("Analyze performance across durations for one metric."),
			mcp.WithArgument("metric", mcp.ArgumentDescription("Performance metric: power, hr or pace")),
		),
		performanceAnalysis,
	)
	s.AddPrompt(
		mcp.NewPrompt("activity_deep_dive",
			mcp.WithPromptDescription("Comprehensive analysis of one activity."),
			mcp.WithArgument("activity_id", mcp.ArgumentDescription("ID of the activity to analyze"), mcp.RequiredArgument()),
		),
		activityDeepDive,
	)
	s.AddPrompt(
		mcp.NewPrompt("recovery_check",
			mcp.WithPromptDescription("Assess current recovery and readiness to train."),
		),
		recoveryCheck,
	)
	s.AddPrompt(
		mcp.NewPrompt("training_plan_review",
			mcp.WithPromptDescription("Review the upcoming training plan."),
		),
		trainingPlanReview,
	)
	s.AddPrompt(
		mcp.NewPrompt("plan_training_week",
			mcp.WithPromptDescription("Plan the coming training week around current form and a goal."),
			mcp.WithArgument("goal", mcp.ArgumentDescription("Training goal: balanced, build, recover or peak")),
		),
		planTrainingWeek,
	)
}

func promptResult(description, text string) *mcp.GetPromptResult {
	return mcp.NewGetPromptResult(description, []mcp.PromptMessage{
		mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
	})
}

func promptArg(req mcp.GetPromptRequest, key, fallback string) string {
	if v, ok := req.Params.Arguments[key]; ok && v != "" {
		return v
	}
	return fallback
}

func analyzeRecentTraining(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	days := promptArg(req, "days", "30")
	text := fmt.Sprintf(`Analyze my Intervals.icu training over the past %s days.

Focus on:
1. Training volume (distance, time, elevation, training load)
2. Training distribution by activity type
3. Fitness trends (CTL/ATL/TSB)
4. Recovery metrics (HRV, sleep, wellness)
5. Key insights and recommendations

Use get_recent_activities with days_back=%s, get_fitness_summary for CTL/ATL/TSB analysis,
and get_wellness_data to assess recovery. Present findings in a clear, actionable format.`, days, days)
	return promptResult("Training analysis", text), nil
}

func performanceAnalysis(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	var text string
	switch promptArg(req, "metric", "power") {
	case "hr":
		text = `Analyze my heart rate performance.

Include:
1. HR curve with best efforts across durations
2. Max HR and FTHR estimation
3. HR zones based on max HR
4. Cardiac fitness trends

Use get_hr_curves to get HR curve data, then provide detailed analysis with zone recommendations.`
	case "pace":
		text = `Analyze my pace performance.

Include:
1. Best pace efforts across distances
2. Threshold pace estimation from curve
3. Pace zones for different training intensities
4. Recent running trends

Use get_pace_curves to get pace curve data (optionally with GAP for trail running),
then provide detailed analysis with training recommendations.`
	default:
		text = `Analyze my power performance across all durations.

Include:
1. Power curve with best efforts (5s, 1m, 5m, 20m, 1h)
2. Estimated FTP from 20-minute power
3. Power zones and training recommendations
4. Trends and recent improvements

Use get_power_curves to get the data, then provide detailed analysis with training suggestions.`
	}
	return promptResult("Performance analysis", text), nil
}

func activityDeepDive(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	activityID := promptArg(req, "activity_id", "")
	text := fmt.Sprintf(`Provide a comprehensive analysis of activity %s.

Include:
1. Basic metrics (distance, time, pace/speed, elevation)
2. Power and heart rate data (if available)
3. Training load and intensity
4. Interval structure and workout compliance (if structured)
5. Best efforts found in this activity
6. Subjective metrics (feel, RPE)
7. Performance insights and comparison to recent activities

Use get_activity_details for basic info, get_activity_intervals for workout structure,
get_best_efforts for peak performances, and optionally get_activity_streams for
time-series visualization. Compare with similar recent activities to provide context.`, activityID)
	return promptResult("Activity deep dive", text), nil
}

func recoveryCheck(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	text := `Assess my current recovery status and readiness for training.

Include:
1. Recent wellness metrics (HRV, resting HR, sleep quality)
2. Training stress balance (TSB, CTL/ATL)
3. Subjective metrics (fatigue, soreness, mood)
4. Recovery trends over past week
5. Training recommendations

Use get_wellness_data for recent wellness, get_fitness_summary for TSB analysis,
then provide clear guidance on training intensity.`
	return promptResult("Recovery check", text), nil
}

func trainingPlanReview(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	text := `Review my upcoming training plan and provide feedback.

Include:
1. Upcoming workouts from calendar
2. Planned training load vs current fitness
3. Recovery days and intensity distribution
4. Workout library structure (if using a training plan)
5. Recommendations for adjustments

Use get_upcoming_workouts to see the plan, get_fitness_summary for current form,
and optionally get_workout_library to see available training plans, then evaluate
if the plan is appropriate and suggest any modifications.`
	return promptResult("Training plan review", text), nil
}

func planTrainingWeek(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	goal := promptArg(req, "goal", "balanced")
	text := fmt.Sprintf(`Help me plan my training week with a "%s" focus.

Steps:
1. Check current fitness status (CTL/ATL/TSB) using get_fitness_summary
2. Review recent training load and patterns with get_recent_activities
3. Check recovery markers with get_wellness_data
4. Review workout library for appropriate sessions with get_workout_library
5. Create planned workouts for the week using create_event

Provide a structured weekly plan with:
- Workout types and intensities for each day
- Recovery days placement
- Expected weekly training load
- Reasoning for the schedule based on current form

Then offer to create the events in my calendar if I approve the plan.`, goal)
	return promptResult("Weekly training plan", text), nil
}
