package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"intervalsmcp/pkg/icu"
	"intervalsmcp/pkg/response"
)

var requiredWorkoutFields = []string{"name", "type", "moving_time", "day"}

const workoutsParamDescription = "JSON array of workout definitions. Each workout needs: name, description, type (activity type), moving_time (seconds), day (day number in plan), and optionally: indoor (bool), color, icu_training_load, workout_doc (structured workout)"

func (h *Handlers) libraryTools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("get_workout_library",
				mcp.WithDescription("Get workout library folders and training plans with their workouts."),
			),
			Handler: h.getWorkoutLibrary,
		},
		{
			Tool: mcp.NewTool("get_workouts_in_folder",
				mcp.WithDescription("Get all workouts in a specific folder or training plan."),
				mcp.WithNumber("folder_id", mcp.Required(), mcp.Description("Folder ID to browse")),
			),
			Handler: h.getWorkoutsInFolder,
		},
		{
			Tool: mcp.NewTool("create_training_plan",
				mcp.WithDescription("Create a workout folder or training plan, optionally with workouts. For PLAN type with no start_date, the plan starts on the next Monday."),
				mcp.WithString("name", mcp.Required(), mcp.Description("Name of the plan or folder")),
				mcp.WithString("plan_type", mcp.Description("'FOLDER' for a workout folder or 'PLAN' for a training plan"), mcp.Enum("FOLDER", "PLAN"), mcp.DefaultString("PLAN")),
				mcp.WithString("description", mcp.Description("Description of the plan")),
				mcp.WithString("start_date", mcp.Description("Start date in YYYY-MM-DD format; auto-set to next Monday for PLAN type when omitted")),
				mcp.WithString("visibility", mcp.Description("'PRIVATE' or 'PUBLIC'"), mcp.Enum("PRIVATE", "PUBLIC"), mcp.DefaultString("PRIVATE")),
				mcp.WithString("workouts", mcp.Description("Optional "+workoutsParamDescription)),
			),
			Handler: h.createTrainingPlan,
		},
		{
			Tool: mcp.NewTool("update_training_plan",
				mcp.WithDescription("Update a workout folder or training plan's name, description, start date or visibility."),
				mcp.WithNumber("folder_id", mcp.Required(), mcp.Description("Folder/plan ID to update")),
				mcp.WithString("name", mcp.Description("New name")),
				mcp.WithString("description", mcp.Description("New description")),
				mcp.WithString("start_date", mcp.Description("New start date in YYYY-MM-DD format")),
				mcp.WithString("visibility", mcp.Description("'PRIVATE' or 'PUBLIC'")),
			),
			Handler: h.updateTrainingPlan,
		},
		{
			Tool: mcp.NewTool("delete_training_plan",
				mcp.WithDescription("Permanently delete a workout folder or training plan and all workouts inside it."),
				mcp.WithNumber("folder_id", mcp.Required(), mcp.Description("Folder/plan ID to delete")),
			),
			Handler: h.deleteTrainingPlan,
		},
		{
			Tool: mcp.NewTool("add_workouts_to_plan",
				mcp.WithDescription("Add multiple workouts to an existing training plan or folder."),
				mcp.WithNumber("folder_id", mcp.Required(), mcp.Description("Folder/plan ID to add workouts to")),
				mcp.WithString("workouts", mcp.Required(), mcp.Description(workoutsParamDescription)),
			),
			Handler: h.addWorkoutsToPlan,
		},
	}
}

func (h *Handlers) getWorkoutLibrary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	client, err := h.open()
	if err != nil {
		return h.failure("get_workout_library", err), nil
	}
	defer client.Close()

	folders, err := client.GetFolders(ctx)
	if err != nil {
		return h.failure("get_workout_library", err), nil
	}

	if len(folders) == 0 {
		return successResult(
			map[string]any{"folders": []any{}, "count": 0},
			map[string]any{"metadata": map[string]any{
				"message": "No workout folders found. Create folders in Intervals.icu to organize your workouts.",
			}},
		), nil
	}

	foldersData := make([]map[string]any, 0, len(folders))
	trainingPlans := 0
	totalWorkouts := 0

	for i := range folders {
		folder := &folders[i]
		item := map[string]any{
			"id":   folder.ID,
			"name": folder.Name,
		}
		if hasStr(folder.Description) {
			item["description"] = *folder.Description
		}
		if hasInt(folder.NumWorkouts) {
			item["num_workouts"] = *folder.NumWorkouts
		}
		if hasStr(folder.StartDateLocal) {
			item["start_date"] = *folder.StartDateLocal
		}
		if hasInt(folder.DurationWeeks) {
			item["duration_weeks"] = *folder.DurationWeeks
		}
		if hasInt(folder.HoursPerWeekMin) || hasInt(folder.HoursPerWeekMax) {
			item["hours_per_week"] = map[string]any{
				"min": folder.HoursPerWeekMin,
				"max": folder.HoursPerWeekMax,
			}
		}

		if len(folder.Children) > 0 {
			workouts := make([]map[string]any, 0, len(folder.Children))
			for j := range folder.Children {
				workouts = append(workouts, libraryWorkoutItem(&folder.Children[j]))
			}
			item["workouts"] = workouts
			item["workouts_count"] = len(workouts)
		}

		foldersData = append(foldersData, item)

		// A folder is a training plan iff it has a duration in weeks,
		// regardless of its own type label.
		if folder.DurationWeeks != nil {
			trainingPlans++
		}
		if folder.NumWorkouts != nil {
			totalWorkouts += *folder.NumWorkouts
		}
	}

	summary := map[string]any{
		"total_folders":   len(folders),
		"training_plans":  trainingPlans,
		"regular_folders": len(folders) - trainingPlans,
		"total_workouts":  totalWorkouts,
	}

	return successResult(
		map[string]any{"folders": foldersData, "summary": summary},
		map[string]any{"query_type": "workout_library"},
	), nil
}

func (h *Handlers) getWorkoutsInFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folderID, err := req.RequireInt("folder_id")
	if err != nil {
		return errorResult(response.ValidationError, "folder_id is required"), nil
	}

	client, err := h.open()
	if err != nil {
		return h.failure("get_workouts_in_folder", err), nil
	}
	defer client.Close()

	workouts, err := client.GetWorkoutsInFolder(ctx, folderID)
	if err != nil {
		return h.failure("get_workouts_in_folder", err), nil
	}

	if len(workouts) == 0 {
		return successResult(
			map[string]any{"workouts": []any{}, "count": 0, "folder_id": folderID},
			map[string]any{"metadata": map[string]any{
				"message": fmt.Sprintf("No workouts found in folder %d", folderID),
			}},
		), nil
	}

	items := make([]map[string]any, 0, len(workouts))
	totalDuration := 0
	totalLoad := 0
	indoorCount := 0

	for i := range workouts {
		workout := &workouts[i]
		item := map[string]any{
			"id":   workout.ID,
			"name": workout.Name,
		}
		if hasStr(workout.Description) {
			item["description"] = *workout.Description
		}
		if hasStr(workout.Type) {
			item["type"] = *workout.Type
		}

		metrics := map[string]any{}
		if hasInt(workout.MovingTime) {
			metrics["duration_seconds"] = *workout.MovingTime
		}
		if hasFloat(workout.Distance) {
			metrics["distance_meters"] = *workout.Distance
		}
		if hasInt(workout.TrainingLoad) {
			metrics["training_load"] = *workout.TrainingLoad
		}
		if hasFloat(workout.Intensity) {
			metrics["intensity_factor"] = *workout.Intensity
		}
		if hasInt(workout.Joules) {
			metrics["joules"] = *workout.Joules
		}
		if hasInt(workout.JoulesAboveFTP) {
			metrics["joules_above_ftp"] = *workout.JoulesAboveFTP
		}
		if len(metrics) > 0 {
			item["metrics"] = metrics
		}

		if workout.Indoor != nil {
			item["indoor"] = *workout.Indoor
		}
		if hasStr(workout.Color) {
			item["color"] = *workout.Color
		}

		items = append(items, item)

		if workout.MovingTime != nil {
			totalDuration += *workout.MovingTime
		}
		if workout.TrainingLoad != nil {
			totalLoad += *workout.TrainingLoad
		}
		if workout.Indoor != nil && *workout.Indoor {
			indoorCount++
		}
	}

	summary := map[string]any{
		"total_workouts":         len(workouts),
		"total_duration_seconds": totalDuration,
		"total_training_load":    totalLoad,
		"indoor_workouts":        indoorCount,
	}

	return successResult(
		map[string]any{"folder_id": folderID, "workouts": items, "summary": summary},
		map[string]any{"query_type": "folder_workouts"},
	), nil
}

func (h *Handlers) createTrainingPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil || name == "" {
		return errorResult(response.ValidationError, "name is required"), nil
	}
	planType := req.GetString("plan_type", "PLAN")
	if planType != "FOLDER" && planType != "PLAN" {
		return errorResult(response.ValidationError,
			"plan_type must be either 'FOLDER' or 'PLAN'"), nil
	}
	visibility := req.GetString("visibility", "PRIVATE")
	if visibility != "PRIVATE" && visibility != "PUBLIC" {
		return errorResult(response.ValidationError,
			"visibility must be either 'PRIVATE' or 'PUBLIC'"), nil
	}

	var workouts []map[string]any
	if raw := req.GetString("workouts", ""); raw != "" {
		var errMsg string
		workouts, errMsg = parseWorkouts(raw)
		if errMsg != "" {
			return errorResult(response.ValidationError, errMsg), nil
		}
	}

	startDate := req.GetString("start_date", "")
	autoSetDate := false
	if planType == "PLAN" && startDate == "" {
		startDate = h.nextMonday().Format("2006-01-02")
		autoSetDate = true
	}

	fields := map[string]any{
		"name":       name,
		"type":       planType,
		"visibility": visibility,
	}
	if description := req.GetString("description", ""); description != "" {
		fields["description"] = description
	}
	if startDate != "" {
		fields["start_date_local"] = startDate
	}

	client, err := h.open()
	if err != nil {
		return h.failure("create_training_plan", err), nil
	}
	defer client.Close()

	folder, err := client.CreateFolder(ctx, fields)
	if err != nil {
		return h.failure("create_training_plan", err), nil
	}

	data := map[string]any{
		"id":         folder.ID,
		"name":       folder.Name,
		"type":       folder.Type,
		"visibility": folder.Visibility,
	}
	if hasStr(folder.Description) {
		data["description"] = *folder.Description
	}
	if hasStr(folder.StartDateLocal) {
		data["start_date"] = *folder.StartDateLocal
	}
	if hasInt(folder.NumWorkouts) {
		data["num_workouts"] = *folder.NumWorkouts
	}

	analysis := map[string]any{}
	if planType == "PLAN" {
		analysis["type"] = "training_plan"
		analysis["message"] = fmt.Sprintf("Training plan '%s' created successfully", name)
		if startDate != "" {
			if autoSetDate {
				analysis["schedule"] = fmt.Sprintf("Plan starts on %s (auto-set to next Monday)", startDate)
			} else {
				analysis["schedule"] = fmt.Sprintf("Plan starts on %s", startDate)
			}
		}
	} else {
		analysis["type"] = "workout_folder"
		analysis["message"] = fmt.Sprintf("Workout folder '%s' created successfully", name)
	}

	if len(workouts) > 0 {
		for _, workout := range workouts {
			workout["folder_id"] = folder.ID
		}

		created, err := client.BulkCreateWorkouts(ctx, workouts)
		if err != nil {
			return h.failure("create_training_plan", err), nil
		}

		items := make([]map[string]any, 0, len(created))
		totalDuration := 0
		totalLoad := 0
		for i := range created {
			workout := &created[i]
			items = append(items, createdWorkoutItem(workout))
			if workout.MovingTime != nil {
				totalDuration += *workout.MovingTime
			}
			if workout.TrainingLoad != nil {
				totalLoad += *workout.TrainingLoad
			}
		}

		data["workouts"] = items
		data["num_workouts"] = len(created)
		data["summary"] = map[string]any{
			"count":                  len(created),
			"total_duration_seconds": totalDuration,
			"total_training_load":    totalLoad,
		}

		analysis["workouts_created"] = len(created)
		analysis["total_duration_seconds"] = totalDuration
		analysis["total_training_load"] = totalLoad
	}

	return successResult(data, map[string]any{
		"query_type": "create_plan",
		"analysis":   analysis,
	}), nil
}

func (h *Handlers) updateTrainingPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folderID, err := req.RequireInt("folder_id")
	if err != nil {
		return errorResult(response.ValidationError, "folder_id is required"), nil
	}

	fields := map[string]any{}
	if name := req.GetString("name", ""); name != "" {
		fields["name"] = name
	}
	if description := req.GetString("description", ""); description != "" {
		fields["description"] = description
	}
	if startDate := req.GetString("start_date", ""); startDate != "" {
		fields["start_date_local"] = startDate
	}
	if visibility := req.GetString("visibility", ""); visibility != "" {
		if visibility != "PRIVATE" && visibility != "PUBLIC" {
			return errorResult(response.ValidationError,
				"visibility must be either 'PRIVATE' or 'PUBLIC'"), nil
		}
		fields["visibility"] = visibility
	}
	if len(fields) == 0 {
		return errorResult(response.ValidationError,
			"at least one of name, description, start_date or visibility is required"), nil
	}

	client, err := h.open()
	if err != nil {
		return h.failure("update_training_plan", err), nil
	}
	defer client.Close()

	folder, err := client.UpdateFolder(ctx, folderID, fields)
	if err != nil {
		return h.failure("update_training_plan", err), nil
	}

	data := map[string]any{
		"id":         folder.ID,
		"name":       folder.Name,
		"type":       folder.Type,
		"visibility": folder.Visibility,
	}
	if hasStr(folder.Description) {
		data["description"] = *folder.Description
	}
	if hasStr(folder.StartDateLocal) {
		data["start_date"] = *folder.StartDateLocal
	}

	return successResult(data, map[string]any{
		"query_type": "update_plan",
		"analysis": map[string]any{
			"message":        fmt.Sprintf("Folder/plan %d updated successfully", folderID),
			"fields_updated": len(fields),
		},
	}), nil
}

func (h *Handlers) deleteTrainingPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folderID, err := req.RequireInt("folder_id")
	if err != nil {
		return errorResult(response.ValidationError, "folder_id is required"), nil
	}

	client, err := h.open()
	if err != nil {
		return h.failure("delete_training_plan", err), nil
	}
	defer client.Close()

	// Look the folder up first so the confirmation can name it. The
	// delete is only issued after the lookup succeeds.
	folders, err := client.GetFolders(ctx)
	if err != nil {
		return h.failure("delete_training_plan", err), nil
	}

	var target *icu.Folder
	for i := range folders {
		if folders[i].ID == folderID {
			target = &folders[i]
			break
		}
	}
	if target == nil {
		return errorResult(response.NotFound,
			fmt.Sprintf("Folder/plan with ID %d not found", folderID)), nil
	}

	folderName := strOr(target.Name, "")
	folderType := strOr(target.Type, "FOLDER")
	numWorkouts := 0
	if target.NumWorkouts != nil {
		numWorkouts = *target.NumWorkouts
	}

	if err := client.DeleteFolder(ctx, folderID); err != nil {
		return h.failure("delete_training_plan", err), nil
	}

	return successResult(
		map[string]any{
			"deleted":   true,
			"folder_id": folderID,
			"name":      folderName,
			"type":      folderType,
		},
		map[string]any{
			"query_type": "delete_plan",
			"analysis": map[string]any{
				"message":          fmt.Sprintf("Successfully deleted %s '%s'", strings.ToLower(folderType), folderName),
				"workouts_deleted": numWorkouts,
			},
		},
	), nil
}

func (h *Handlers) addWorkoutsToPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folderID, err := req.RequireInt("folder_id")
	if err != nil {
		return errorResult(response.ValidationError, "folder_id is required"), nil
	}
	raw, err := req.RequireString("workouts")
	if err != nil {
		return errorResult(response.ValidationError, "workouts is required"), nil
	}

	workouts, errMsg := parseWorkouts(raw)
	if errMsg != "" {
		return errorResult(response.ValidationError, errMsg), nil
	}
	for _, workout := range workouts {
		workout["folder_id"] = folderID
	}

	client, err := h.open()
	if err != nil {
		return h.failure("add_workouts_to_plan", err), nil
	}
	defer client.Close()

	created, err := client.BulkCreateWorkouts(ctx, workouts)
	if err != nil {
		return h.failure("add_workouts_to_plan", err), nil
	}

	items := make([]map[string]any, 0, len(created))
	totalDuration := 0
	totalLoad := 0
	for i := range created {
		workout := &created[i]
		items = append(items, createdWorkoutItem(workout))
		if workout.MovingTime != nil {
			totalDuration += *workout.MovingTime
		}
		if workout.TrainingLoad != nil {
			totalLoad += *workout.TrainingLoad
		}
	}

	return successResult(
		map[string]any{
			"workouts": items,
			"summary": map[string]any{
				"count":                  len(created),
				"total_duration_seconds": totalDuration,
				"total_training_load":    totalLoad,
			},
		},
		map[string]any{
			"query_type": "add_workouts_to_plan",
			"analysis": map[string]any{
				"workouts_created":       len(created),
				"total_duration_seconds": totalDuration,
				"total_training_load":    totalLoad,
				"folder_id":              folderID,
			},
		},
	), nil
}

// nextMonday returns the Monday strictly after today. A plan created on a
// Monday starts the following week, never the same day.
func (h *Handlers) nextMonday() time.Time {
	today := h.today()
	daysUntil := (int(time.Monday) - int(today.Weekday()) + 7) % 7
	if daysUntil == 0 {
		daysUntil = 7
	}
	return today.AddDate(0, 0, daysUntil)
}

// parseWorkouts validates a workouts JSON payload and applies the
// submission defaults. The returned message is empty on success.
func parseWorkouts(raw string) ([]map[string]any, string) {
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, "Invalid JSON format: " + err.Error()
	}

	list, ok := parsed.([]any)
	if !ok {
		return nil, "workouts must be a JSON array"
	}
	if len(list) == 0 {
		return nil, "workouts array cannot be empty"
	}

	workouts := make([]map[string]any, 0, len(list))
	for i, entry := range list {
		workout, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Sprintf("Workout at index %d must be an object", i)
		}

		for _, field := range requiredWorkoutFields {
			if _, present := workout[field]; !present {
				return nil, fmt.Sprintf("Workout at index %d missing required field: %s", i, field)
			}
		}

		if _, present := workout["indoor"]; !present {
			workout["indoor"] = false
		}
		if _, present := workout["attachments"]; !present {
			workout["attachments"] = []any{}
		}
		if _, present := workout["joules"]; !present {
			workout["joules"] = 0
		}
		if _, present := workout["joules_above_ftp"]; !present {
			workout["joules_above_ftp"] = 0
		}
		if _, present := workout["sub_type"]; !present {
			workout["sub_type"] = "NONE"
		}

		workouts = append(workouts, workout)
	}

	return workouts, ""
}

func libraryWorkoutItem(w *icu.Workout) map[string]any {
	item := map[string]any{
		"id":   w.ID,
		"name": w.Name,
	}
	if hasStr(w.Description) {
		item["description"] = *w.Description
	}
	if hasStr(w.Type) {
		item["type"] = *w.Type
	}
	if hasInt(w.MovingTime) {
		item["duration_seconds"] = *w.MovingTime
	}
	if w.Day != nil {
		item["day"] = *w.Day
	}
	if hasInt(w.TrainingLoad) {
		item["training_load"] = *w.TrainingLoad
	}
	if hasFloat(w.Intensity) {
		item["intensity_factor"] = *w.Intensity
	}
	if w.Indoor != nil {
		item["indoor"] = *w.Indoor
	}
	if hasStr(w.Color) {
		item["color"] = *w.Color
	}
	return item
}

func createdWorkoutItem(w *icu.Workout) map[string]any {
	item := map[string]any{
		"id":   w.ID,
		"name": w.Name,
		"type": w.Type,
	}
	if hasStr(w.Description) {
		item["description"] = *w.Description
	}
	if hasInt(w.MovingTime) {
		item["duration_seconds"] = *w.MovingTime
	}
	if hasInt(w.TrainingLoad) {
		item["training_load"] = *w.TrainingLoad
	}
	if hasInt(w.FolderID) {
		item["folder_id"] = *w.FolderID
	}
	return item
}
