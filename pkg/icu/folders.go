package icu

import (
	"context"
	"fmt"
	"net/http"
)

// GetFolders returns all workout folders and training plans.
func (c *Client) GetFolders(ctx context.Context) ([]Folder, error) {
	var folders []Folder
	path := fmt.Sprintf("/athlete/%s/folders", c.athleteID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// CreateFolder creates a workout folder or training plan.
func (c *Client) CreateFolder(ctx context.Context, fields map[string]any) (*Folder, error) {
	var folder Folder
	path := fmt.Sprintf("/athlete/%s/folders", c.athleteID)
	if err := c.do(ctx, http.MethodPost, path, nil, fields, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// UpdateFolder updates a workout folder or training plan.
func (c *Client) UpdateFolder(ctx context.Context, folderID int, fields map[string]any) (*Folder, error) {
	var folder Folder
	path := fmt.Sprintf("/athlete/%s/folders/%d", c.athleteID, folderID)
	if err := c.do(ctx, http.MethodPut, path, nil, fields, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// DeleteFolder removes a workout folder or training plan.
func (c *Client) DeleteFolder(ctx context.Context, folderID int) error {
	path := fmt.Sprintf("/athlete/%s/folders/%d", c.athleteID, folderID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// GetWorkoutsInFolder returns the workouts stored in one folder.
func (c *Client) GetWorkoutsInFolder(ctx context.Context, folderID int) ([]Workout, error) {
	var workouts []Workout
	path := fmt.Sprintf("/athlete/%s/folders/%d/workouts", c.athleteID, folderID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// BulkCreateWorkouts creates several library workouts in one call.
func (c *Client) BulkCreateWorkouts(ctx context.Context, workouts []map[string]any) ([]Workout, error) {
	var created []Workout
	path := fmt.Sprintf("/athlete/%s/workouts/bulk", c.athleteID)
	if err := c.do(ctx, http.MethodPost, path, nil, workouts, &created); err != nil {
		return nil, err
	}
	return created, nil
}
