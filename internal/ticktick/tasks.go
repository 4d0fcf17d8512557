package ticktick

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ListTasks fetches all tasks from a project with a status breakdown.
func (c *Client) ListTasks(ctx context.Context, projectID string) (*TasksSummary, error) {
	data, err := c.GetProjectData(ctx, projectID)
	if err != nil {
		return nil, err
	}

	summary := &TasksSummary{
		ProjectID: projectID,
		Tasks:     data.Tasks,
		Count:     len(data.Tasks),
	}
	for _, t := range data.Tasks {
		switch t.Status {
		case StatusCompleted:
			summary.Completed++
		case StatusOpen:
			summary.Incomplete++
		}
	}
	return summary, nil
}

// GetTask fetches a single task.
func (c *Client) GetTask(ctx context.Context, projectID, taskID string) (*Task, error) {
	var task Task
	if err := c.get(ctx, taskEndpoint(projectID, taskID), &task); err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

// GetTaskRaw fetches a task as the untyped JSON document the API returned.
// Archival snapshots use this instead of GetTask so the snapshot preserves
// every field the server knows about, including ones this client does not
// model.
func (c *Client) GetTaskRaw(ctx context.Context, projectID, taskID string) (map[string]any, error) {
	data, err := c.Request(ctx, http.MethodGet, taskEndpoint(projectID, taskID), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch task for snapshot: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode task snapshot: %w", err)
	}
	return raw, nil
}

// CreateTask creates a new task. Priority is clamped to the API's 0-5
// range.
func (c *Client) CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error) {
	task := Task{
		ProjectID: input.ProjectID,
		Title:     input.Title,
		Content:   input.Content,
		Priority:  clampPriority(input.Priority),
		DueDate:   input.DueDate,
		Reminders: input.Reminders,
	}

	var created Task
	if err := c.post(ctx, "task", &task, &created); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &created, nil
}

// UpdateTask applies changes on top of the task's current remote state.
// The existing task is fetched first and used as the update payload base,
// so unspecified fields keep their values; the Task struct restricts the
// payload to known fields. A failed fetch fails the update.
func (c *Client) UpdateTask(ctx context.Context, projectID, taskID string, changes TaskChanges) (*Task, error) {
	existing, err := c.GetTask(ctx, projectID, taskID)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve task %s: %w", taskID, err)
	}

	payload := *existing
	payload.ProjectID = projectID

	if changes.Title != nil {
		payload.Title = *changes.Title
	}
	if changes.Content != nil {
		payload.Content = *changes.Content
	}
	if changes.Priority != nil {
		payload.Priority = clampPriority(*changes.Priority)
	}
	if changes.DueDate != nil {
		payload.DueDate = *changes.DueDate
	}
	if changes.Status != nil {
		payload.Status = *changes.Status
	}
	if changes.Tags != nil {
		payload.Tags = changes.Tags
	}
	if changes.Reminders != nil {
		payload.Reminders = changes.Reminders
	}

	var updated Task
	if err := c.post(ctx, "task/"+taskID, &payload, &updated); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return &updated, nil
}

// CompleteTask marks a task as completed.
func (c *Client) CompleteTask(ctx context.Context, projectID, taskID string) (*Task, error) {
	status := StatusCompleted
	return c.UpdateTask(ctx, projectID, taskID, TaskChanges{Status: &status})
}

// DeleteTask permanently deletes a task. Policy checks and archival are
// the deletion engine's responsibility; this is the raw destructive call.
func (c *Client) DeleteTask(ctx context.Context, projectID, taskID string) error {
	if err := c.delete(ctx, taskEndpoint(projectID, taskID)); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func taskEndpoint(projectID, taskID string) string {
	return "project/" + projectID + "/task/" + taskID
}

func clampPriority(p int) int {
	if p < 0 {
		return 0
	}
	if p > 5 {
		return 5
	}
	return p
}
