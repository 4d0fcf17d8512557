package ticktick

import (
	"context"
	"fmt"
)

// ListProjects fetches all projects for the authenticated user.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.get(ctx, "project", &projects); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProjectData fetches the full project payload including its tasks.
func (c *Client) GetProjectData(ctx context.Context, projectID string) (*ProjectData, error) {
	var data ProjectData
	if err := c.get(ctx, "project/"+projectID+"/data", &data); err != nil {
		return nil, fmt.Errorf("failed to get project data: %w", err)
	}
	return &data, nil
}

// ResolveProjectID maps a project name to its ID. Values that already look
// like IDs (24 characters) pass through untouched, as do names with no
// matching project.
func (c *Client) ResolveProjectID(ctx context.Context, nameOrID string) (string, error) {
	if len(nameOrID) == 24 {
		return nameOrID, nil
	}

	projects, err := c.ListProjects(ctx)
	if err != nil {
		return "", err
	}
	for _, p := range projects {
		if p.Name == nameOrID {
			return p.ID, nil
		}
	}
	return nameOrID, nil
}
