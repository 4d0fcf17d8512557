package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/ticktick-access/internal/server"
)

const tasksURIPrefix = "ticktick://tasks/"

// RegisterTickTickResources registers the read-only TickTick resources:
// the project list and per-project task collections.
func RegisterTickTickResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	projectsResource := mcp.NewResource(
		"ticktick://projects",
		"TickTick Projects",
		mcp.WithResourceDescription("All projects in the authenticated TickTick account"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(projectsResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleProjects(ctx, request, sc)
	})

	tasksTemplate := mcp.NewResourceTemplate(
		tasksURIPrefix+"{project_id}",
		"TickTick Project Tasks",
		mcp.WithTemplateDescription("All tasks in a specific TickTick project"),
		mcp.WithTemplateMIMEType("application/json"),
	)

	s.AddResourceTemplate(tasksTemplate, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleProjectTasks(ctx, request, sc)
	})

	return nil
}

// handleProjects returns the account's project list.
func handleProjects(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	client, err := sc.Client()
	if err != nil {
		return nil, err
	}

	projects, err := client.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return jsonContents(request.Params.URI, map[string]any{
		"projects": projects,
		"count":    len(projects),
	})
}

// handleProjectTasks returns the task summary for the project named in the
// resource URI.
func handleProjectTasks(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	projectID := projectIDFromURI(request.Params.URI)
	if projectID == "" {
		return nil, fmt.Errorf("resource URI %q does not name a project", request.Params.URI)
	}

	client, err := sc.Client()
	if err != nil {
		return nil, err
	}

	summary, err := client.ListTasks(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for project %s: %w", projectID, err)
	}

	return jsonContents(request.Params.URI, summary)
}

// projectIDFromURI extracts the project id from a ticktick://tasks/ URI.
func projectIDFromURI(uri string) string {
	if !strings.HasPrefix(uri, tasksURIPrefix) {
		return ""
	}
	return strings.Trim(strings.TrimPrefix(uri, tasksURIPrefix), "/")
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
