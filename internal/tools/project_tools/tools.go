package project_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/ticktick-access/internal/instrumentation"
	"github.com/teemow/ticktick-access/internal/server"
	"github.com/teemow/ticktick-access/internal/tools/common"
)

// RegisterProjectTools registers all project-related tools with the MCP server
func RegisterProjectTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listProjectsTool := mcp.NewTool("list_projects",
		mcp.WithDescription("List all TickTick projects. Returns project IDs, names, and metadata."),
	)

	s.AddTool(listProjectsTool, common.InstrumentedToolHandlerWithOperation(
		"list_projects", instrumentation.OperationList, sc, listProjectsHandler(sc)))

	return nil
}

func listProjectsHandler(sc *server.ServerContext) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		client, err := sc.Client()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		projects, err := client.ListProjects(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list projects: %v", err)), nil
		}

		payload := map[string]any{
			"projects": projects,
			"count":    len(projects),
		}
		result, _ := json.MarshalIndent(payload, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	}
}
