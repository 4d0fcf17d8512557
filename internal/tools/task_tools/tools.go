package task_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/ticktick-access/internal/deletion"
	"github.com/teemow/ticktick-access/internal/instrumentation"
	"github.com/teemow/ticktick-access/internal/server"
	"github.com/teemow/ticktick-access/internal/ticktick"
	"github.com/teemow/ticktick-access/internal/tools/common"
)

type toolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// RegisterTaskTools registers all task-related tools with the MCP server
func RegisterTaskTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listTasksTool := mcp.NewTool("list_tasks",
		mcp.WithDescription("List all tasks in a specific TickTick project."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project to retrieve tasks from."),
		),
	)
	s.AddTool(listTasksTool, common.InstrumentedToolHandlerWithOperation(
		"list_tasks", instrumentation.OperationList, sc, listTasksHandler(sc)))

	createTaskTool := mcp.NewTool("create_task",
		mcp.WithDescription("Create a new task in a TickTick project."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project where the task should be created."),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("The title of the task."),
		),
		mcp.WithString("content",
			mcp.Description("Optional description for the task."),
		),
		mcp.WithNumber("priority",
			mcp.Description("Priority level from 0-5 (0=none, 1=low, 3=medium, 5=high)."),
		),
		mcp.WithString("due_date",
			mcp.Description("Optional due date in ISO 8601 format."),
		),
		mcp.WithArray("reminders",
			mcp.Description("Optional list of reminder triggers in ISO 8601 duration format, e.g. ['TRIGGER:PT0S'] (at due time), ['TRIGGER:-PT30M'] (30 min before)."),
		),
	)
	s.AddTool(createTaskTool, common.InstrumentedToolHandlerWithOperation(
		"create_task", instrumentation.OperationCreate, sc, createTaskHandler(sc)))

	updateTaskTool := mcp.NewTool("update_task",
		mcp.WithDescription("Update an existing task in a TickTick project."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The ID of the task to update."),
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project containing the task."),
		),
		mcp.WithString("title",
			mcp.Description("Optional new title for the task."),
		),
		mcp.WithString("content",
			mcp.Description("Optional new description for the task."),
		),
		mcp.WithNumber("priority",
			mcp.Description("Optional new priority level from 0-5."),
		),
		mcp.WithString("due_date",
			mcp.Description("Optional new due date in ISO 8601 format."),
		),
		mcp.WithNumber("status",
			mcp.Description("Optional new status (0=open, 2=completed, -1=won't do)."),
		),
		mcp.WithArray("tags",
			mcp.Description("Optional list of tags."),
		),
		mcp.WithArray("reminders",
			mcp.Description("Optional list of reminder triggers in ISO 8601 duration format."),
		),
	)
	s.AddTool(updateTaskTool, common.InstrumentedToolHandlerWithOperation(
		"update_task", instrumentation.OperationUpdate, sc, updateTaskHandler(sc)))

	completeTaskTool := mcp.NewTool("complete_task",
		mcp.WithDescription("Mark a task as complete."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The ID of the task to complete."),
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project containing the task."),
		),
	)
	s.AddTool(completeTaskTool, common.InstrumentedToolHandlerWithOperation(
		"complete_task", instrumentation.OperationComplete, sc, completeTaskHandler(sc)))

	deleteTaskTool := mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a task from a TickTick project. Deletion is policy-checked: it can be disabled or require a one-time password, and the task is archived before removal unless auto-archiving is turned off."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The ID of the task to delete."),
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project containing the task."),
		),
		mcp.WithString("otp",
			mcp.Description("One-time password authorizing the deletion. Generate one with the 'ticktick otp' command."),
		),
		mcp.WithString("archive_to",
			mcp.Description("Optional directory for the pre-deletion snapshot, overriding the configured archive location."),
		),
	)
	s.AddTool(deleteTaskTool, common.InstrumentedToolHandlerWithOperation(
		"delete_task", instrumentation.OperationDelete, sc, deleteTaskHandler(sc)))

	return nil
}

func toolJSON(v any) *mcp.CallToolResult {
	result, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(result))
}

func listTasksHandler(sc *server.ServerContext) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		projectID := common.StringArg(args, "project_id")
		if projectID == "" {
			return mcp.NewToolResultError("project_id is required"), nil
		}

		client, err := sc.Client()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		summary, err := client.ListTasks(ctx, projectID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list tasks: %v", err)), nil
		}

		return toolJSON(summary), nil
	}
}

func createTaskHandler(sc *server.ServerContext) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		projectID := common.StringArg(args, "project_id")
		title := common.StringArg(args, "title")
		if projectID == "" || title == "" {
			return mcp.NewToolResultError("project_id and title are required"), nil
		}

		client, err := sc.Client()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		input := ticktick.CreateTaskInput{
			ProjectID: projectID,
			Title:     title,
			Content:   common.StringArg(args, "content"),
			DueDate:   common.StringArg(args, "due_date"),
			Reminders: common.StringSliceArg(args, "reminders"),
		}
		if priority, ok := common.IntArg(args, "priority"); ok {
			input.Priority = priority
		}

		task, err := client.CreateTask(ctx, input)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create task: %v", err)), nil
		}

		return toolJSON(map[string]any{"success": true, "task": task}), nil
	}
}

func updateTaskHandler(sc *server.ServerContext) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		projectID := common.StringArg(args, "project_id")
		taskID := common.StringArg(args, "task_id")
		if projectID == "" || taskID == "" {
			return mcp.NewToolResultError("project_id and task_id are required"), nil
		}

		client, err := sc.Client()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var changes ticktick.TaskChanges
		if title := common.StringArg(args, "title"); title != "" {
			changes.Title = &title
		}
		if content := common.StringArg(args, "content"); content != "" {
			changes.Content = &content
		}
		if dueDate := common.StringArg(args, "due_date"); dueDate != "" {
			changes.DueDate = &dueDate
		}
		if priority, ok := common.IntArg(args, "priority"); ok {
			changes.Priority = &priority
		}
		if status, ok := common.IntArg(args, "status"); ok {
			changes.Status = &status
		}
		changes.Tags = common.StringSliceArg(args, "tags")
		changes.Reminders = common.StringSliceArg(args, "reminders")

		task, err := client.UpdateTask(ctx, projectID, taskID, changes)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update task: %v", err)), nil
		}

		return toolJSON(map[string]any{"success": true, "task": task}), nil
	}
}

func completeTaskHandler(sc *server.ServerContext) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		projectID := common.StringArg(args, "project_id")
		taskID := common.StringArg(args, "task_id")
		if projectID == "" || taskID == "" {
			return mcp.NewToolResultError("project_id and task_id are required"), nil
		}

		client, err := sc.Client()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		task, err := client.CompleteTask(ctx, projectID, taskID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to complete task: %v", err)), nil
		}

		return toolJSON(map[string]any{"success": true, "task": task}), nil
	}
}

func deleteTaskHandler(sc *server.ServerContext) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		projectID := common.StringArg(args, "project_id")
		taskID := common.StringArg(args, "task_id")
		if projectID == "" || taskID == "" {
			return mcp.NewToolResultError("project_id and task_id are required"), nil
		}

		engine, err := sc.Engine()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		// MCP callers are untrusted agents, so deletion through this
		// tool always runs under elevated rules.
		result := engine.Delete(ctx, projectID, taskID, deletion.Request{
			Elevated:    true,
			OTP:         common.StringArg(args, "otp"),
			Destination: common.StringArg(args, "archive_to"),
		})

		sc.Metrics().RecordDeletion(ctx, result.Status(), result.Archived)

		if !result.Success {
			return mcp.NewToolResultError(result.Error), nil
		}
		return toolJSON(result), nil
	}
}
