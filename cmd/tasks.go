package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/teemow/ticktick-access/internal/archive"
	"github.com/teemow/ticktick-access/internal/config"
	"github.com/teemow/ticktick-access/internal/deletion"
	"github.com/teemow/ticktick-access/internal/security"
	"github.com/teemow/ticktick-access/internal/ticktick"
)

func newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Work with TickTick tasks",
	}

	cmd.AddCommand(newTasksListCmd())
	cmd.AddCommand(newTasksCreateCmd())
	cmd.AddCommand(newTasksDeleteCmd())
	return cmd
}

func newTasksListCmd() *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(cmd.Context())
			if err != nil {
				return err
			}

			projectID, err := client.ResolveProjectID(cmd.Context(), project)
			if err != nil {
				return err
			}

			summary, err := client.ListTasks(cmd.Context(), projectID)
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tTITLE")
			for _, t := range summary.Tasks {
				fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, taskStatusLabel(t.Status), t.Title)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Printf("\n%d tasks (%d open, %d completed)\n",
				summary.Count, summary.Incomplete, summary.Completed)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project name or ID")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func taskStatusLabel(status int) string {
	switch status {
	case ticktick.StatusCompleted:
		return "done"
	case ticktick.StatusOpen:
		return "open"
	default:
		return fmt.Sprintf("%d", status)
	}
}

func newTasksCreateCmd() *cobra.Command {
	var (
		project  string
		title    string
		content  string
		priority int
		dueDate  string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(cmd.Context())
			if err != nil {
				return err
			}

			projectID, err := client.ResolveProjectID(cmd.Context(), project)
			if err != nil {
				return err
			}

			task, err := client.CreateTask(cmd.Context(), ticktick.CreateTaskInput{
				ProjectID: projectID,
				Title:     title,
				Content:   content,
				Priority:  priority,
				DueDate:   dueDate,
			})
			if err != nil {
				return fmt.Errorf("failed to create task: %w", err)
			}

			fmt.Printf("Created task %s (%s)\n", task.ID, task.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project name or ID")
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&content, "content", "", "Task description")
	cmd.Flags().IntVar(&priority, "priority", 0, "Priority from 0-5 (0=none, 1=low, 3=medium, 5=high)")
	cmd.Flags().StringVar(&dueDate, "due", "", "Due date in ISO 8601 format")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTasksDeleteCmd() *cobra.Command {
	var (
		project   string
		taskID    string
		elevated  bool
		otp       string
		archiveTo string
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a task, subject to the deletion policy",
		Long: `Delete a task from a project.

Deletion is policy-checked: it can be disabled in settings, and when the
deletion.access setting is 'elevated' (or --elevated is given) a one-time
password from 'ticktick otp' is required. Unless auto-archiving is
disabled, the task is snapshotted to a local JSON file before removal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(cmd.Context())
			if err != nil {
				return err
			}

			projectID, err := client.ResolveProjectID(cmd.Context(), project)
			if err != nil {
				return err
			}

			store := config.NewStore()
			engine := deletion.NewEngine(store, security.NewStore(), archive.New(), client)

			// Agent callers going through the MCP server always run
			// elevated. The CLI only does when asked to.
			result := engine.Delete(cmd.Context(), projectID, taskID, deletion.Request{
				Elevated:    elevated,
				OTP:         otp,
				Destination: archiveTo,
			})

			if !result.Success {
				return fmt.Errorf("%s", result.Error)
			}

			fmt.Println(result.Message)
			if result.Archived {
				fmt.Println("A snapshot of the task was archived before deletion.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project name or ID")
	cmd.Flags().StringVar(&taskID, "task", "", "Task ID")
	cmd.Flags().BoolVar(&elevated, "elevated", false, "Run the deletion under elevated rules (requires an OTP)")
	cmd.Flags().StringVar(&otp, "otp", "", "One-time password from 'ticktick otp'")
	cmd.Flags().StringVar(&archiveTo, "archive-to", "", "Directory for the pre-deletion snapshot, overriding the configured location")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("task")
	return cmd
}
