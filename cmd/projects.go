package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/teemow/ticktick-access/internal/config"
	"github.com/teemow/ticktick-access/internal/ticktick"
)

// newAPIClient builds an authenticated TickTick client from the stored
// token, shared by the CLI commands that talk to the API directly.
func newAPIClient(ctx context.Context) (*ticktick.Client, error) {
	store := config.NewStore()
	token, err := store.Token()
	if err != nil {
		return nil, fmt.Errorf("not authenticated: %w (run 'ticktick auth')", err)
	}
	return ticktick.NewClient(ctx, token), nil
}

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Work with TickTick projects",
	}

	cmd.AddCommand(newProjectsListCmd())
	return cmd
}

func newProjectsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(cmd.Context())
			if err != nil {
				return err
			}

			projects, err := client.ListProjects(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME")
			for _, p := range projects {
				fmt.Fprintf(w, "%s\t%s\n", p.ID, p.Name)
			}
			return w.Flush()
		},
	}
}
