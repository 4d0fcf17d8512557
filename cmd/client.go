package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/ticktick-access/internal/config"
	"github.com/teemow/ticktick-access/internal/logging"
)

func newClientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage the TickTick OAuth client credentials",
	}

	cmd.AddCommand(newClientSetCmd())
	cmd.AddCommand(newClientShowCmd())
	return cmd
}

func newClientSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <client-id> <client-secret>",
		Short: "Store the OAuth client id and secret",
		Long: `Store the OAuth client credentials created in the TickTick developer
console (https://developer.ticktick.com). The redirect URI registered
there must be http://localhost:8080.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := config.NewStore()
			if err := store.SaveClientCredentials(args[0], args[1]); err != nil {
				return fmt.Errorf("failed to store client credentials: %w", err)
			}
			fmt.Println("Client credentials stored. Run 'ticktick auth' to authenticate.")
			return nil
		},
	}
}

func newClientShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored OAuth client credentials (redacted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := config.NewStore()
			clientID, clientSecret, err := store.ClientCredentials()
			if err != nil {
				return fmt.Errorf("no OAuth client configured: %w", err)
			}
			fmt.Printf("Client ID:     %s\n", clientID)
			fmt.Printf("Client secret: %s\n", logging.RedactCredential(clientSecret))
			return nil
		},
	}
}
