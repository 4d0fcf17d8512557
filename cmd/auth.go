package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/ticktick-access/internal/auth"
	"github.com/teemow/ticktick-access/internal/config"
)

func newAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with TickTick and store the access token",
		Long: `Run the OAuth 2.0 authorization flow against TickTick.

A browser window opens for consent; the resulting access token is stored
in the config directory and used by all other commands.

Requires OAuth client credentials, set with 'ticktick client set'. Create
them at https://developer.ticktick.com with redirect URI
http://localhost:8080.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := config.NewStore()

			clientID, clientSecret, err := store.ClientCredentials()
			if err != nil {
				return fmt.Errorf("no OAuth client configured: %w (run 'ticktick client set' first)", err)
			}

			flow := auth.NewFlow(clientID, clientSecret)
			token, err := flow.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			if err := store.SaveToken(token); err != nil {
				return fmt.Errorf("failed to store access token: %w", err)
			}

			fmt.Println("Authentication successful. Access token stored.")
			return nil
		},
	}
}
