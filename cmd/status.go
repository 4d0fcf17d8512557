package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/teemow/ticktick-access/internal/config"
)

type statusReport struct {
	ConfigDir        string               `json:"config_dir"`
	ClientConfigured bool                 `json:"client_configured"`
	ClientID         string               `json:"client_id,omitempty"`
	Authenticated    bool                 `json:"authenticated"`
	Settings         []config.SettingView `json:"settings"`
}

func newStatusCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Display configuration and authentication status",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := config.NewStore()

			report := statusReport{
				ConfigDir: store.Dir(),
			}
			if clientID, _, err := store.ClientCredentials(); err == nil {
				report.ClientConfigured = true
				report.ClientID = clientID
			}
			if _, err := store.Token(); err == nil {
				report.Authenticated = true
			}

			settings, err := store.ListSettings()
			if err != nil {
				return fmt.Errorf("failed to read settings: %w", err)
			}
			report.Settings = settings

			switch format {
			case "json":
				out, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			case "table":
				printStatusTable(report)
				return nil
			default:
				return fmt.Errorf("unsupported format: %s (supported: table, json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}

func printStatusTable(report statusReport) {
	fmt.Printf("Config directory: %s\n", report.ConfigDir)
	if report.ClientConfigured {
		fmt.Printf("OAuth client:     %s\n", report.ClientID)
	} else {
		fmt.Println("OAuth client:     not configured (run 'ticktick client set')")
	}
	if report.Authenticated {
		fmt.Println("Access token:     present")
	} else {
		fmt.Println("Access token:     missing (run 'ticktick auth')")
	}

	fmt.Println("\nSettings:")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  KEY\tVALUE\tDEFAULT\tDESCRIPTION")
	for _, s := range report.Settings {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n",
			s.Key, displayValue(s.Value), displayValue(s.Default), s.Description)
	}
	_ = w.Flush()
}

func displayValue(v any) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%v", v)
}
