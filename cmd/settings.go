package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/teemow/ticktick-access/internal/config"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and change behavior settings",
		Long: `Inspect and change behavior settings, such as the deletion access
policy. Each setting has its own subcommand; run it without a value to
show the current state, with a value to change it, or with --reset to
restore the default.`,
	}

	cmd.AddCommand(newSettingsListCmd())

	// One subcommand per manifest entry, in manifest order.
	for i := range config.Manifest {
		cmd.AddCommand(newSettingCmd(&config.Manifest[i]))
	}

	return cmd
}

func newSettingCmd(entry *config.Setting) *cobra.Command {
	var reset bool

	short := entry.Description
	long := entry.Description + ".\n\n" + entry.Help
	if entry.Type == config.TypeChoice {
		long += "\n\nAllowed values: " + strings.Join(entry.Options, ", ")
	}

	cmd := &cobra.Command{
		Use:   entry.Key + " [value]",
		Short: short,
		Long:  long,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := config.NewStore()

			if reset {
				if len(args) > 0 {
					return fmt.Errorf("--reset does not take a value")
				}
				if err := store.SetSetting(entry.Key, nil); err != nil {
					return err
				}
				fmt.Printf("%s reset to default (%s)\n", entry.Key, displayValue(entry.Default))
				return nil
			}

			if len(args) == 0 {
				value, err := store.GetSetting(entry.Key)
				if err != nil {
					return err
				}
				fmt.Printf("%s = %s\n", entry.Key, displayValue(value))
				return nil
			}

			if err := store.SetSetting(entry.Key, args[0]); err != nil {
				return err
			}
			fmt.Printf("%s set to %s\n", entry.Key, args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Restore the default value")
	return cmd
}

func newSettingsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all settings and their current values",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := config.NewStore()
			settings, err := store.ListSettings()
			if err != nil {
				return fmt.Errorf("failed to read settings: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tVALUE\tDEFAULT\tTYPE\tDESCRIPTION")
			for _, s := range settings {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					s.Key, displayValue(s.Value), displayValue(s.Default), s.Type, s.Description)
			}
			return w.Flush()
		},
	}
}
