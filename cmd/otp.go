package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/ticktick-access/internal/security"
)

func newOtpCmd() *cobra.Command {
	var expiry time.Duration

	cmd := &cobra.Command{
		Use:   "otp",
		Short: "Generate a one-time password for elevated deletion",
		Long: `Generate a one-time password authorizing a single elevated deletion.

The code is single-use: validating it consumes it, whether or not the
deletion succeeds. Generating a new code replaces any outstanding one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := security.NewStore().Generate(security.PurposeDelete, expiry)
			if err != nil {
				return fmt.Errorf("failed to generate OTP: %w", err)
			}
			fmt.Printf("OTP: %s (valid for %s)\n", code, expiry)
			return nil
		},
	}

	cmd.Flags().DurationVar(&expiry, "expiry", security.DefaultExpiry, "How long the code stays valid")
	return cmd
}
