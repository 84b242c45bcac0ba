// Package cli holds the photobooth command tree.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the photobooth command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photobooth",
		Short: "Timed webcam photo strips with stickers and frames",
		Long: `Photobooth captures a timed sequence of snapshots into a photo strip,
lets you decorate it with draggable stickers and a border, and saves the
result as photobooth.png.

Settings can also come from PHOTOBOOTH_* environment variables or a .env file.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			setupLogging(boolSetting(cmd, "debug", envDebug))
		},
	}
	cmd.PersistentFlags().Bool("debug", false, "Log render and capture details")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newComposeCmd())

	return cmd
}
