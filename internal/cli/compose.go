package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/photobooth"
)

func newComposeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Run a composition script without a window",
		Long: `Runs a YAML or JSON composition script headlessly with simulated time and
writes every export step to the output directory.

A script is a list of steps:

  steps:
    - {action: session, photos: 2}
    - {action: capture}
    - {action: drop, sticker: star.png, size: 80, x: 160, y: 120}
    - {action: drag, fromX: 160, fromY: 100, toX: 200, toY: 300, frames: 10}
    - {action: frame}
    - {action: export}

Pointer coordinates are canvas-local.`,
		Example: `  photobooth compose --script strip.yaml --stickers ./stickers --frame me.jpg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			scriptPath, err := cmd.Flags().GetString("script")
			if err != nil {
				return err
			}
			data, err := os.ReadFile(scriptPath)
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			script, err := photobooth.LoadScript(data)
			if err != nil {
				return err
			}
			step, err := cmd.Flags().GetDuration("step")
			if err != nil {
				return err
			}

			var captureErr error
			booth := photobooth.New(photobooth.Config{
				Source:   frameSource(stringSetting(cmd, "frame", envFrame)),
				Stickers: stickerFS(stringSetting(cmd, "stickers", envStickers)),
				Logger:   slog.Default(),
				Debug:    boolSetting(cmd, "debug", envDebug),
				OnError:  func(err error) { captureErr = err },
			})

			start := time.Now()
			if err := photobooth.RunScript(cmd.Context(), booth, script, step); err != nil {
				return err
			}
			if captureErr != nil {
				return captureErr
			}

			out := stringSetting(cmd, "output", envOutput)
			for _, e := range script.Exports() {
				path, err := photobooth.WriteExport(out, e.Label, e.Result)
				if err != nil {
					return err
				}
				slog.Info("export written", "path", path, "complete", e.Result.Complete, "bytes", len(e.Result.PNG))
			}
			slog.Info("script finished", "exports", len(script.Exports()), "elapsed", time.Since(start))
			return nil
		},
	}

	cmd.Flags().String("script", "", "Composition script (YAML or JSON)")
	cmd.Flags().StringP("stickers", "s", "stickers", "Directory of sticker images")
	cmd.Flags().StringP("output", "o", ".", "Directory exports are written to")
	cmd.Flags().StringP("frame", "f", "", "Still image used as the camera feed")
	cmd.Flags().Duration("step", 100*time.Millisecond, "Simulated time per update")
	_ = cmd.MarkFlagRequired("script")

	return cmd
}
