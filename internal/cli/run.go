package cli

import (
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/photobooth"
	"github.com/phanxgames/photobooth/ebitenbooth"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the photobooth window",
		Long: `Opens the interactive photobooth window.

Without --frame a moving test card stands in for the camera. Drag stickers
from the palette onto the canvas, press F to toggle the frame and S to save.`,
		Example: `  # Four-photo session with stickers from ./stickers
  photobooth run --photos 4 --stickers ./stickers

  # Use a still image as the camera
  photobooth run --frame me.jpg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			stickers := stickerFS(stringSetting(cmd, "stickers", envStickers))
			palette, err := loadPalette(cmd, stickers)
			if err != nil {
				return err
			}
			cfg := photobooth.Config{
				Source:   frameSource(stringSetting(cmd, "frame", envFrame)),
				Stickers: stickers,
				Logger:   slog.Default(),
				Debug:    boolSetting(cmd, "debug", envDebug),
			}
			return ebitenbooth.Run(cfg, ebitenbooth.Options{
				Photos:    intSetting(cmd, "photos", envPhotos),
				ExportDir: stringSetting(cmd, "output", envOutput),
				Palette:   palette,
				Logger:    slog.Default(),
			})
		},
	}

	cmd.Flags().IntP("photos", "n", 0, "Start a session with 2 or 4 photos right away")
	cmd.Flags().StringP("stickers", "s", "stickers", "Directory of sticker images")
	cmd.Flags().StringP("output", "o", ".", "Directory photobooth.png is saved to")
	cmd.Flags().StringP("frame", "f", "", "Still image used as the camera feed")

	return cmd
}

// frameSource opens the camera stand-in. A frame that cannot be loaded is
// reported as an unavailable camera at capture time rather than aborting.
func frameSource(path string) photobooth.FrameSource {
	if path == "" {
		return photobooth.NewPatternSource(2*photobooth.CellWidth, 2*photobooth.CellHeight)
	}
	src, err := photobooth.LoadImageSource(path)
	if err != nil {
		slog.Error("camera unavailable", "frame", path, "err", err)
		return photobooth.FailingSource{Err: err}
	}
	return src
}

// stickerFS returns the sticker directory, or nil if it does not exist.
func stickerFS(dir string) fs.FS {
	if dir == "" {
		return nil
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		slog.Warn("sticker directory not found", "dir", dir)
		return nil
	}
	return os.DirFS(dir)
}

func loadPalette(cmd *cobra.Command, stickers fs.FS) ([]photobooth.PaletteEntry, error) {
	if stickers == nil {
		return nil, nil
	}
	palette, err := photobooth.LoadPalette(cmd.Context(), stickers)
	if err != nil {
		return nil, err
	}
	slog.Info("stickers loaded", "count", len(palette))
	return palette, nil
}
