package cli

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// Environment variables consulted when the matching flag is not given. They
// may also be set in a .env file in the working directory.
const (
	envStickers = "PHOTOBOOTH_STICKERS"
	envOutput   = "PHOTOBOOTH_OUTPUT"
	envFrame    = "PHOTOBOOTH_FRAME"
	envPhotos   = "PHOTOBOOTH_PHOTOS"
	envDebug    = "PHOTOBOOTH_DEBUG"
)

// stringSetting returns the flag value if it was set on the command line,
// then the environment variable, then the flag default.
func stringSetting(cmd *cobra.Command, flag, env string) string {
	f := cmd.Flags().Lookup(flag)
	if f != nil && f.Changed {
		return f.Value.String()
	}
	if v, ok := os.LookupEnv(env); ok && v != "" {
		return v
	}
	if f != nil {
		return f.DefValue
	}
	return ""
}

// intSetting is stringSetting for integer flags. Unparseable environment
// values fall back to the flag.
func intSetting(cmd *cobra.Command, flag, env string) int {
	raw := stringSetting(cmd, flag, env)
	n, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("ignoring invalid setting", "flag", flag, "env", env, "value", raw)
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			return 0
		}
		n, _ = strconv.Atoi(f.DefValue)
	}
	return n
}

// boolSetting is stringSetting for boolean flags.
func boolSetting(cmd *cobra.Command, flag, env string) bool {
	v, err := strconv.ParseBool(stringSetting(cmd, flag, env))
	return err == nil && v
}

// setupLogging installs the default slog logger.
func setupLogging(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
