package photobooth

import "log/slog"

// debugLog records one render pass at debug level.
func debugLog(log *slog.Logger, stats RenderStats) {
	log.Debug("render",
		"photos", stats.Photos,
		"stickers", stats.Stickers,
		"pending", stats.Pending,
		"frame", stats.Frame,
		"elapsed", stats.Elapsed)
	if stats.Pending > 0 {
		log.Debug("render deferred assets", "pending", stats.Pending)
	}
}
