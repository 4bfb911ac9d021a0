package service

import (
	"context"
	"log/slog"

	"kptshop/internal/domain/services"
)

// destroyHosted removes a hosted image without failing the caller. Record
// deletion proceeds either way, so a failure here leaves an orphaned asset
// on the media host; it is logged with enough context to clean up by hand.
func destroyHosted(ctx context.Context, media services.MediaHost, logger *slog.Logger, publicID string, attrs ...any) {
	if publicID == "" {
		return
	}

	attrs = append(attrs, "public_id", publicID)
	if err := media.Destroy(ctx, publicID); err != nil {
		logger.Warn("hosted image delete failed, continuing", append(attrs, "error", err)...)
		return
	}
	logger.Debug("hosted image deleted", attrs...)
}
