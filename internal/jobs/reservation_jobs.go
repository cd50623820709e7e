package jobs

import (
	"context"
	"fmt"
	"time"

	"homestay-backend/internal/logger"
	"homestay-backend/internal/service"
	"homestay-backend/internal/storage"
)

// ExpireStaleRequests rejects pending requests whose stay has already begun.
// Each one goes through the regular reject transition so it gets a Response.
func (jr *JobRunner) ExpireStaleRequests() {
	jr.runWithRecovery("ExpireStaleRequests", jr.expireStaleRequests)
}

func (jr *JobRunner) expireStaleRequests(ctx context.Context) (int, error) {
	today := jr.now().UTC().Format("2006-01-02")
	stale, err := jr.repos.Requests.ListStalePending(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale requests: %w", err)
	}

	expired := 0
	for _, req := range stale {
		if _, err := jr.reservations.RejectReservationRequest(ctx, service.System, req.ID); err != nil {
			// Decided concurrently or already gone; the rest can still be expired.
			logger.Warn("Failed to expire request", "requestID", req.ID, "error", err)
			continue
		}
		expired++
	}
	return expired, nil
}

// orphanGracePeriod keeps files of uploads whose transaction may still be open.
const orphanGracePeriod = time.Hour

// PurgeOrphanImages deletes apartment image files that no Images row references.
func (jr *JobRunner) PurgeOrphanImages() {
	jr.runWithRecovery("PurgeOrphanImages", jr.purgeOrphanImages)
}

func (jr *JobRunner) purgeOrphanImages(ctx context.Context) (int, error) {
	stored, err := jr.images.List(ctx, storage.PrefixApartments, jr.now().Add(-orphanGracePeriod))
	if err != nil {
		return 0, err
	}
	known, err := jr.repos.Images.ListKeys(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list image keys: %w", err)
	}

	referenced := make(map[string]struct{}, len(known))
	for _, key := range known {
		referenced[key] = struct{}{}
	}

	purged := 0
	for _, key := range stored {
		if _, ok := referenced[key]; ok {
			continue
		}
		if err := jr.images.Delete(ctx, key); err != nil {
			logger.Warn("Failed to purge orphan image", "key", key, "error", err)
			continue
		}
		purged++
	}
	return purged, nil
}
