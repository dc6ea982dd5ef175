package jobs

import (
	"context"
	"time"

	"vehicle-rental-backend/internal/logger"
)

const expireTimeout = 2 * time.Minute

// ExpireStaleOrders expires abandoned drafts and unpaid bookings whose start
// date has passed, releasing the dates they held.
func (jr *JobRunner) ExpireStaleOrders() {
	jr.runWithRecovery("ExpireStaleOrders", func() {
		ctx, cancel := context.WithTimeout(context.Background(), expireTimeout)
		defer cancel()

		ids, err := jr.services.Expiry.ExpireStaleOrders(ctx, jr.config.DraftTTL())
		if err != nil {
			logger.Error("Failed to expire stale orders", "error", err)
			return
		}

		logger.Info("Expired stale orders", "count", len(ids), "order_ids", ids)
	})
}
