package service

import (
	"context"

	"vehicle-rental-backend/internal/domain"
	"vehicle-rental-backend/internal/logger"
	"vehicle-rental-backend/internal/repository"
)

type conflictChecker struct {
	orderRepo repository.OrderRepository
}

func NewConflictChecker(orderRepo repository.OrderRepository) ConflictChecker {
	return &conflictChecker{orderRepo: orderRepo}
}

// HasConflict reports whether any order still holding the vehicle overlaps the
// requested interval. Canceled and expired orders never conflict.
func (c *conflictChecker) HasConflict(ctx context.Context, vehicleID int32, requested domain.Interval) (bool, []domain.Order, error) {
	candidates, err := c.orderRepo.ListOverlapping(ctx, vehicleID, requested, domain.BlockingStatuses())
	if err != nil {
		return false, nil, domain.NewTransientStoreError("list overlapping orders", err)
	}

	var conflicts []domain.Order
	for _, o := range candidates {
		if !o.Status.BlocksBooking() {
			continue
		}
		held, ok := o.Interval()
		if !ok {
			continue
		}
		if domain.Overlaps(held, requested) {
			conflicts = append(conflicts, o)
		}
	}

	if len(conflicts) > 0 {
		logger.Debug("Booking conflict detected", "vehicle_id", vehicleID, "conflicts", len(conflicts))
	}
	return len(conflicts) > 0, conflicts, nil
}
