package service

import (
	"context"
	"time"

	"vehicle-rental-backend/internal/domain"
)

// FinalizeBookingRequest carries the rental terms a user submits for a draft order.
type FinalizeBookingRequest struct {
	OrderID       int32
	UserID        int32
	VehicleID     int32
	Interval      domain.Interval
	TermsAccepted bool
	LicenseRef    string
}

type ConflictChecker interface {
	HasConflict(ctx context.Context, vehicleID int32, requested domain.Interval) (bool, []domain.Order, error)
}

type BookingService interface {
	FinalizeBooking(ctx context.Context, req FinalizeBookingRequest) (*domain.Order, error)
	SettleDeferred(ctx context.Context, userID, orderID int32) (*domain.Order, error)
	GetOrder(ctx context.Context, userID, orderID int32) (*domain.Order, error)
}

type ExpiryService interface {
	// ExpireStaleOrders expires drafts older than draftTTL and unpaid bookings
	// whose start date has passed, returning the affected order ids.
	ExpireStaleOrders(ctx context.Context, draftTTL time.Duration) ([]int32, error)
}
