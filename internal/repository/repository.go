package repository

import (
	"context"
	"time"

	"vehicle-rental-backend/internal/domain"
)

// Transactor runs fn inside one database transaction. Repositories called with
// the ctx handed to fn join that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type OrderRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Order, error)
	// GetByIDForUpdate locks the order row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Order, error)
	// ListOverlapping returns orders of the vehicle in one of statuses whose
	// stored interval intersects the requested one.
	ListOverlapping(ctx context.Context, vehicleID int32, requested domain.Interval, statuses []domain.OrderStatus) ([]domain.Order, error)
	UpdateRentalDetails(ctx context.Context, order *domain.Order) error
	UpdateSettlement(ctx context.Context, order *domain.Order) error
	ExpireStale(ctx context.Context, draftCreatedBefore, pendingStartBefore time.Time) ([]int32, error)
}

type VehicleRepository interface {
	GetStatus(ctx context.Context, vehicleID int32) (*domain.VehicleStatus, error)
	SetAvailability(ctx context.Context, vehicleID int32, available bool) error
	// LockForBooking serializes bookings of one vehicle until the surrounding
	// transaction ends.
	LockForBooking(ctx context.Context, vehicleID int32) error
}
