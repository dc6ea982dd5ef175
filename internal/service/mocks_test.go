package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"vehicle-rental-backend/internal/domain"
)

// fakeTransactor runs fn inline and records how each unit of work ended.
type fakeTransactor struct {
	calls     int
	commits   int
	rollbacks int
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if err := fn(ctx); err != nil {
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

// MockOrderRepo
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListOverlapping(ctx context.Context, vehicleID int32, requested domain.Interval, statuses []domain.OrderStatus) ([]domain.Order, error) {
	args := m.Called(ctx, vehicleID, requested, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) UpdateRentalDetails(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockOrderRepo) UpdateSettlement(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockOrderRepo) ExpireStale(ctx context.Context, draftCreatedBefore, pendingStartBefore time.Time) ([]int32, error) {
	args := m.Called(ctx, draftCreatedBefore, pendingStartBefore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int32), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) GetStatus(ctx context.Context, vehicleID int32) (*domain.VehicleStatus, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleStatus), args.Error(1)
}
func (m *MockVehicleRepo) SetAvailability(ctx context.Context, vehicleID int32, available bool) error {
	args := m.Called(ctx, vehicleID, available)
	return args.Error(0)
}
func (m *MockVehicleRepo) LockForBooking(ctx context.Context, vehicleID int32) error {
	args := m.Called(ctx, vehicleID)
	return args.Error(0)
}
