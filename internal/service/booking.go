package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vehicle-rental-backend/internal/domain"
	"vehicle-rental-backend/internal/logger"
	"vehicle-rental-backend/internal/metrics"
	"vehicle-rental-backend/internal/repository"
	"vehicle-rental-backend/internal/utils"
)

type bookingService struct {
	tx          repository.Transactor
	orderRepo   repository.OrderRepository
	vehicleRepo repository.VehicleRepository
	conflicts   ConflictChecker
	now         func() time.Time
}

// NewBookingService wires the booking engine. now defaults to time.Now.
func NewBookingService(
	tx repository.Transactor,
	orderRepo repository.OrderRepository,
	vehicleRepo repository.VehicleRepository,
	now func() time.Time,
) BookingService {
	if now == nil {
		now = time.Now
	}
	return &bookingService{
		tx:          tx,
		orderRepo:   orderRepo,
		vehicleRepo: vehicleRepo,
		conflicts:   NewConflictChecker(orderRepo),
		now:         now,
	}
}

func (s *bookingService) FinalizeBooking(ctx context.Context, req FinalizeBookingRequest) (*domain.Order, error) {
	logger.EnterMethod("bookingService.FinalizeBooking", "orderID", req.OrderID, "vehicleID", req.VehicleID, "userID", req.UserID)

	order, err := s.finalizeBooking(ctx, req)
	metrics.BookingFinalizations.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		logger.ExitMethodWithError("bookingService.FinalizeBooking", err, "orderID", req.OrderID)
		return nil, err
	}

	logger.ExitMethod("bookingService.FinalizeBooking", "orderID", order.ID, "days", order.RentalDays, "total", order.GrandTotal)
	return order, nil
}

func (s *bookingService) finalizeBooking(ctx context.Context, req FinalizeBookingRequest) (*domain.Order, error) {
	interval, days, err := s.validateRentalPeriod(req)
	if err != nil {
		return nil, err
	}

	var finalized *domain.Order
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.vehicleRepo.LockForBooking(ctx, req.VehicleID); err != nil {
			return domain.NewTransientStoreError("lock vehicle for booking", err)
		}

		_, conflicts, err := s.conflicts.HasConflict(ctx, req.VehicleID, interval)
		if err != nil {
			return err
		}
		if conflicts = excludeOrder(conflicts, req.OrderID); len(conflicts) > 0 {
			return domain.NewConflictError(intervalsOf(conflicts))
		}

		order, err := s.orderRepo.GetByIDForUpdate(ctx, req.OrderID)
		if err != nil {
			return lookupError("order not found", "load order", err)
		}
		if order.UserID != req.UserID {
			return domain.NewNotFoundError("order not found")
		}
		if order.VehicleID != req.VehicleID {
			return domain.NewValidationError(fmt.Sprintf("order %d is not for vehicle %d", order.ID, req.VehicleID))
		}
		if order.IsFinalized() {
			return domain.NewAlreadyFinalizedError(order.ID)
		}

		pricing, err := s.vehicleRepo.GetStatus(ctx, req.VehicleID)
		if err != nil {
			return lookupError("vehicle pricing details not found", "load vehicle pricing", err)
		}

		total, err := utils.ComputeTotal(pricing.FinalPrice, pricing.DiscountedPrice, days)
		if err != nil {
			return domain.NewValidationError(err.Error())
		}

		if err := order.Finalize(interval, req.TermsAccepted, req.LicenseRef, days, total); err != nil {
			return err
		}
		if err := s.orderRepo.UpdateRentalDetails(ctx, order); err != nil {
			return domain.NewTransientStoreError("update rental details", err)
		}

		finalized = order
		return nil
	})
	if err != nil {
		return nil, asBookingError("finalize booking", err)
	}
	return finalized, nil
}

// validateRentalPeriod runs before any transaction is opened.
func (s *bookingService) validateRentalPeriod(req FinalizeBookingRequest) (domain.Interval, int32, error) {
	if req.Interval.Start.IsZero() || req.Interval.End.IsZero() || req.LicenseRef == "" {
		return domain.Interval{}, 0, domain.NewValidationError("all rental details are required")
	}
	if !req.TermsAccepted {
		return domain.Interval{}, 0, domain.NewValidationError("you must accept the terms and conditions")
	}

	interval := domain.Interval{
		Start: utils.StartOfDay(req.Interval.Start.UTC()),
		End:   utils.StartOfDay(req.Interval.End.UTC()),
	}
	today := utils.StartOfDay(s.now().UTC())
	if interval.Start.Before(today) || interval.End.Before(today) {
		return domain.Interval{}, 0, domain.NewValidationError("rental dates cannot be in the past")
	}

	days := utils.RentalDays(interval.Start, interval.End)
	if days <= 0 {
		return domain.Interval{}, 0, domain.NewValidationError("invalid rental period")
	}
	return interval, days, nil
}

func (s *bookingService) SettleDeferred(ctx context.Context, userID, orderID int32) (*domain.Order, error) {
	logger.EnterMethod("bookingService.SettleDeferred", "orderID", orderID, "userID", userID)

	var settled *domain.Order
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return lookupError("order not found", "load order", err)
		}
		if order.UserID != userID {
			return domain.NewNotFoundError("order not found")
		}

		if err := order.SettleDeferred(); err != nil {
			return err
		}
		if err := s.orderRepo.UpdateSettlement(ctx, order); err != nil {
			return domain.NewTransientStoreError("update order settlement", err)
		}
		if err := s.vehicleRepo.SetAvailability(ctx, order.VehicleID, true); err != nil {
			return lookupError("vehicle status not found", "update vehicle availability", err)
		}

		settled = order
		return nil
	})
	if err != nil {
		err = asBookingError("settle deferred", err)
	}

	metrics.DeferredSettlements.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		logger.ExitMethodWithError("bookingService.SettleDeferred", err, "orderID", orderID)
		return nil, err
	}

	logger.ExitMethod("bookingService.SettleDeferred", "orderID", orderID, "vehicleID", settled.VehicleID)
	return settled, nil
}

func (s *bookingService) GetOrder(ctx context.Context, userID, orderID int32) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, lookupError("order not found", "load order", err)
	}
	if order.UserID != userID {
		return nil, domain.NewNotFoundError("order not found")
	}
	return order, nil
}

// lookupError maps a missing row to NotFoundError and anything else to a
// TransientStoreError.
func lookupError(notFoundMsg, op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewNotFoundError(notFoundMsg)
	}
	return domain.NewTransientStoreError(op, err)
}

// asBookingError wraps begin/commit failures, which carry no kind yet.
func asBookingError(op string, err error) error {
	if domain.KindOf(err) != "" {
		return err
	}
	return domain.NewTransientStoreError(op, err)
}

func excludeOrder(orders []domain.Order, orderID int32) []domain.Order {
	out := orders[:0:0]
	for _, o := range orders {
		if o.ID != orderID {
			out = append(out, o)
		}
	}
	return out
}

func intervalsOf(orders []domain.Order) []domain.Interval {
	intervals := make([]domain.Interval, 0, len(orders))
	for _, o := range orders {
		if iv, ok := o.Interval(); ok {
			intervals = append(intervals, iv)
		}
	}
	return intervals
}
