package postgres

import (
	"context"
	"database/sql"
	"errors"

	"vehicle-rental-backend/internal/domain"
	"vehicle-rental-backend/internal/logger"
	"vehicle-rental-backend/internal/repository"
)

// vehicleLockClass namespaces vehicle booking locks among advisory locks.
const vehicleLockClass = 7301

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) GetStatus(ctx context.Context, vehicleID int32) (*domain.VehicleStatus, error) {
	logger.EnterMethod("vehicleRepository.GetStatus", "vehicleID", vehicleID)

	query := `SELECT vehicle_id, final_price, discounted_price, availability FROM vehicle_status WHERE vehicle_id = $1`

	vs := &domain.VehicleStatus{}
	err := conn(ctx, r.db).QueryRowContext(ctx, query, vehicleID).Scan(
		&vs.VehicleID, &vs.FinalPrice, &vs.DiscountedPrice, &vs.Availability,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = repository.ErrNotFound
		}
		logger.ExitMethodWithError("vehicleRepository.GetStatus", err, "vehicleID", vehicleID)
		return nil, err
	}

	logger.ExitMethod("vehicleRepository.GetStatus", "vehicleID", vehicleID)
	return vs, nil
}

func (r *vehicleRepository) SetAvailability(ctx context.Context, vehicleID int32, available bool) error {
	logger.EnterMethod("vehicleRepository.SetAvailability", "vehicleID", vehicleID, "available", available)

	query := `UPDATE vehicle_status SET availability = $1 WHERE vehicle_id = $2`
	result, err := conn(ctx, r.db).ExecContext(ctx, query, available, vehicleID)
	if err := checkAffected(result, err); err != nil {
		logger.ExitMethodWithError("vehicleRepository.SetAvailability", err, "vehicleID", vehicleID)
		return err
	}

	logger.ExitMethod("vehicleRepository.SetAvailability", "vehicleID", vehicleID)
	return nil
}

// LockForBooking takes a transaction-scoped advisory lock on the vehicle. It
// does not depend on any row existing, so it also guards against bookings
// inserted concurrently with the conflict check.
func (r *vehicleRepository) LockForBooking(ctx context.Context, vehicleID int32) error {
	logger.EnterMethod("vehicleRepository.LockForBooking", "vehicleID", vehicleID)

	tx, ok := txFromContext(ctx)
	if !ok {
		logger.ExitMethodWithError("vehicleRepository.LockForBooking", repository.ErrNoTransaction, "vehicleID", vehicleID)
		return repository.ErrNoTransaction
	}

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, vehicleLockClass, vehicleID); err != nil {
		logger.ExitMethodWithError("vehicleRepository.LockForBooking", err, "vehicleID", vehicleID)
		return err
	}

	logger.ExitMethod("vehicleRepository.LockForBooking", "vehicleID", vehicleID)
	return nil
}
