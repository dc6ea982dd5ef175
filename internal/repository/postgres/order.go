package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"vehicle-rental-backend/internal/domain"
	"vehicle-rental-backend/internal/logger"
	"vehicle-rental-backend/internal/repository"
)

const orderColumns = `order_id, user_id, vehicle_id, rent_start_date, rent_end_date,
		       COALESCE(rental_days, 0), COALESCE(terms, false), license_image,
		       COALESCE(grand_total, 0), status, COALESCE(paid_status, 'unpaid'),
		       COALESCE(delivered_status, 'not_delivered'), COALESCE(payment_method, ''),
		       transaction_uuid, created_at, updated_at`

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	o := &domain.Order{}
	err := row.Scan(
		&o.ID, &o.UserID, &o.VehicleID, &o.RentStartDate, &o.RentEndDate,
		&o.RentalDays, &o.Terms, &o.LicenseImage,
		&o.GrandTotal, &o.Status, &o.PaidStatus,
		&o.DeliveredStatus, &o.PaymentMethod,
		&o.TransactionUUID, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	logger.EnterMethod("orderRepository.GetByID", "orderID", id)

	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1`
	o, err := scanOrder(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = repository.ErrNotFound
		}
		logger.ExitMethodWithError("orderRepository.GetByID", err, "orderID", id)
		return nil, err
	}

	logger.ExitMethod("orderRepository.GetByID", "orderID", id, "status", o.Status)
	return o, nil
}

func (r *orderRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Order, error) {
	logger.EnterMethod("orderRepository.GetByIDForUpdate", "orderID", id)

	tx, ok := txFromContext(ctx)
	if !ok {
		logger.ExitMethodWithError("orderRepository.GetByIDForUpdate", repository.ErrNoTransaction, "orderID", id)
		return nil, repository.ErrNoTransaction
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1 FOR UPDATE`
	o, err := scanOrder(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = repository.ErrNotFound
		}
		logger.ExitMethodWithError("orderRepository.GetByIDForUpdate", err, "orderID", id)
		return nil, err
	}

	logger.ExitMethod("orderRepository.GetByIDForUpdate", "orderID", id, "status", o.Status)
	return o, nil
}

func (r *orderRepository) ListOverlapping(ctx context.Context, vehicleID int32, requested domain.Interval, statuses []domain.OrderStatus) ([]domain.Order, error) {
	logger.EnterMethod("orderRepository.ListOverlapping", "vehicleID", vehicleID,
		"start", requested.Start.Format(domain.DateLayout), "end", requested.End.Format(domain.DateLayout))

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE vehicle_id = $1
		  AND status = ANY($2)
		  AND rent_start_date IS NOT NULL
		  AND rent_end_date IS NOT NULL
		  AND (
		        (rent_start_date BETWEEN $3::date AND $4::date)
		     OR (rent_end_date BETWEEN $3::date AND $4::date)
		     OR ($3::date BETWEEN rent_start_date AND rent_end_date)
		     OR ($4::date BETWEEN rent_start_date AND rent_end_date)
		  )
		ORDER BY rent_start_date
	`

	statusStrs := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrs[i] = string(s)
	}

	logger.DatabaseCall("ListOverlapping", "SELECT orders overlapping interval", "vehicleID", vehicleID)
	rows, err := conn(ctx, r.db).QueryContext(ctx, query,
		vehicleID, pq.Array(statusStrs),
		requested.Start.Format(domain.DateLayout), requested.End.Format(domain.DateLayout),
	)
	if err != nil {
		logger.ExitMethodWithError("orderRepository.ListOverlapping", err, "vehicleID", vehicleID)
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			logger.ExitMethodWithError("orderRepository.ListOverlapping", err, "vehicleID", vehicleID)
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		logger.ExitMethodWithError("orderRepository.ListOverlapping", err, "vehicleID", vehicleID)
		return nil, err
	}

	logger.ExitMethod("orderRepository.ListOverlapping", "vehicleID", vehicleID, "count", len(orders))
	return orders, nil
}

func (r *orderRepository) UpdateRentalDetails(ctx context.Context, o *domain.Order) error {
	logger.EnterMethod("orderRepository.UpdateRentalDetails", "orderID", o.ID)

	query := `
		UPDATE orders SET
			rent_start_date = $1,
			rent_end_date = $2,
			terms = $3,
			license_image = $4,
			status = $5,
			rental_days = $6,
			grand_total = $7,
			updated_at = $8
		WHERE order_id = $9
	`

	now := time.Now()
	result, err := conn(ctx, r.db).ExecContext(ctx, query,
		o.RentStartDate.Format(domain.DateLayout), o.RentEndDate.Format(domain.DateLayout),
		o.Terms, o.LicenseImage, o.Status, o.RentalDays, o.GrandTotal, now, o.ID,
	)
	if err := checkAffected(result, err); err != nil {
		logger.DatabaseResult("UpdateRentalDetails", 0, err, "orderID", o.ID)
		logger.ExitMethodWithError("orderRepository.UpdateRentalDetails", err, "orderID", o.ID)
		return err
	}

	o.UpdatedAt = now
	logger.ExitMethod("orderRepository.UpdateRentalDetails", "orderID", o.ID)
	return nil
}

func (r *orderRepository) UpdateSettlement(ctx context.Context, o *domain.Order) error {
	logger.EnterMethod("orderRepository.UpdateSettlement", "orderID", o.ID)

	query := `
		UPDATE orders SET
			status = $1,
			paid_status = $2,
			delivered_status = $3,
			transaction_uuid = $4,
			payment_method = $5,
			updated_at = $6
		WHERE order_id = $7
	`

	now := time.Now()
	result, err := conn(ctx, r.db).ExecContext(ctx, query,
		o.Status, o.PaidStatus, o.DeliveredStatus, o.TransactionUUID, o.PaymentMethod, now, o.ID,
	)
	if err := checkAffected(result, err); err != nil {
		logger.ExitMethodWithError("orderRepository.UpdateSettlement", err, "orderID", o.ID)
		return err
	}

	o.UpdatedAt = now
	logger.ExitMethod("orderRepository.UpdateSettlement", "orderID", o.ID)
	return nil
}

// ExpireStale marks drafts created before draftCreatedBefore, and unpaid
// bookings whose rental should already have started, as expired.
func (r *orderRepository) ExpireStale(ctx context.Context, draftCreatedBefore, pendingStartBefore time.Time) ([]int32, error) {
	logger.EnterMethod("orderRepository.ExpireStale", "draftCreatedBefore", draftCreatedBefore, "pendingStartBefore", pendingStartBefore)

	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE (status = $2 AND created_at < $3)
		   OR (status = $4 AND rent_start_date < $5::date)
		RETURNING order_id
	`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query,
		domain.OrderStatusExpired,
		domain.OrderStatusDraft, draftCreatedBefore,
		domain.OrderStatusPaymentPending, pendingStartBefore.Format(domain.DateLayout),
	)
	if err != nil {
		logger.ExitMethodWithError("orderRepository.ExpireStale", err)
		return nil, err
	}
	defer rows.Close()

	ids := []int32{}
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			logger.ExitMethodWithError("orderRepository.ExpireStale", err)
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		logger.ExitMethodWithError("orderRepository.ExpireStale", err)
		return nil, err
	}

	logger.ExitMethod("orderRepository.ExpireStale", "count", len(ids))
	return ids, nil
}

func checkAffected(result sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
