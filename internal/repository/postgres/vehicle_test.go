package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-rental-backend/internal/repository"
)

func TestVehicleRepository_GetStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVehicleRepository(db)
	ctx := context.Background()

	t.Run("With discount", func(t *testing.T) {
		mock.ExpectQuery("SELECT vehicle_id, final_price, discounted_price, availability FROM vehicle_status").
			WithArgs(int32(3)).
			WillReturnRows(sqlmock.NewRows([]string{"vehicle_id", "final_price", "discounted_price", "availability"}).
				AddRow(3, 50.0, 40.0, true))

		vs, err := repo.GetStatus(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, 50.0, vs.FinalPrice)
		require.NotNil(t, vs.DiscountedPrice)
		assert.Equal(t, 40.0, *vs.DiscountedPrice)
	})

	t.Run("Without discount", func(t *testing.T) {
		mock.ExpectQuery("SELECT vehicle_id, final_price, discounted_price, availability FROM vehicle_status").
			WithArgs(int32(4)).
			WillReturnRows(sqlmock.NewRows([]string{"vehicle_id", "final_price", "discounted_price", "availability"}).
				AddRow(4, 100.0, nil, false))

		vs, err := repo.GetStatus(ctx, 4)
		require.NoError(t, err)
		assert.Nil(t, vs.DiscountedPrice)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM vehicle_status").
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"vehicle_id", "final_price", "discounted_price", "availability"}))

		_, err := repo.GetStatus(ctx, 5)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVehicleRepository_SetAvailability(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVehicleRepository(db)

	mock.ExpectExec("UPDATE vehicle_status SET availability = \\$1 WHERE vehicle_id = \\$2").
		WithArgs(true, int32(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.SetAvailability(context.Background(), 3, true))

	mock.ExpectExec("UPDATE vehicle_status").
		WithArgs(true, int32(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.SetAvailability(context.Background(), 99, true), repository.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVehicleRepository_LockForBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVehicleRepository(db)

	assert.ErrorIs(t, repo.LockForBooking(context.Background(), 3), repository.ErrNoTransaction)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock\\(\\$1, \\$2\\)").
		WithArgs(vehicleLockClass, int32(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err = NewTxManager(db, 0).WithinTransaction(context.Background(), func(ctx context.Context) error {
		return repo.LockForBooking(ctx, 3)
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
