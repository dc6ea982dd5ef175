package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxManager_WithinTransaction(t *testing.T) {
	t.Run("Commit", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE vehicle_status").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		m := NewTxManager(db, time.Second)
		err = m.WithinTransaction(context.Background(), func(ctx context.Context) error {
			_, ok := txFromContext(ctx)
			assert.True(t, ok)
			_, err := conn(ctx, db).ExecContext(ctx, "UPDATE vehicle_status SET availability = true")
			return err
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback on error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		m := NewTxManager(db, 0)
		err = m.WithinTransaction(context.Background(), func(ctx context.Context) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback on panic", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		m := NewTxManager(db, 0)
		assert.Panics(t, func() {
			_ = m.WithinTransaction(context.Background(), func(ctx context.Context) error {
				panic("unexpected")
			})
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Nested call joins outer transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		m := NewTxManager(db, 0)
		err = m.WithinTransaction(context.Background(), func(ctx context.Context) error {
			outer, _ := txFromContext(ctx)
			return m.WithinTransaction(ctx, func(ctx context.Context) error {
				inner, _ := txFromContext(ctx)
				assert.Same(t, outer, inner)
				return nil
			})
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Begin failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

		m := NewTxManager(db, 0)
		called := false
		err = m.WithinTransaction(context.Background(), func(ctx context.Context) error {
			called = true
			return nil
		})
		assert.Error(t, err)
		assert.False(t, called)
	})

	t.Run("Timeout rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		m := NewTxManager(db, 10*time.Millisecond)
		err = m.WithinTransaction(context.Background(), func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Eventually(t, func() bool {
			return mock.ExpectationsWereMet() == nil
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("Commit after deadline fails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		m := NewTxManager(db, 10*time.Millisecond)
		err = m.WithinTransaction(context.Background(), func(ctx context.Context) error {
			time.Sleep(30 * time.Millisecond)
			return nil
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), "commit transaction")
		assert.Eventually(t, func() bool {
			return mock.ExpectationsWereMet() == nil
		}, time.Second, 5*time.Millisecond)
	})
}
