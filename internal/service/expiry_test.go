package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vehicle-rental-backend/internal/service"
)

func TestExpiryService_ExpireStaleOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		tx := &fakeTransactor{}
		orderRepo := new(MockOrderRepo)
		svc := service.NewExpiryService(tx, orderRepo, clock)

		draftCutoff := fixedNow.Add(-24 * time.Hour)
		today := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
		orderRepo.On("ExpireStale", mock.Anything, draftCutoff, today).Return([]int32{4, 9}, nil)

		ids, err := svc.ExpireStaleOrders(ctx, 24*time.Hour)
		require.NoError(t, err)
		assert.Equal(t, []int32{4, 9}, ids)
		assert.Equal(t, 1, tx.commits)
	})

	t.Run("Failure", func(t *testing.T) {
		tx := &fakeTransactor{}
		orderRepo := new(MockOrderRepo)
		svc := service.NewExpiryService(tx, orderRepo, clock)

		orderRepo.On("ExpireStale", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

		ids, err := svc.ExpireStaleOrders(ctx, time.Hour)
		assert.Error(t, err)
		assert.Nil(t, ids)
		assert.Equal(t, 1, tx.rollbacks)
	})
}
