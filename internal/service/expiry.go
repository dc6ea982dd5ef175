package service

import (
	"context"
	"time"

	"vehicle-rental-backend/internal/logger"
	"vehicle-rental-backend/internal/metrics"
	"vehicle-rental-backend/internal/repository"
	"vehicle-rental-backend/internal/utils"
)

type expiryService struct {
	tx        repository.Transactor
	orderRepo repository.OrderRepository
	now       func() time.Time
}

func NewExpiryService(tx repository.Transactor, orderRepo repository.OrderRepository, now func() time.Time) ExpiryService {
	if now == nil {
		now = time.Now
	}
	return &expiryService{tx: tx, orderRepo: orderRepo, now: now}
}

func (s *expiryService) ExpireStaleOrders(ctx context.Context, draftTTL time.Duration) ([]int32, error) {
	now := s.now().UTC()
	today := utils.StartOfDay(now)

	var ids []int32
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		ids, err = s.orderRepo.ExpireStale(ctx, now.Add(-draftTTL), today)
		return err
	})
	if err != nil {
		logger.Error("Failed to expire stale orders", "error", err)
		return nil, err
	}

	metrics.ExpiredOrders.Add(float64(len(ids)))
	return ids, nil
}
