package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-rental-backend/internal/config"
	"vehicle-rental-backend/internal/jobs"
)

func TestNewScheduler(t *testing.T) {
	t.Run("Registers jobs", func(t *testing.T) {
		cfg := &config.Config{Scheduler: config.SchedulerConfig{ExpireStaleOrders: "0 15 * * * *"}}
		s, err := NewScheduler(jobs.NewJobRunner(&jobs.Services{}, cfg))
		require.NoError(t, err)
		assert.Equal(t, 1, s.Entries())

		s.Start()
		s.Stop()
	})

	t.Run("Rejects bad schedule", func(t *testing.T) {
		cfg := &config.Config{Scheduler: config.SchedulerConfig{ExpireStaleOrders: "every hour"}}
		_, err := NewScheduler(jobs.NewJobRunner(&jobs.Services{}, cfg))
		assert.Error(t, err)
	})
}
