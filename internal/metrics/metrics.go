package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"vehicle-rental-backend/internal/domain"
)

var (
	BookingFinalizations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rental_booking_finalizations_total",
		Help: "Booking finalization attempts by outcome",
	}, []string{"outcome"})

	DeferredSettlements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rental_deferred_settlements_total",
		Help: "Cash-on-delivery settlement attempts by outcome",
	}, []string{"outcome"})

	ExpiredOrders = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rental_orders_expired_total",
		Help: "Orders moved to expired by the stale order job",
	})

	RevokedTokens = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rental_tokens_revoked_total",
		Help: "Bearer tokens added to the revocation registry",
	})
)

// Outcome labels err for the outcome counters.
func Outcome(err error) string {
	if err == nil {
		return "success"
	}
	if kind := domain.KindOf(err); kind != "" {
		return string(kind)
	}
	return "error"
}
