package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vehicle-rental-backend/internal/security"
	"vehicle-rental-backend/internal/service"
	"vehicle-rental-backend/internal/storage"
)

// Pinger reports whether a backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps collects what the HTTP API needs.
type RouterDeps struct {
	Bookings     service.BookingService
	Documents    storage.DocumentStorage
	TokenManager security.TokenManager
	Revocations  security.RevocationRegistry
	MaxFileSize  int64
	DB           Pinger
}

// NewRouter registers every route. Security levels per route live in
// config.EndpointSecurityConfig.
func NewRouter(deps RouterDeps) http.Handler {
	router := mux.NewRouter()
	router.Use(RecoveryMiddleware, RequestIDMiddleware, LoggingMiddleware)
	router.Use(NewAuthMiddleware(deps.TokenManager, deps.Revocations).Handler)

	router.HandleFunc("/health", healthHandler(deps.DB)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	auth := NewAuthHandler(deps.Revocations)
	api.HandleFunc("/auth/logout", auth.Logout).Methods(http.MethodPost)

	rentals := NewRentalHandler(deps.Bookings, deps.Documents, deps.MaxFileSize)
	api.HandleFunc("/rent/cod/{order_id}", rentals.SettleCOD).Methods(http.MethodPatch)
	api.HandleFunc("/rent/{user_id}/{vehicle_id}/{order_id}", rentals.FinalizeRental).Methods(http.MethodPatch)
	api.HandleFunc("/orders/{order_id}", rentals.GetOrder).Methods(http.MethodGet)

	return router
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				writeMessage(w, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}
		writeMessage(w, http.StatusOK, "OK")
	}
}
