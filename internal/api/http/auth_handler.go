package http

import (
	"net/http"
	"time"

	"vehicle-rental-backend/internal/logger"
	"vehicle-rental-backend/internal/metrics"
	"vehicle-rental-backend/internal/security"
)

// AuthHandler serves session endpoints.
type AuthHandler struct {
	revocations security.RevocationRegistry
	now         func() time.Time
}

func NewAuthHandler(revocations security.RevocationRegistry) *AuthHandler {
	return &AuthHandler{revocations: revocations, now: time.Now}
}

// Logout revokes the caller's bearer token for the rest of its lifetime.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, ok := ClaimsFromContext(ctx)
	token := bearerTokenFromContext(ctx)
	if !ok || token == "" {
		writeMessage(w, http.StatusForbidden, "Token required.")
		return
	}

	if err := h.revocations.Revoke(ctx, token, claims.Remaining(h.now())); err != nil {
		logger.FromContext(ctx).Error("Failed to revoke token", "userID", claims.UserID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Unable to log out.")
		return
	}
	metrics.RevokedTokens.Inc()

	logger.FromContext(ctx).Info("User logged out", "userID", claims.UserID)
	writeMessage(w, http.StatusOK, "Logged out successfully.")
}
