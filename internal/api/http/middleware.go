package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"vehicle-rental-backend/internal/config"
	"vehicle-rental-backend/internal/logger"
	"vehicle-rental-backend/internal/security"
)

const requestIDHeader = "X-Request-ID"

// AuthMiddleware authenticates bearer tokens for routes whose security level
// requires it.
type AuthMiddleware struct {
	tokenManager security.TokenManager
	revocations  security.RevocationRegistry
}

func NewAuthMiddleware(tm security.TokenManager, revocations security.RevocationRegistry) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm, revocations: revocations}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		level := config.GetSecurityLevel(r.Method, routeTemplate(r))

		// Public endpoint - skip auth
		if level == config.SecurityPublic {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := extractToken(r)
		if !ok {
			writeMessage(w, http.StatusForbidden, "Token required.")
			return
		}

		claims, err := m.authenticate(r, level, token)
		if err != nil {
			switch {
			case errors.Is(err, security.ErrRevokedToken):
				writeMessage(w, http.StatusUnauthorized, "Token has been blacklisted.")
			case errors.Is(err, security.ErrExpiredToken):
				writeMessage(w, http.StatusUnauthorized, "Token has expired.")
			case errors.Is(err, security.ErrInvalidToken):
				writeMessage(w, http.StatusUnauthorized, "Invalid token.")
			case errors.Is(err, security.ErrWrongTokenType):
				writeMessage(w, http.StatusForbidden, "Access token required.")
			default:
				logger.FromContext(r.Context()).Error("Revocation lookup failed", "error", err)
				writeMessage(w, http.StatusInternalServerError, "Unable to verify token.")
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), claims, token)))
	})
}

// authenticate checks revocation before the signature so a logged-out token
// never reaches verification.
func (m *AuthMiddleware) authenticate(r *http.Request, level config.SecurityLevel, token string) (*security.UserClaims, error) {
	revoked, err := m.revocations.IsRevoked(r.Context(), token)
	if err != nil {
		return nil, fmt.Errorf("revocation lookup: %w", err)
	}
	if revoked {
		return nil, security.ErrRevokedToken
	}

	claims, err := m.tokenManager.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if level == config.SecurityAccess && claims.Type != security.TokenTypeAccess {
		return nil, security.ErrWrongTokenType
	}
	return claims, nil
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return r.URL.Path
	}
	tmpl, err := route.GetPathTemplate()
	if err != nil {
		return r.URL.Path
	}
	return tmpl
}

func extractToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	token := header
	// Remove Bearer prefix if present
	if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
		token = token[7:]
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequestIDMiddleware tags each request with an id, reusing the caller's
// X-Request-ID when present.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware writes one access log line per request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.FromContext(r.Context()).Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// RecoveryMiddleware turns a handler panic into a 500.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.FromContext(r.Context()).Error("Handler panicked", "panic", fmt.Sprint(rec), "path", r.URL.Path)
				writeMessage(w, http.StatusInternalServerError, "Internal server error.")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
