package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/boardsync/internal/api/middleware"
	"github.com/Rrens/boardsync/internal/repository/redis"
	"github.com/Rrens/boardsync/internal/security"
)

func echoUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	w.Write([]byte(userID))
}

func TestAuthenticate(t *testing.T) {
	manager := security.NewJWTManager("test-secret", time.Minute, time.Hour)
	mw := middleware.NewAuthMiddleware(manager)
	h := mw.Authenticate(http.HandlerFunc(echoUser))

	access, err := manager.GenerateAccessToken("alice", "alice@example.com")
	require.NoError(t, err)
	refresh, err := manager.GenerateRefreshToken("alice")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer " + access, http.StatusOK},
		{"lowercase scheme", "bearer " + access, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + access, http.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "alice", rec.Body.String())
			}
		})
	}
}

type stubLimiter struct {
	decision redis.Decision
	err      error
	keys     []string
}

func (s *stubLimiter) Allow(ctx context.Context, key string) (redis.Decision, error) {
	s.keys = append(s.keys, key)
	return s.decision, s.err
}

func TestRateLimit(t *testing.T) {
	reset := time.Unix(1700000060, 0)

	serve := func(limiter *stubLimiter, userID string) *httptest.ResponseRecorder {
		h := middleware.NewRateLimitMiddleware(limiter).Limit(http.HandlerFunc(echoUser))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if userID != "" {
			req = req.WithContext(middleware.WithUser(req.Context(), userID, ""))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("allowed", func(t *testing.T) {
		limiter := &stubLimiter{decision: redis.Decision{Allowed: true, Limit: 10, Remaining: 9, ResetAt: reset}}
		rec := serve(limiter, "alice")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "10", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "9", rec.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, "1700000060", rec.Header().Get("X-RateLimit-Reset"))
		assert.Equal(t, []string{"alice"}, limiter.keys)
	})

	t.Run("exceeded", func(t *testing.T) {
		limiter := &stubLimiter{decision: redis.Decision{Allowed: false, Limit: 10, ResetAt: reset}}
		rec := serve(limiter, "alice")

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("limiter down fails open", func(t *testing.T) {
		rec := serve(&stubLimiter{err: errors.New("connection refused")}, "alice")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("no user", func(t *testing.T) {
		rec := serve(&stubLimiter{}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestLogger(t *testing.T) {
	h := middleware.Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
