package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_PerUser(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	h := Auth(limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	call := func(userID string) int {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		req.Header.Set(UserIDHeader, userID)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	alice, bob := uuid.NewString(), uuid.NewString()

	assert.Equal(t, http.StatusOK, call(alice))
	assert.Equal(t, http.StatusOK, call(alice))
	assert.Equal(t, http.StatusTooManyRequests, call(alice))

	assert.Equal(t, http.StatusOK, call(bob))
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(60, 5)
	clock := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }
	limiter.lastSweep = clock

	for i := 0; i < 100; i++ {
		assert.True(t, limiter.allow("user:"+uuid.NewString()))
	}
	assert.Equal(t, 100, limiter.size())

	clock = clock.Add(limiter.idleTTL)
	assert.True(t, limiter.allow("user:fresh"))
	assert.Equal(t, 1, limiter.size())
}

func TestRateLimiter_ActiveClientKeepsItsBudget(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	clock := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }
	limiter.lastSweep = clock

	assert.True(t, limiter.allow("user:alice"))
	assert.False(t, limiter.allow("user:alice"))

	clock = clock.Add(30 * time.Second)
	assert.False(t, limiter.allow("user:alice"))
	assert.Equal(t, 1, limiter.size())
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.7:51234"
	assert.Equal(t, "ip:10.0.0.7", clientKey(req))

	userID := uuid.New()
	req = req.WithContext(WithUserID(req.Context(), userID))
	assert.Equal(t, "user:"+userID.String(), clientKey(req))
}
