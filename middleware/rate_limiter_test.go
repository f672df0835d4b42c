package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimit_BurstThenReject(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterStore_EvictsIdle(t *testing.T) {
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	s := newRateLimiterStore(10)
	s.now = func() time.Time { return now }

	s.getLimiter("a")
	now = now.Add(5 * time.Minute)
	s.getLimiter("b")
	assert.Equal(t, 2, s.size())

	now = now.Add(6 * time.Minute)
	s.getLimiter("b")
	assert.Equal(t, 1, s.size(), "a was idle past the TTL")

	now = now.Add(limiterIdleTTL)
	s.getLimiter("c")
	assert.Equal(t, 1, s.size())
}
