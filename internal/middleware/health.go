package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthStatus struct {
	Status      string    `json:"status"`
	Database    string    `json:"database"`
	LastChecked time.Time `json:"last_checked"`
	Uptime      string    `json:"uptime"`
	Version     string    `json:"version"`
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthChecker answers /health, caching the response for cacheDuration so
// probes do not hit the database on every call.
type HealthChecker struct {
	mu               sync.Mutex
	db               Pinger
	version          string
	startTime        time.Time
	lastResponse     []byte
	lastStatusCode   int
	lastResponseTime time.Time
	cacheDuration    time.Duration
}

func NewHealthChecker(db Pinger, version string) *HealthChecker {
	return &HealthChecker{
		db:            db,
		version:       version,
		startTime:     time.Now(),
		cacheDuration: 5 * time.Second,
	}
}

func (h *HealthChecker) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.mu.Lock()
		defer h.mu.Unlock()

		if h.lastResponse != nil && time.Since(h.lastResponseTime) < h.cacheDuration {
			c.Data(h.lastStatusCode, "application/json", h.lastResponse)
			return
		}

		status := HealthStatus{
			Status:      "ok",
			Database:    "ok",
			LastChecked: time.Now(),
			Uptime:      time.Since(h.startTime).Round(time.Second).String(),
			Version:     h.version,
		}
		code := http.StatusOK

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			status.Status = "degraded"
			status.Database = "unreachable"
			code = http.StatusServiceUnavailable
		}

		response, _ := json.Marshal(status)
		h.lastResponse = response
		h.lastStatusCode = code
		h.lastResponseTime = time.Now()

		c.Data(code, "application/json", response)
	}
}
