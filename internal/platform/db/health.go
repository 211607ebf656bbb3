package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

const (
	pingTimeout = 5 * time.Second
	// saturated marks the pool degraded once this share of MaxConns is checked out.
	saturated = 0.9
)

// PoolStats is the pool snapshot reported by /health/db.
type PoolStats struct {
	Total       int32   `json:"total_conns"`
	Idle        int32   `json:"idle_conns"`
	Acquired    int32   `json:"acquired_conns"`
	Max         int32   `json:"max_conns"`
	Acquires    int64   `json:"acquire_count"`
	WaitTime    string  `json:"acquire_wait"`
	Utilization float64 `json:"utilization"`
}

func statsOf(pool *pgxpool.Pool) PoolStats {
	st := pool.Stat()
	ps := PoolStats{
		Total:    st.TotalConns(),
		Idle:     st.IdleConns(),
		Acquired: st.AcquiredConns(),
		Max:      st.MaxConns(),
		Acquires: st.AcquireCount(),
		WaitTime: st.AcquireDuration().String(),
	}
	if ps.Max > 0 {
		ps.Utilization = float64(ps.Acquired) / float64(ps.Max)
	}
	return ps
}

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler pings the database and reports pool usage. A failed ping is
// 503 unhealthy; a nearly exhausted pool is 200 degraded.
func HealthHandler(pool *pgxpool.Pool) echo.HandlerFunc {
	return healthHandler(pool, func() PoolStats { return statsOf(pool) })
}

func healthHandler(p pinger, stats func() PoolStats) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
		defer cancel()

		start := time.Now()
		err := p.Ping(ctx)
		body := map[string]interface{}{
			"pool":            stats(),
			"ping_latency_ms": time.Since(start).Milliseconds(),
		}
		if err != nil {
			body["status"] = "unhealthy"
			body["error"] = err.Error()
			return c.JSON(http.StatusServiceUnavailable, body)
		}

		body["status"] = "healthy"
		if s := body["pool"].(PoolStats); s.Utilization >= saturated {
			body["status"] = "degraded"
		}
		return c.JSON(http.StatusOK, body)
	}
}
