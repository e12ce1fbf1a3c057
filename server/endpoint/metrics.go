package endpoint

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// Gauge is a named metric sampled when the metrics endpoint is hit.
// Services register gauges for stream-level numbers such as connected
// clients or dropped frames.
type Gauge struct {
	Name  string
	Value func() interface{}
}

// Metrics returns a handler that reports runtime memory and goroutine
// metrics plus any service-supplied gauges.
func Metrics(gauges ...Gauge) gin.HandlerFunc {
	return func(c *gin.Context) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		body := gin.H{
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"uptime":     time.Since(startTime).String(),
			"goroutines": runtime.NumGoroutine(),
			"memory": gin.H{
				"alloc_mb":       m.Alloc / 1024 / 1024,
				"total_alloc_mb": m.TotalAlloc / 1024 / 1024,
				"sys_mb":         m.Sys / 1024 / 1024,
				"gc_runs":        m.NumGC,
			},
		}
		for _, g := range gauges {
			body[g.Name] = g.Value()
		}

		c.JSON(http.StatusOK, body)
	}
}
