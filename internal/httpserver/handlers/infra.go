package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/roberta039/flight-search-3/internal/httpserver/deps"
)

type componentStatus struct {
	OK       bool   `json:"ok"`
	Mode     string `json:"mode,omitempty"`
	Impact   string `json:"impact,omitempty"`
	Error    string `json:"error,omitempty"`
	Monitors *int   `json:"monitors,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Providers  []string                   `json:"providers"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		monitorCount := len(d.Search.MonitoredRoutes())
		redisStatus := checkRedis(d)

		components := map[string]componentStatus{
			"providers": {
				OK:   len(d.Providers) > 0,
				Mode: "aggregated",
			},
			"redis": redisStatus,
			"monitors": {
				OK:       true,
				Monitors: &monitorCount,
			},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(d, components),
			Providers:  d.Providers,
			Components: components,
		})
	}
}

func determineMode(d deps.Deps, components map[string]componentStatus) string {
	if len(d.Providers) == 0 {
		return "critical" // no upstream provider configured
	}
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "degraded" // monitors lost on restart
	}
	return "operational"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "monitor-persistence-disabled",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "monitor-persistence-disabled",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "monitor-persistence-enabled",
		Error:  "none",
	}
}
