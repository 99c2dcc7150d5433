package controllers

import (
	"fmt"
	"net/http"
	"techpulse/internal/aggregator"
	"techpulse/internal/persistence/interfaces"
	"time"
)

type HealthController struct {
	aggregator aggregator.AggregatorInterface
	store      interfaces.SnapshotStoreInterface
	startTime  time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Sources       int     `json:"sources"`
	PendingWrite  bool    `json:"pending_write"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	status := "ok"
	if hc.store.Dirty() {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        status,
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Sources:       len(hc.aggregator.ActiveSources()),
		PendingWrite:  hc.store.Dirty(),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(agg aggregator.AggregatorInterface, store interfaces.SnapshotStoreInterface) *HealthController {
	return &HealthController{
		aggregator: agg,
		store:      store,
		startTime:  time.Now(),
	}
}
