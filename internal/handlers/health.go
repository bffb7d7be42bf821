package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/plannerhub/planner-api/internal/scheduler"
)

type HealthHandler struct {
	probe scheduler.ReadinessChecker
}

func NewHealthHandler(probe scheduler.ReadinessChecker) *HealthHandler {
	return &HealthHandler{probe: probe}
}

// Check reports dependency health; 503 when either is down.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	status := h.probe.Check(r.Context())

	code := http.StatusOK
	overall := "ok"
	if !status.DBOk || !status.QueueOk {
		code = http.StatusServiceUnavailable
		overall = "degraded"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":   overall,
		"db_ok":    status.DBOk,
		"queue_ok": status.QueueOk,
	})
}
