package handlers

import (
	"net/http"
)

type TablesResponse struct {
	Tables map[string]int `json:"tables"`
}

// HealthHandler reports database, cache and storage availability.
func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	report := h.HealthService.Check(r.Context())

	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}

	writeSuccess(w, report, status)
}

func (h *Handlers) TablesHandler(w http.ResponseWriter, r *http.Request) {
	counts, err := h.TablesService.GetRowCounts(r.Context())
	if err != nil {
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeSuccess(w, TablesResponse{Tables: counts}, http.StatusOK)
}
