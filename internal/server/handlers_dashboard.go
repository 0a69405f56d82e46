package server

import (
	"net/http"
	"time"

	"github.com/centsible/centsible/internal/models"
)

// handleDashboard handles GET /api/dashboard?timeframe=daily|weekly|monthly|yearly.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	tf := models.Timeframe(r.URL.Query().Get("timeframe"))
	if tf == "" {
		tf = models.TimeframeMonthly
	}
	if !models.ValidTimeframe(tf) {
		WriteError(w, http.StatusBadRequest, "Invalid timeframe: must be daily, weekly, monthly, or yearly")
		return
	}
	stats, err := s.app.DashboardService.Stats(r.Context(), tf, time.Now())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}
