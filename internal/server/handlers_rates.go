package server

import "net/http"

// handleRates handles GET /api/rates: the cached USD-pivot rate table.
func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if r.URL.Query().Get("refresh") == "true" {
		if err := s.app.CurrencyService.RefreshRates(r.Context()); err != nil {
			s.logger.Warn().Err(err).Msg("Rate refresh failed, serving cached table")
		}
	}
	rates := s.app.CurrencyService.Rates(r.Context())
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"base":  "USD",
		"rates": rates,
	})
}

// handleCurrencies handles GET /api/currencies: supported currency codes with
// display names.
func (s *Server) handleCurrencies(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, s.app.CurrencyService.SupportedCurrencies(r.Context()))
}
