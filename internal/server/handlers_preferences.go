package server

import (
	"net/http"
	"strings"

	"github.com/centsible/centsible/internal/common"
)

// preferences is the REST shape of the per-user settings bundle.
type preferences struct {
	BaseCurrency  string `json:"base_currency"`
	Notifications bool   `json:"notifications"`
}

// handlePreferences handles GET and PUT /api/preferences. Preferences live in
// the per-user key-value space; missing keys fall back to server defaults.
func (s *Server) handlePreferences(w http.ResponseWriter, r *http.Request) {
	userID := common.ResolveUserID(r.Context())
	ledger := s.app.Storage.Ledger()

	switch r.Method {
	case http.MethodGet:
		prefs := preferences{BaseCurrency: s.app.Config.BaseCurrency}
		if kv, err := ledger.GetUserKV(r.Context(), userID, "base_currency"); err == nil {
			prefs.BaseCurrency = kv.Value
		}
		if kv, err := ledger.GetUserKV(r.Context(), userID, "notifications"); err == nil {
			prefs.Notifications = kv.Value == "true"
		}
		WriteJSON(w, http.StatusOK, prefs)
	case http.MethodPut, http.MethodPatch:
		var prefs preferences
		if !DecodeJSON(w, r, &prefs) {
			return
		}
		prefs.BaseCurrency = strings.ToUpper(strings.TrimSpace(prefs.BaseCurrency))
		if len(prefs.BaseCurrency) != 3 {
			WriteError(w, http.StatusBadRequest, "invalid base currency: must be a 3-letter code")
			return
		}
		if err := ledger.SetUserKV(r.Context(), userID, "base_currency", prefs.BaseCurrency); err != nil {
			WriteServiceError(w, err)
			return
		}
		notif := "false"
		if prefs.Notifications {
			notif = "true"
		}
		if err := ledger.SetUserKV(r.Context(), userID, "notifications", notif); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, prefs)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodPatch)
	}
}
