package server

import (
	"net/http"

	"github.com/centsible/centsible/internal/common"
	"github.com/centsible/centsible/internal/models"
)

// handleCategories handles GET /api/categories. An empty collection is seeded
// with the default category set on first read.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID := common.ResolveUserID(r.Context())
	ledger := s.app.Storage.Ledger()

	cats, err := ledger.ListCategories(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if len(cats) == 0 {
		for _, cat := range models.DefaultCategories(userID) {
			c := cat
			if err := ledger.SaveCategory(r.Context(), &c); err != nil {
				WriteServiceError(w, err)
				return
			}
			cats = append(cats, &c)
		}
		s.logger.Info().Str("user", userID).Int("count", len(cats)).Msg("Seeded default categories")
	}
	WriteJSON(w, http.StatusOK, cats)
}
