package server

import (
	"net/http"

	"github.com/centsible/centsible/internal/models"
)

// handleWallets handles GET /api/wallets (list) and POST /api/wallets (create).
func (s *Server) handleWallets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		wallets, err := s.app.WalletService.ListWallets(r.Context())
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, wallets)
	case http.MethodPost:
		var wallet models.Wallet
		if !DecodeJSON(w, r, &wallet) {
			return
		}
		created, err := s.app.WalletService.CreateWallet(r.Context(), &wallet)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, created)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleWalletGet(w http.ResponseWriter, r *http.Request, id string) {
	wallet, err := s.app.WalletService.GetWallet(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, wallet)
}

func (s *Server) handleWalletUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var wallet models.Wallet
	if !DecodeJSON(w, r, &wallet) {
		return
	}
	wallet.ID = id
	updated, err := s.app.WalletService.UpdateWallet(r.Context(), &wallet)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

func (s *Server) handleWalletDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.app.WalletService.DeleteWallet(r.Context(), id); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}
