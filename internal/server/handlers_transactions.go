package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/centsible/centsible/internal/interfaces"
	"github.com/centsible/centsible/internal/models"
)

// handleTransactions handles GET /api/transactions (list) and POST (create).
// List supports ?limit=N and ?order=date_asc|date_desc.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		opts := interfaces.QueryOptions{OrderBy: r.URL.Query().Get("order")}
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				WriteError(w, http.StatusBadRequest, "Invalid limit parameter")
				return
			}
			opts.Limit = limit
		}
		txs, err := s.app.WalletService.ListTransactions(r.Context(), opts)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, txs)
	case http.MethodPost:
		var tx models.Transaction
		if !DecodeJSON(w, r, &tx) {
			return
		}
		created, err := s.app.WalletService.AddTransaction(r.Context(), &tx)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, created)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleTransactionGet(w http.ResponseWriter, r *http.Request, id string) {
	tx, err := s.app.Storage.Ledger().GetTransaction(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, tx)
}

func (s *Server) handleTransactionUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var update models.Transaction
	if !DecodeJSON(w, r, &update) {
		return
	}
	updated, err := s.app.WalletService.UpdateTransaction(r.Context(), id, &update)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

func (s *Server) handleTransactionDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.app.WalletService.DeleteTransaction(r.Context(), id); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// transferRequest is the payload for POST /api/transactions/transfer.
type transferRequest struct {
	FromWalletID string          `json:"from_wallet_id"`
	ToWalletID   string          `json:"to_wallet_id"`
	Amount       decimal.Decimal `json:"amount"`
	Title        string          `json:"title,omitempty"`
	Date         time.Time       `json:"date,omitempty"`
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	var req transferRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}
	legs, err := s.app.WalletService.Transfer(r.Context(), req.FromWalletID, req.ToWalletID, req.Amount, req.Title, req.Date)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, legs)
}
