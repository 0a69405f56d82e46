package server

import (
	"net/http"
	"time"

	"github.com/centsible/centsible/internal/models"
)

// handleBills handles GET /api/bills (list) and POST /api/bills (create).
func (s *Server) handleBills(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		bills, err := s.app.BillService.ListBills(r.Context())
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, bills)
	case http.MethodPost:
		var bill models.Bill
		if !DecodeJSON(w, r, &bill) {
			return
		}
		created, err := s.app.BillService.CreateBill(r.Context(), &bill)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, created)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleBillGet(w http.ResponseWriter, r *http.Request, id string) {
	bill, err := s.app.BillService.GetBill(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, bill)
}

func (s *Server) handleBillUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var bill models.Bill
	if !DecodeJSON(w, r, &bill) {
		return
	}
	bill.ID = id
	updated, err := s.app.BillService.UpdateBill(r.Context(), &bill)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

func (s *Server) handleBillDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.app.BillService.DeleteBill(r.Context(), id); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// handleBillPay handles POST /api/bills/{id}/pay: manual payment of one bill
// from its linked wallet.
func (s *Server) handleBillPay(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	if id == "" {
		WriteError(w, http.StatusBadRequest, "bill id is required in path")
		return
	}
	if err := s.app.WalletService.PayBill(r.Context(), id); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "paid", "id": id})
}

// handleBillsProcess handles POST /api/bills/process: an on-demand
// auto-deduction pass, same path the background scheduler takes.
func (s *Server) handleBillsProcess(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	result, err := s.app.BillService.ProcessDueBills(r.Context(), time.Now())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}
