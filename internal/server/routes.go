package server

import (
	"net/http"
	"strings"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/reload", s.handleReload)

	// Auth
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)
	mux.HandleFunc("/api/auth/logout", s.handleAuthLogout)

	// Wallets
	mux.HandleFunc("/api/wallets/", s.routeWallets)
	mux.HandleFunc("/api/wallets", s.handleWallets)

	// Transactions
	mux.HandleFunc("/api/transactions/transfer", s.handleTransfer)
	mux.HandleFunc("/api/transactions/", s.routeTransactions)
	mux.HandleFunc("/api/transactions", s.handleTransactions)

	// Bills
	mux.HandleFunc("/api/bills/process", s.handleBillsProcess)
	mux.HandleFunc("/api/bills/", s.routeBills)
	mux.HandleFunc("/api/bills", s.handleBills)

	// Categories
	mux.HandleFunc("/api/categories", s.handleCategories)

	// Dashboard
	mux.HandleFunc("/api/dashboard", s.handleDashboard)

	// Rates
	mux.HandleFunc("/api/rates", s.handleRates)
	mux.HandleFunc("/api/currencies", s.handleCurrencies)

	// Preferences
	mux.HandleFunc("/api/preferences", s.handlePreferences)
}

// routeWallets dispatches /api/wallets/{id} to the appropriate handler.
func (s *Server) routeWallets(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/wallets/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "wallet id is required in path")
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.handleWalletGet(w, r, id)
	case http.MethodPut, http.MethodPatch:
		s.handleWalletUpdate(w, r, id)
	case http.MethodDelete:
		s.handleWalletDelete(w, r, id)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}

// routeTransactions dispatches /api/transactions/{id} to the appropriate handler.
func (s *Server) routeTransactions(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/transactions/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "transaction id is required in path")
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.handleTransactionGet(w, r, id)
	case http.MethodPut, http.MethodPatch:
		s.handleTransactionUpdate(w, r, id)
	case http.MethodDelete:
		s.handleTransactionDelete(w, r, id)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}

// routeBills dispatches /api/bills/{id} and /api/bills/{id}/pay.
func (s *Server) routeBills(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/bills/")
	if strings.HasSuffix(rest, "/pay") {
		s.handleBillPay(w, r, strings.TrimSuffix(rest, "/pay"))
		return
	}
	id := PathParam(r, "/api/bills/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "bill id is required in path")
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.handleBillGet(w, r, id)
	case http.MethodPut, http.MethodPatch:
		s.handleBillUpdate(w, r, id)
	case http.MethodDelete:
		s.handleBillDelete(w, r, id)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}
