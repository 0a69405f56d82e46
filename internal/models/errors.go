package models

import "errors"

// Sentinel errors raised by ledger operations. Not-found and precondition
// errors surface from inside an atomic unit and abort it; validation errors
// are raised before any store operation is attempted.
var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrBillNotFound        = errors.New("bill not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrBillAlreadyPaid     = errors.New("bill is already paid")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrPassInProgress      = errors.New("bill processing pass already in progress")
)
