package models

import "time"

// Collection identifies a record type in the ledger store.
type Collection string

const (
	CollectionWallets      Collection = "wallets"
	CollectionTransactions Collection = "transactions"
	CollectionBills        Collection = "bills"
	CollectionCategories   Collection = "categories"
)

// ChangeKind describes what happened to a record.
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// ChangeEvent is emitted on a watch stream after a committed write. It
// carries identity only; subscribers re-query for current state.
type ChangeEvent struct {
	UserID     string     `json:"user_id"`
	Collection Collection `json:"collection"`
	Kind       ChangeKind `json:"kind"`
	RecordID   string     `json:"record_id"`
	At         time.Time  `json:"at"`
}

// UserKeyValue is a per-user preference entry (base currency, notification
// opt-in, and similar settings).
type UserKeyValue struct {
	UserID   string    `json:"user_id" badgerhold:"index"`
	Key      string    `json:"key"`
	Value    string    `json:"value"`
	Version  int       `json:"version"`
	DateTime time.Time `json:"datetime"`
}
