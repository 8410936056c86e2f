package types

import "fmt"

// Store names used in storage errors so the operator can tell which half of
// a save failed.
const (
	StoreLedger       = "ledger"
	StoreTransactions = "transactions"
	StoreCounter      = "invoice counter"
	StoreMonthly      = "monthly report"
)

// CorruptStoreError means a store file exists but could not be parsed. It is
// never to be treated as "no data".
type CorruptStoreError struct {
	Store string
	Path  string
	Err   error
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("%s store %s is corrupt: %v", e.Store, e.Path, e.Err)
}

func (e *CorruptStoreError) Unwrap() error { return e.Err }

// StorageWriteError means a durable write failed (disk full, permissions).
type StorageWriteError struct {
	Store string
	Path  string
	Err   error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("failed to write %s store %s: %v", e.Store, e.Path, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }
