// =============================================================================
// Bill Generator - Ledger Store
// =============================================================================
//
// The ledger is the durable collection of saved bills: a single JSON array in
// storage order (oldest first).
//
// WRITE MODEL:
//   Append is a read-modify-write of the whole file followed by an atomic
//   replace. It assumes a single writer; two concurrent appenders would lose
//   one of the writes. Multi-writer support would need a real append-only log
//   or a file lock.
//
// READ MODEL:
//   - file missing            -> empty ledger
//   - file present, parseable -> bills in storage order
//   - file present, garbage   -> *types.CorruptStoreError (never "empty")
//
// =============================================================================

package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/godopgaming/bill-genertor/internal/logging"
	"github.com/godopgaming/bill-genertor/internal/types"
	"github.com/godopgaming/bill-genertor/pkg/utils"
)

// Store is a file-backed ledger of bills.
type Store struct {
	path   string
	logger logging.Logger
}

// New returns a Store backed by path. The file is created on first Append.
func New(path string, logger logging.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// LoadAll returns every saved bill in storage order.
func (s *Store) LoadAll() ([]types.Bill, error) {
	data, ok, err := utils.ReadFileIfExists(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	if !ok {
		return []types.Bill{}, nil
	}

	var bills []types.Bill
	if err := json.Unmarshal(data, &bills); err != nil {
		return nil, &types.CorruptStoreError{Store: types.StoreLedger, Path: s.path, Err: err}
	}
	if bills == nil {
		// A literal "null" is not a ledger.
		return nil, &types.CorruptStoreError{Store: types.StoreLedger, Path: s.path, Err: fmt.Errorf("expected a JSON array")}
	}

	return bills, nil
}

// Append adds bill after every previously saved bill and rewrites the file.
// A corrupt ledger is reported and left untouched.
func (s *Store) Append(bill types.Bill) error {
	bills, err := s.LoadAll()
	if err != nil {
		return err
	}

	bills = append(bills, bill)

	data, err := json.MarshalIndent(bills, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	if err := utils.WriteFileAtomic(s.path, data, 0644); err != nil {
		return &types.StorageWriteError{Store: types.StoreLedger, Path: s.path, Err: err}
	}

	s.logger.Debug("bill appended to ledger", "invoice", bill.InvoiceNumber, "bills", len(bills))
	return nil
}

// FindByInvoiceNumber returns the first stored bill with the given invoice
// number. The boolean is false when there is none.
func (s *Store) FindByInvoiceNumber(invoiceNumber string) (types.Bill, bool, error) {
	bills, err := s.LoadAll()
	if err != nil {
		return types.Bill{}, false, err
	}

	for _, bill := range bills {
		if bill.InvoiceNumber == invoiceNumber {
			return bill, true, nil
		}
	}
	return types.Bill{}, false, nil
}
