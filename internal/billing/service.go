// =============================================================================
// Bill Generator - Billing Service
// =============================================================================
//
// The service ties the in-progress bill to durable storage:
//
//   Save:  builder -> Freeze(current invoice number) -> duplicate check
//          -> ledger.Append  \
//          -> mirror.Append  /  two independent writes, both always attempted
//   Reset: builder.Clear -> numberer.Advance
//
// The two writes are not a transaction. A failure in one never undoes the
// other, and SaveResult reports each outcome separately so the operator knows
// which store needs reconciling.
//
// =============================================================================

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

package billing

import (
	"errors"
	"fmt"

	"github.com/godopgaming/bill-genertor/internal/bill"
	"github.com/godopgaming/bill-genertor/internal/logging"
	"github.com/godopgaming/bill-genertor/internal/types"
)

// ErrDuplicateInvoice is returned by Save when the ledger already holds a bill
// with the current invoice number.
var ErrDuplicateInvoice = errors.New("invoice number already saved")

// =============================================================================
// COLLABORATORS
// =============================================================================

// Ledger is the durable bill store.
type Ledger interface {
	Append(bill types.Bill) error
	FindByInvoiceNumber(invoiceNumber string) (types.Bill, bool, error)
}

// Mirror is the per-line-item transaction store.
type Mirror interface {
	Append(bill types.Bill) error
}

// Numberer issues invoice numbers.
type Numberer interface {
	Current() string
	Advance() (string, error)
}

// =============================================================================
// SAVE RESULT
// =============================================================================

// SaveResult reports the outcome of each half of a save.
type SaveResult struct {
	Bill      types.Bill
	LedgerErr error
	MirrorErr error
}

// Success reports whether both stores were written.
func (r SaveResult) Success() bool {
	return r.LedgerErr == nil && r.MirrorErr == nil
}

// Partial reports whether exactly one store was written.
func (r SaveResult) Partial() bool {
	return (r.LedgerErr == nil) != (r.MirrorErr == nil)
}

// Err joins the per-store errors, or returns nil on full success.
func (r SaveResult) Err() error {
	return errors.Join(r.LedgerErr, r.MirrorErr)
}

// =============================================================================
// SERVICE
// =============================================================================

// Service saves and resets bills.
type Service struct {
	ledger   Ledger
	mirror   Mirror
	numberer Numberer
	logger   logging.Logger
}

// NewService wires a Service from its collaborators.
func NewService(ledger Ledger, mirror Mirror, numberer Numberer, logger logging.Logger) *Service {
	return &Service{
		ledger:   ledger,
		mirror:   mirror,
		numberer: numberer,
		logger:   logger,
	}
}

// InvoiceNumber returns the number the next saved bill will carry.
func (s *Service) InvoiceNumber() string {
	return s.numberer.Current()
}

// Save freezes the builder's items under the current invoice number and
// writes the bill to the ledger and the mirror.
//
// PARAMETERS:
//   - builder: the in-progress bill; it is not modified
//   - customer, taxes: header fields copied onto the bill
//
// RETURNS:
//   - SaveResult: the frozen bill and the error of each write
//   - error: bill.ErrEmptyBill, ErrDuplicateInvoice or a ledger read error
//     when nothing was written; otherwise SaveResult.Err()
func (s *Service) Save(builder *bill.Builder, customer types.Customer, taxes types.Taxes) (SaveResult, error) {
	invoiceNumber := s.numberer.Current()

	frozen, err := builder.Freeze(customer, taxes, invoiceNumber)
	if err != nil {
		return SaveResult{}, err
	}

	_, exists, err := s.ledger.FindByInvoiceNumber(invoiceNumber)
	if err != nil {
		return SaveResult{}, fmt.Errorf("failed to check invoice %s: %w", invoiceNumber, err)
	}
	if exists {
		return SaveResult{}, fmt.Errorf("%w: %s", ErrDuplicateInvoice, invoiceNumber)
	}

	result := SaveResult{Bill: frozen}
	result.LedgerErr = s.ledger.Append(frozen)
	result.MirrorErr = s.mirror.Append(frozen)

	switch {
	case result.Success():
		s.logger.Info("bill saved", "invoice", invoiceNumber, "items", len(frozen.Items), "total", types.Money(frozen.Total))
	case result.Partial():
		s.logger.Error("bill partially saved", "invoice", invoiceNumber, "ledger_error", result.LedgerErr, "mirror_error", result.MirrorErr)
	default:
		s.logger.Error("bill not saved", "invoice", invoiceNumber, "ledger_error", result.LedgerErr, "mirror_error", result.MirrorErr)
	}

	return result, result.Err()
}

// Reset clears the builder and moves on to the next invoice number.
func (s *Service) Reset(builder *bill.Builder) (string, error) {
	builder.Clear()

	next, err := s.numberer.Advance()
	if err != nil {
		return s.numberer.Current(), fmt.Errorf("failed to advance invoice number: %w", err)
	}

	s.logger.Debug("bill reset", "invoice", next)
	return next, nil
}
