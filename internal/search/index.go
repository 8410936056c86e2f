// =============================================================================
// Bill Generator - Search Index
// =============================================================================
//
// Read-only queries over the ledger. Every query loads the ledger afresh, so
// results always reflect what is on disk and nothing is ever written.
//
// CRITERIA:
//   ByInvoiceNumber{Number}  exact invoice number
//   ByCustomer{Text}         case-insensitive substring of the customer name;
//                            empty text matches every bill
//   ByDateRange{From, To}    inclusive by calendar day; a zero From is the
//                            first day of the current month and a zero To is
//                            today
//
// Combined intersects any number of criteria and keeps storage order. A
// corrupt ledger is returned as an error, never as an empty result.
//
// =============================================================================

package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/godopgaming/bill-genertor/internal/types"
)

// Ledger is the part of the ledger store the index reads from.
type Ledger interface {
	LoadAll() ([]types.Bill, error)
	FindByInvoiceNumber(invoiceNumber string) (types.Bill, bool, error)
}

// =============================================================================
// CRITERIA
// =============================================================================

// Criterion is one search filter. The set of criteria is closed: only the
// types in this package implement it.
type Criterion interface {
	matches(bill types.Bill, now time.Time) bool
	fmt.Stringer
}

// ByInvoiceNumber matches a bill with exactly this invoice number.
type ByInvoiceNumber struct {
	Number string
}

func (c ByInvoiceNumber) matches(bill types.Bill, _ time.Time) bool {
	return bill.InvoiceNumber == c.Number
}

func (c ByInvoiceNumber) String() string { return fmt.Sprintf("invoice=%q", c.Number) }

// ByCustomer matches bills whose customer name contains Text, ignoring case.
type ByCustomer struct {
	Text string
}

func (c ByCustomer) matches(bill types.Bill, _ time.Time) bool {
	if c.Text == "" {
		return true
	}
	return strings.Contains(strings.ToLower(bill.CustomerName), strings.ToLower(c.Text))
}

func (c ByCustomer) String() string { return fmt.Sprintf("customer~%q", c.Text) }

// ByDateRange matches bills dated on or between From and To, compared by
// calendar day.
type ByDateRange struct {
	From time.Time
	To   time.Time
}

// Bounds returns the half-open interval [start, end) the range covers once
// defaults are applied against now.
func (c ByDateRange) Bounds(now time.Time) (time.Time, time.Time) {
	from, to := c.From, c.To
	if from.IsZero() {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	if to.IsZero() {
		to = now
	}
	return startOfDay(from), startOfDay(to).AddDate(0, 0, 1)
}

func (c ByDateRange) matches(bill types.Bill, now time.Time) bool {
	start, end := c.Bounds(now)
	return !bill.Date.Before(start) && bill.Date.Before(end)
}

func (c ByDateRange) String() string {
	return fmt.Sprintf("date=[%s..%s]", dayString(c.From), dayString(c.To))
}

// =============================================================================
// INDEX
// =============================================================================

// Index answers queries against a Ledger.
type Index struct {
	ledger Ledger
	now    func() time.Time
}

// New returns an Index over ledger using the wall clock for date defaults.
func New(ledger Ledger) *Index {
	return NewWithClock(ledger, time.Now)
}

// NewWithClock returns an Index that resolves date defaults against now.
func NewWithClock(ledger Ledger, now func() time.Time) *Index {
	return &Index{ledger: ledger, now: now}
}

// ByInvoiceNumber returns the stored bill with this invoice number. The
// boolean is false when none exists.
func (ix *Index) ByInvoiceNumber(invoiceNumber string) (types.Bill, bool, error) {
	bill, ok, err := ix.ledger.FindByInvoiceNumber(invoiceNumber)
	if err != nil {
		return types.Bill{}, false, fmt.Errorf("failed to look up invoice %s: %w", invoiceNumber, err)
	}
	return bill, ok, nil
}

// ByCustomerSubstring returns bills whose customer name contains text.
func (ix *Index) ByCustomerSubstring(text string) ([]types.Bill, error) {
	return ix.Combined(ByCustomer{Text: text})
}

// ByDateRange returns bills dated within [from, to] by calendar day. Zero
// values take the current month defaults.
func (ix *Index) ByDateRange(from, to time.Time) ([]types.Bill, error) {
	return ix.Combined(ByDateRange{From: from, To: to})
}

// Combined returns the bills matching every criterion, in storage order. With
// no criteria every bill matches.
func (ix *Index) Combined(criteria ...Criterion) ([]types.Bill, error) {
	bills, err := ix.ledger.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to search ledger: %w", err)
	}

	now := ix.now()
	matched := make([]types.Bill, 0, len(bills))
	for _, bill := range bills {
		if matchesAll(bill, criteria, now) {
			matched = append(matched, bill)
		}
	}
	return matched, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func matchesAll(bill types.Bill, criteria []Criterion, now time.Time) bool {
	for _, c := range criteria {
		if !c.matches(bill, now) {
			return false
		}
	}
	return true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayString(t time.Time) string {
	if t.IsZero() {
		return "default"
	}
	return t.Format("2006-01-02")
}
