// =============================================================================
// Bill Generator - Shared Types
// =============================================================================
//
// This package contains the bill data model shared by every component, kept
// here to avoid import cycles. Types defined here are used by:
//   - bill          (builds and freezes bills)
//   - ledger        (persists bills)
//   - transactions  (flattens bills into ledger rows)
//   - search, export, render (read bills)
//
// MONEY:
//   All monetary values and percentages are shopspring decimals. Nothing is
//   rounded on the way in or out; rounding happens only where a value is
//   displayed (see Money).
//
// =============================================================================

package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// LINE ITEM
// =============================================================================

// LineItem is a single row on an invoice. It is immutable once added to a
// bill; to change one, remove it and add it again before the bill is saved.
type LineItem struct {
	// Name is the item description as typed by the operator.
	Name string `json:"name"`

	// HSNCode is the tax classification code. Treated as an opaque string.
	HSNCode string `json:"hsnCode"`

	// Quantity is the number of units. Always > 0.
	Quantity int `json:"quantity"`

	// Rate is the unit price. Always >= 0.
	Rate decimal.Decimal `json:"rate"`

	// GSTPercent is the per-item GST rate. Always >= 0.
	GSTPercent decimal.Decimal `json:"gstPercent"`

	// LineTotal is derived by LineTotal() and never set directly.
	LineTotal decimal.Decimal `json:"lineTotal"`
}

var hundred = decimal.NewFromInt(100)

// LineTotal computes quantity * rate * (1 + gstPercent/100).
func LineTotal(quantity int, rate, gstPercent decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(gstPercent.Div(hundred))
	return decimal.NewFromInt(int64(quantity)).Mul(rate).Mul(factor)
}

// NewLineItem builds a LineItem with its derived total filled in.
// Inputs are not validated here; bill.Builder.AddItem does that.
func NewLineItem(name, hsnCode string, quantity int, rate, gstPercent decimal.Decimal) LineItem {
	return LineItem{
		Name:       name,
		HSNCode:    hsnCode,
		Quantity:   quantity,
		Rate:       rate,
		GSTPercent: gstPercent,
		LineTotal:  LineTotal(quantity, rate, gstPercent),
	}
}

// Amount returns quantity * rate, before GST.
func (li LineItem) Amount() decimal.Decimal {
	return decimal.NewFromInt(int64(li.Quantity)).Mul(li.Rate)
}

// SumLineTotals adds up the line totals of items.
func SumLineTotals(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal)
	}
	return total
}

// =============================================================================
// CUSTOMER AND TAX FIELDS
// =============================================================================

// Customer holds the free-text customer fields of a bill. Any of them may be
// empty.
type Customer struct {
	Name    string
	GSTIN   string
	Address string
	Phone   string
}

// Taxes holds the bill-level tax rates. They are recorded on the bill but are
// not folded into Bill.Total.
type Taxes struct {
	CGSTPercent decimal.Decimal
	SGSTPercent decimal.Decimal
}

// =============================================================================
// BILL
// =============================================================================

// Bill is a frozen invoice. It is produced by bill.Builder.Freeze, persisted
// once, and never mutated afterwards.
type Bill struct {
	// InvoiceNumber has the form "<PREFIX>-NNNN", e.g. "SS-0007".
	InvoiceNumber string `json:"invoiceNumber"`

	// Date is stamped at save time, truncated to the second.
	Date time.Time `json:"date"`

	CustomerName    string `json:"customerName"`
	CustomerGST     string `json:"customerGst"`
	CustomerAddress string `json:"customerAddress"`
	CustomerPhone   string `json:"customerPhone,omitempty"`

	// Items keeps insertion order. Never empty for a saved bill.
	Items []LineItem `json:"items"`

	CGSTPercent decimal.Decimal `json:"cgstPercent"`
	SGSTPercent decimal.Decimal `json:"sgstPercent"`

	// Total is the sum of Items[i].LineTotal. CGST/SGST are not included.
	Total decimal.Decimal `json:"total"`
}

// Customer returns the customer fields of the bill.
func (b Bill) Customer() Customer {
	return Customer{
		Name:    b.CustomerName,
		GSTIN:   b.CustomerGST,
		Address: b.CustomerAddress,
		Phone:   b.CustomerPhone,
	}
}

// Subtotal is the pre-GST amount, the sum of quantity * rate.
func (b Bill) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range b.Items {
		subtotal = subtotal.Add(item.Amount())
	}
	return subtotal
}

// =============================================================================
// DISPLAY HELPERS
// =============================================================================

// DateLayout is the layout used wherever a bill date is written as text.
const DateLayout = "2006-01-02 15:04:05"

// Money formats an amount with two decimal places for display.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
