package types

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	testCases := []struct {
		name     string
		quantity int
		rate     string
		gst      string
		expected string
	}{
		{name: "gst_18", quantity: 2, rate: "100", gst: "18", expected: "236"},
		{name: "no_gst", quantity: 3, rate: "12.5", gst: "0", expected: "37.5"},
		{name: "zero_rate", quantity: 5, rate: "0", gst: "28", expected: "0"},
		{name: "fractional_gst", quantity: 1, rate: "250", gst: "2.5", expected: "256.25"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := LineTotal(tc.quantity, decimal.RequireFromString(tc.rate), decimal.RequireFromString(tc.gst))
			assert.True(t, decimal.RequireFromString(tc.expected).Equal(got), "got %s", got)
		})
	}
}

func TestSumLineTotalsMatchesBillTotal(t *testing.T) {
	items := []LineItem{
		NewLineItem("Hose pipe", "4009", 2, decimal.NewFromInt(100), decimal.NewFromInt(18)),
		NewLineItem("Coupling", "7307", 4, decimal.RequireFromString("35.5"), decimal.NewFromInt(12)),
	}

	total := SumLineTotals(items)

	// 236 + 4*35.5*1.12
	assert.True(t, decimal.RequireFromString("395.04").Equal(total), "got %s", total)
	assert.True(t, decimal.Zero.Equal(SumLineTotals(nil)))
}

func TestBillSubtotal(t *testing.T) {
	b := Bill{Items: []LineItem{
		NewLineItem("Hose pipe", "4009", 2, decimal.NewFromInt(100), decimal.NewFromInt(18)),
		NewLineItem("Clamp", "7326", 1, decimal.NewFromInt(50), decimal.NewFromInt(5)),
	}}

	assert.Equal(t, "250.00", Money(b.Subtotal()))
}

func TestStoreErrorsUnwrap(t *testing.T) {
	cause := errors.New("disk full")

	var err error = &StorageWriteError{Store: StoreLedger, Path: "bills.json", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "ledger")

	err = &CorruptStoreError{Store: StoreTransactions, Path: "transactions.xlsx", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "transactions.xlsx")
}
