package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godopgaming/bill-genertor/internal/config"
	"github.com/godopgaming/bill-genertor/internal/types"
)

func TestNumberToWords(t *testing.T) {
	testCases := []struct {
		num      int64
		expected string
	}{
		{0, ""},
		{7, "Seven"},
		{19, "Nineteen"},
		{40, "Forty"},
		{236, "Two Hundred Thirty Six"},
		{1000, "One Thousand"},
		{100005, "One Lakh Five"},
		{12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, NumberToWords(tc.num), "num %d", tc.num)
	}
}

func TestAmountInWords(t *testing.T) {
	testCases := []struct {
		amount   string
		expected string
	}{
		{"236", "Two Hundred Thirty Six Rupees Only"},
		{"388.88", "Three Hundred Eighty Eight Rupees and Eighty Eight Paise Only"},
		{"0.5", "Fifty Paise Only"},
		{"0", "Zero Rupees Only"},
		{"99.999", "One Hundred Rupees Only"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, AmountInWords(decimal.RequireFromString(tc.amount)), "amount %s", tc.amount)
	}
}

func TestRenderPDF(t *testing.T) {
	items := []types.LineItem{
		types.NewLineItem("Hose pipe", "4009", 2, decimal.NewFromInt(100), decimal.NewFromInt(18)),
		types.NewLineItem("Crane hook – 5T", "7326", 1, decimal.NewFromInt(1200), decimal.NewFromInt(18)),
	}
	bill := types.Bill{
		InvoiceNumber:   "SS-0001",
		Date:            time.Date(2025, time.April, 9, 14, 30, 15, 0, time.Local),
		CustomerName:    "Ravi Traders",
		CustomerGST:     "22AAAAA0000A1Z5",
		CustomerAddress: "12 Ring Road\nIndore",
		CustomerPhone:   "98765 43210",
		Items:           items,
		CGSTPercent:     decimal.NewFromInt(9),
		SGSTPercent:     decimal.NewFromInt(9),
		Total:           types.SumLineTotals(items),
	}

	var buf bytes.Buffer
	err := NewPDF(config.Default().Company).Render(&buf, bill)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Equal(t, "SS-0001", bill.InvoiceNumber, "render must not modify the bill")
}
