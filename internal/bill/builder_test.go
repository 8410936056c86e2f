package bill

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godopgaming/bill-genertor/internal/types"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestAddItem(t *testing.T) {
	testCases := []struct {
		name           string
		quantity       int
		rate           decimal.Decimal
		gst            decimal.Decimal
		expectedFields []string
		expectedTotal  string
	}{
		{name: "happy_case", quantity: 2, rate: dec("100"), gst: dec("18"), expectedTotal: "236"},
		{name: "zero_rate_and_gst", quantity: 1, rate: dec("0"), gst: dec("0"), expectedTotal: "0"},
		{name: "zero_quantity", quantity: 0, rate: dec("100"), gst: dec("18"), expectedFields: []string{"quantity"}},
		{name: "negative_quantity", quantity: -3, rate: dec("100"), gst: dec("18"), expectedFields: []string{"quantity"}},
		{name: "negative_rate", quantity: 1, rate: dec("-0.01"), gst: dec("18"), expectedFields: []string{"rate"}},
		{name: "negative_gst", quantity: 1, rate: dec("10"), gst: dec("-5"), expectedFields: []string{"gstPercent"}},
		{name: "tiny_negative_rate", quantity: 1, rate: dec("-1e-400"), gst: dec("0"), expectedFields: []string{"rate"}},
		{name: "tiny_negative_gst", quantity: 1, rate: dec("10"), gst: dec("-1e-400"), expectedFields: []string{"gstPercent"}},
		{name: "tiny_positive_rate", quantity: 1, rate: dec("1e-400"), gst: dec("0"), expectedTotal: "1e-400"},
		{name: "all_invalid", quantity: 0, rate: dec("-1"), gst: dec("-1"), expectedFields: []string{"quantity", "rate", "gstPercent"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBuilder()

			item, err := b.AddItem("Hose pipe", "4009", tc.quantity, tc.rate, tc.gst)

			if tc.expectedFields != nil {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.ElementsMatch(t, tc.expectedFields, verr.Fields)
				assert.Zero(t, b.Len(), "item list must be unchanged on validation failure")
				return
			}

			require.NoError(t, err)
			assert.True(t, dec(tc.expectedTotal).Equal(item.LineTotal), "got %s", item.LineTotal)
			assert.Equal(t, []types.LineItem{item}, b.Items())
		})
	}
}

func TestAddItemPreservesOrder(t *testing.T) {
	b := NewBuilder()
	for _, name := range []string{"Crane hook", "Hose pipe", "Coupling"} {
		_, err := b.AddItem(name, "", 1, dec("10"), dec("0"))
		require.NoError(t, err)
	}

	var names []string
	for _, item := range b.Items() {
		names = append(names, item.Name)
	}
	assert.Equal(t, []string{"Crane hook", "Hose pipe", "Coupling"}, names)
}

func TestRemoveLastAndClear(t *testing.T) {
	b := NewBuilder()

	_, ok := b.RemoveLast()
	assert.False(t, ok)

	_, err := b.AddItem("A", "1", 1, dec("10"), dec("0"))
	require.NoError(t, err)
	_, err = b.AddItem("B", "2", 1, dec("20"), dec("0"))
	require.NoError(t, err)

	removed, ok := b.RemoveLast()
	require.True(t, ok)
	assert.Equal(t, "B", removed.Name)
	assert.Equal(t, 1, b.Len())
	assert.True(t, dec("10").Equal(b.Total()))

	b.Clear()
	assert.Zero(t, b.Len())
	assert.Empty(t, b.Items())
}

func TestItemsReturnsCopy(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddItem("A", "1", 1, dec("10"), dec("0"))
	require.NoError(t, err)

	items := b.Items()
	items[0].Name = "mutated"

	assert.Equal(t, "A", b.Items()[0].Name)
}

func TestFreeze(t *testing.T) {
	now := time.Date(2025, time.April, 9, 14, 30, 15, 987654321, time.UTC)
	b := NewBuilderWithClock(fixedClock(now))

	_, err := b.AddItem("Hose pipe", "4009", 2, dec("100"), dec("18"))
	require.NoError(t, err)

	customer := types.Customer{Name: "Ravi Traders", GSTIN: "22AAAAA0000A1Z5", Address: "Indore", Phone: "98765"}
	taxes := types.Taxes{CGSTPercent: dec("9"), SGSTPercent: dec("9")}

	bill, err := b.Freeze(customer, taxes, "SS-0001")
	require.NoError(t, err)

	assert.Equal(t, "SS-0001", bill.InvoiceNumber)
	assert.Equal(t, now.Truncate(time.Second), bill.Date)
	assert.Equal(t, customer, bill.Customer())
	assert.Len(t, bill.Items, 1)
	assert.True(t, dec("236").Equal(bill.Total), "got %s", bill.Total)
	// CGST/SGST are recorded but not added to the total.
	assert.True(t, dec("9").Equal(bill.CGSTPercent))
	assert.True(t, dec("9").Equal(bill.SGSTPercent))
}

func TestFreezeIsolatesBillFromBuilder(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddItem("A", "1", 1, dec("10"), dec("0"))
	require.NoError(t, err)

	bill, err := b.Freeze(types.Customer{}, types.Taxes{}, "SS-0002")
	require.NoError(t, err)

	_, err = b.AddItem("B", "2", 1, dec("20"), dec("0"))
	require.NoError(t, err)

	assert.Len(t, bill.Items, 1)
	assert.True(t, dec("10").Equal(bill.Total))
}

func TestFreezeEmptyBill(t *testing.T) {
	_, err := NewBuilder().Freeze(types.Customer{Name: "Nobody"}, types.Taxes{}, "SS-0001")
	assert.True(t, errors.Is(err, ErrEmptyBill))
}
