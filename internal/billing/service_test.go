package billing

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/godopgaming/bill-genertor/internal/bill"
	"github.com/godopgaming/bill-genertor/internal/billing/mocks"
	"github.com/godopgaming/bill-genertor/internal/invoice"
	"github.com/godopgaming/bill-genertor/internal/ledger"
	"github.com/godopgaming/bill-genertor/internal/logging"
	"github.com/godopgaming/bill-genertor/internal/transactions"
	"github.com/godopgaming/bill-genertor/internal/types"
)

var (
	fixedNow = time.Date(2025, time.April, 9, 14, 30, 15, 0, time.Local)
	customer = types.Customer{Name: "Ravi Traders", GSTIN: "22AAAAA0000A1Z5", Address: "Indore"}
	taxes    = types.Taxes{CGSTPercent: decimal.NewFromInt(9), SGSTPercent: decimal.NewFromInt(9)}
)

func builderWithItem(t *testing.T) *bill.Builder {
	t.Helper()
	b := bill.NewBuilderWithClock(func() time.Time { return fixedNow })
	_, err := b.AddItem("Hose pipe", "4009", 2, decimal.NewFromInt(100), decimal.NewFromInt(18))
	require.NoError(t, err)
	return b
}

func TestSave(t *testing.T) {
	diskFull := errors.New("disk full")
	locked := errors.New("workbook locked")

	testCases := []struct {
		name              string
		ledgerErr         error
		mirrorErr         error
		expectSuccess     bool
		expectPartial     bool
		expectedErrorText []string
	}{
		{
			name:          "both_stores_written",
			expectSuccess: true,
		},
		{
			name:              "ledger_fails_mirror_written",
			ledgerErr:         diskFull,
			expectPartial:     true,
			expectedErrorText: []string{"disk full"},
		},
		{
			name:              "mirror_fails_ledger_written",
			mirrorErr:         locked,
			expectPartial:     true,
			expectedErrorText: []string{"workbook locked"},
		},
		{
			name:              "both_fail",
			ledgerErr:         diskFull,
			mirrorErr:         locked,
			expectedErrorText: []string{"disk full", "workbook locked"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockLedger := mocks.NewMockLedger(ctrl)
			mockMirror := mocks.NewMockMirror(ctrl)
			mockNumberer := mocks.NewMockNumberer(ctrl)
			service := NewService(mockLedger, mockMirror, mockNumberer, logging.Nop())

			var ledgerBill, mirrorBill types.Bill
			mockNumberer.EXPECT().Current().Return("SS-0001")
			mockLedger.EXPECT().FindByInvoiceNumber("SS-0001").Return(types.Bill{}, false, nil)
			mockLedger.EXPECT().Append(gomock.Any()).DoAndReturn(func(b types.Bill) error {
				ledgerBill = b
				return tc.ledgerErr
			})
			// The mirror is attempted even when the ledger write fails.
			mockMirror.EXPECT().Append(gomock.Any()).DoAndReturn(func(b types.Bill) error {
				mirrorBill = b
				return tc.mirrorErr
			})

			builder := builderWithItem(t)
			result, err := service.Save(builder, customer, taxes)

			assert.Equal(t, tc.expectSuccess, result.Success())
			assert.Equal(t, tc.expectPartial, result.Partial())
			assert.Equal(t, tc.ledgerErr, result.LedgerErr)
			assert.Equal(t, tc.mirrorErr, result.MirrorErr)
			if tc.expectSuccess {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				for _, text := range tc.expectedErrorText {
					assert.Contains(t, err.Error(), text)
				}
			}

			assert.Equal(t, "SS-0001", result.Bill.InvoiceNumber)
			assert.Equal(t, "236", result.Bill.Total.String())
			assert.Equal(t, result.Bill, ledgerBill)
			assert.Equal(t, result.Bill, mirrorBill)
			assert.Equal(t, 1, builder.Len(), "save does not clear the builder")
		})
	}
}

func TestSaveWritesNothing(t *testing.T) {
	corrupt := &types.CorruptStoreError{Store: types.StoreLedger, Path: "bills.json", Err: errors.New("bad json")}

	testCases := []struct {
		name          string
		builder       func(t *testing.T) *bill.Builder
		setupLedger   func(m *mocks.MockLedger)
		expectedError error
	}{
		{
			name:          "empty_bill",
			builder:       func(t *testing.T) *bill.Builder { return bill.NewBuilder() },
			setupLedger:   func(m *mocks.MockLedger) {},
			expectedError: bill.ErrEmptyBill,
		},
		{
			name:    "duplicate_invoice",
			builder: builderWithItem,
			setupLedger: func(m *mocks.MockLedger) {
				m.EXPECT().FindByInvoiceNumber("SS-0001").Return(types.Bill{InvoiceNumber: "SS-0001"}, true, nil)
			},
			expectedError: ErrDuplicateInvoice,
		},
		{
			name:    "corrupt_ledger",
			builder: builderWithItem,
			setupLedger: func(m *mocks.MockLedger) {
				m.EXPECT().FindByInvoiceNumber("SS-0001").Return(types.Bill{}, false, corrupt)
			},
			expectedError: corrupt,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockLedger := mocks.NewMockLedger(ctrl)
			mockMirror := mocks.NewMockMirror(ctrl)
			mockNumberer := mocks.NewMockNumberer(ctrl)
			service := NewService(mockLedger, mockMirror, mockNumberer, logging.Nop())

			mockNumberer.EXPECT().Current().Return("SS-0001")
			tc.setupLedger(mockLedger)
			// No Append expectations: any write fails the test.

			result, err := service.Save(tc.builder(t), customer, taxes)

			require.Error(t, err)
			assert.ErrorIs(t, err, tc.expectedError)
			assert.Empty(t, result.Bill.InvoiceNumber)
		})
	}
}

func TestReset(t *testing.T) {
	t.Run("advances_and_clears", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockNumberer := mocks.NewMockNumberer(ctrl)
		service := NewService(mocks.NewMockLedger(ctrl), mocks.NewMockMirror(ctrl), mockNumberer, logging.Nop())

		mockNumberer.EXPECT().Advance().Return("SS-0002", nil)

		builder := builderWithItem(t)
		next, err := service.Reset(builder)

		require.NoError(t, err)
		assert.Equal(t, "SS-0002", next)
		assert.Equal(t, 0, builder.Len())
	})

	t.Run("advance_fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockNumberer := mocks.NewMockNumberer(ctrl)
		service := NewService(mocks.NewMockLedger(ctrl), mocks.NewMockMirror(ctrl), mockNumberer, logging.Nop())

		gomock.InOrder(
			mockNumberer.EXPECT().Advance().Return("", errors.New("read-only filesystem")),
			mockNumberer.EXPECT().Current().Return("SS-0001"),
		)

		next, err := service.Reset(builderWithItem(t))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "read-only filesystem")
		assert.Equal(t, "SS-0001", next)
	})
}

func TestSaveAndResetWithFileStores(t *testing.T) {
	dir := t.TempDir()
	ledgerStore := ledger.New(filepath.Join(dir, "bills.json"), logging.Nop())
	mirror := transactions.New(filepath.Join(dir, "transactions.xlsx"), logging.Nop())
	numberer := invoice.NewNumberer(invoice.NewFileCounterStore(filepath.Join(dir, "invoice_counter.json")), "SS", logging.Nop())
	service := NewService(ledgerStore, mirror, numberer, logging.Nop())

	assert.Equal(t, "SS-0001", service.InvoiceNumber())

	builder := builderWithItem(t)
	result, err := service.Save(builder, customer, taxes)
	require.NoError(t, err)
	assert.Equal(t, "236", result.Bill.Total.String())

	// Saving again without a reset would duplicate the invoice.
	_, err = service.Save(builder, customer, taxes)
	require.ErrorIs(t, err, ErrDuplicateInvoice)

	next, err := service.Reset(builder)
	require.NoError(t, err)
	assert.Equal(t, "SS-0002", next)

	_, err = builder.AddItem("Coupling", "7307", 3, decimal.NewFromInt(50), decimal.NewFromInt(12))
	require.NoError(t, err)
	_, err = service.Save(builder, customer, taxes)
	require.NoError(t, err)

	bills, err := ledgerStore.LoadAll()
	require.NoError(t, err)
	require.Len(t, bills, 2)
	assert.Equal(t, "SS-0001", bills[0].InvoiceNumber)
	assert.Equal(t, "SS-0002", bills[1].InvoiceNumber)

	records, err := mirror.Records()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "SS-0002", records[1].InvoiceNumber)
}
