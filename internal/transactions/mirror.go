// =============================================================================
// Bill Generator - Transaction Mirror
// =============================================================================
//
// The mirror flattens each saved bill into one row per line item and appends
// the rows to an XLSX workbook used for bookkeeping exports. Bill-level
// fields (invoice number, date, customer, CGST, SGST, bill total) are
// repeated on every row.
//
// WORKBOOK STRUCTURE (first sheet):
//
//   | Invoice No | Date | Customer | GSTIN | Address | Item | HSN | Qty | Rate | Item GST | Item Total | CGST | SGST | Bill Total |
//   |------------|------|----------|-------|---------|------|-----|-----|------|----------|------------|------|------|------------|
//   | SS-0001    | ...  | ...      | ...   | ...     | Hose | 4009| 2   | 100  | 18       | 236        | 9    | 9    | 236        |
//
// RULES:
//   - The workbook is created with the header row on first append.
//   - Rows are only ever appended, never updated or deleted.
//   - One Append writes all of a bill's rows in a single rewrite.
//   - The mirror is independent of the ledger; a failure here does not undo a
//     ledger write and vice versa.
//
// =============================================================================

package transactions

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/godopgaming/bill-genertor/internal/logging"
	"github.com/godopgaming/bill-genertor/internal/types"
	"github.com/godopgaming/bill-genertor/pkg/utils"
)

// =============================================================================
// RECORD STRUCTURE
// =============================================================================

// Columns is the fixed header row of the workbook.
var Columns = []string{
	"Invoice No", "Date", "Customer", "GSTIN", "Address",
	"Item", "HSN", "Qty", "Rate", "Item GST", "Item Total",
	"CGST", "SGST", "Bill Total",
}

// Record is one (bill, line item) row.
type Record struct {
	InvoiceNumber string
	Date          time.Time
	Customer      string
	GSTIN         string
	Address       string

	Item      string
	HSN       string
	Quantity  int
	Rate      decimal.Decimal
	ItemGST   decimal.Decimal
	ItemTotal decimal.Decimal

	CGST      decimal.Decimal
	SGST      decimal.Decimal
	BillTotal decimal.Decimal
}

// RecordsFor expands bill into one Record per line item, in item order.
func RecordsFor(bill types.Bill) []Record {
	records := make([]Record, 0, len(bill.Items))
	for _, item := range bill.Items {
		records = append(records, Record{
			InvoiceNumber: bill.InvoiceNumber,
			Date:          bill.Date,
			Customer:      bill.CustomerName,
			GSTIN:         bill.CustomerGST,
			Address:       bill.CustomerAddress,
			Item:          item.Name,
			HSN:           item.HSNCode,
			Quantity:      item.Quantity,
			Rate:          item.Rate,
			ItemGST:       item.GSTPercent,
			ItemTotal:     item.LineTotal,
			CGST:          bill.CGSTPercent,
			SGST:          bill.SGSTPercent,
			BillTotal:     bill.Total,
		})
	}
	return records
}

// row converts the record to cell values in Columns order. Amounts are
// written as numbers so the sheet can be summed.
func (r Record) row() []interface{} {
	return []interface{}{
		r.InvoiceNumber,
		r.Date.Format(types.DateLayout),
		r.Customer,
		r.GSTIN,
		r.Address,
		r.Item,
		r.HSN,
		r.Quantity,
		r.Rate.InexactFloat64(),
		r.ItemGST.InexactFloat64(),
		r.ItemTotal.InexactFloat64(),
		r.CGST.InexactFloat64(),
		r.SGST.InexactFloat64(),
		r.BillTotal.InexactFloat64(),
	}
}

// =============================================================================
// MIRROR
// =============================================================================

// Mirror appends transaction records to an XLSX workbook.
type Mirror struct {
	path   string
	logger logging.Logger
}

// New returns a Mirror writing to path.
func New(path string, logger logging.Logger) *Mirror {
	return &Mirror{path: path, logger: logger}
}

// Path returns the workbook path.
func (m *Mirror) Path() string { return m.path }

// Append writes one row per line item of bill after the existing rows.
func (m *Mirror) Append(bill types.Bill) error {
	f, sheet, rows, err := m.open()
	if err != nil {
		return err
	}
	defer f.Close()

	next := len(rows) + 1
	records := RecordsFor(bill)
	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, next+i)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", next+i, err)
		}
		values := record.row()
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to set row %d: %w", next+i, err)
		}
	}

	if err := m.save(f); err != nil {
		return err
	}

	m.logger.Debug("transactions appended", "invoice", bill.InvoiceNumber, "rows", len(records))
	return nil
}

// Records reads every data row back. A missing workbook has no records.
func (m *Mirror) Records() ([]Record, error) {
	data, ok, err := utils.ReadFileIfExists(m.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	if !ok {
		return []Record{}, nil
	}

	f, _, rows, err := m.parse(data)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records := make([]Record, 0, len(rows))
	for i, row := range rows[1:] {
		record, err := parseRow(row)
		if err != nil {
			return nil, m.corrupt(fmt.Errorf("row %d: %w", i+2, err))
		}
		records = append(records, record)
	}
	return records, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// open loads the workbook, or creates a new one with the header row when the
// file does not exist yet. rows always includes the header row.
func (m *Mirror) open() (*excelize.File, string, [][]string, error) {
	data, ok, err := utils.ReadFileIfExists(m.path)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	if ok {
		return m.parse(data)
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		f.Close()
		return nil, "", nil, fmt.Errorf("failed to write header: %w", err)
	}

	m.logger.Info("created transactions workbook", "path", m.path)
	return f, sheet, [][]string{Columns}, nil
}

// parse opens workbook bytes and checks the header row.
func (m *Mirror) parse(data []byte) (*excelize.File, string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, "", nil, m.corrupt(err)
	}

	sheet := f.GetSheetName(0)
	if sheet == "" {
		f.Close()
		return nil, "", nil, m.corrupt(fmt.Errorf("workbook has no sheets"))
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		f.Close()
		return nil, "", nil, m.corrupt(err)
	}

	if len(rows) == 0 {
		f.Close()
		return nil, "", nil, m.corrupt(fmt.Errorf("missing header row"))
	}
	if !headerMatches(rows[0]) {
		f.Close()
		return nil, "", nil, m.corrupt(fmt.Errorf("unexpected header row %q", rows[0]))
	}

	return f, sheet, rows, nil
}

func (m *Mirror) save(f *excelize.File) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return &types.StorageWriteError{Store: types.StoreTransactions, Path: m.path, Err: err}
	}
	if err := utils.WriteFileAtomic(m.path, buf.Bytes(), 0644); err != nil {
		return &types.StorageWriteError{Store: types.StoreTransactions, Path: m.path, Err: err}
	}
	return nil
}

func (m *Mirror) corrupt(err error) error {
	return &types.CorruptStoreError{Store: types.StoreTransactions, Path: m.path, Err: err}
}

func headerMatches(row []string) bool {
	if len(row) < len(Columns) {
		return false
	}
	for i, c := range Columns {
		if row[i] != c {
			return false
		}
	}
	return true
}

// parseRow converts a data row back into a Record. Missing trailing cells are
// treated as empty.
func parseRow(row []string) (Record, error) {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	number := func(i int) (decimal.Decimal, error) {
		if cell(i) == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(cell(i))
		if err != nil {
			return decimal.Zero, fmt.Errorf("column %q: %w", Columns[i], err)
		}
		return d, nil
	}

	record := Record{
		InvoiceNumber: cell(0),
		Customer:      cell(2),
		GSTIN:         cell(3),
		Address:       cell(4),
		Item:          cell(5),
		HSN:           cell(6),
	}

	date, err := time.ParseInLocation(types.DateLayout, cell(1), time.Local)
	if err != nil {
		return Record{}, fmt.Errorf("column %q: %w", Columns[1], err)
	}
	record.Date = date

	if record.Quantity, err = strconv.Atoi(cell(7)); err != nil {
		return Record{}, fmt.Errorf("column %q: %w", Columns[7], err)
	}

	decimals := []*decimal.Decimal{&record.Rate, &record.ItemGST, &record.ItemTotal, &record.CGST, &record.SGST, &record.BillTotal}
	for i, target := range decimals {
		if *target, err = number(8 + i); err != nil {
			return Record{}, err
		}
	}

	return record, nil
}
