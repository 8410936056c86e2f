// =============================================================================
// Bill Generator - Monthly Export
// =============================================================================
//
// Appends one summary row per bill to a workbook named after the current
// month, e.g. monthly_reports/April_2025.xlsx. A new month starts a new file.
//
// WORKBOOK STRUCTURE (first sheet):
//
//   | Invoice No | Date | Customer Name | Phone | Address | Item Details | Subtotal | CGST | SGST | Total |
//
//   Item Details lists every item as "name(qtyxrate)", joined by ", ".
//   Subtotal is the pre-GST sum of quantity * rate.
//
// =============================================================================

package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/godopgaming/bill-genertor/internal/logging"
	"github.com/godopgaming/bill-genertor/internal/types"
	"github.com/godopgaming/bill-genertor/pkg/utils"
)

// Columns is the header row of a monthly workbook.
var Columns = []string{
	"Invoice No", "Date", "Customer Name", "Phone", "Address",
	"Item Details", "Subtotal", "CGST", "SGST", "Total",
}

// ItemDetails renders the items of bill as a single cell value.
func ItemDetails(bill types.Bill) string {
	parts := make([]string, 0, len(bill.Items))
	for _, item := range bill.Items {
		parts = append(parts, fmt.Sprintf("%s(%dx%s)", item.Name, item.Quantity, item.Rate.String()))
	}
	return strings.Join(parts, ", ")
}

// Row returns the cell values for bill in Columns order.
func Row(bill types.Bill) []interface{} {
	return []interface{}{
		bill.InvoiceNumber,
		bill.Date.Format(types.DateLayout),
		bill.CustomerName,
		bill.CustomerPhone,
		bill.CustomerAddress,
		ItemDetails(bill),
		bill.Subtotal().InexactFloat64(),
		bill.CGSTPercent.InexactFloat64(),
		bill.SGSTPercent.InexactFloat64(),
		bill.Total.InexactFloat64(),
	}
}

// Monthly writes bills into the workbook for the current month.
type Monthly struct {
	files  *utils.FileManager
	now    func() time.Time
	logger logging.Logger
}

// NewMonthly returns a Monthly exporter using the wall clock.
func NewMonthly(files *utils.FileManager, logger logging.Logger) *Monthly {
	return NewMonthlyWithClock(files, time.Now, logger)
}

// NewMonthlyWithClock returns a Monthly exporter that picks the month from now.
func NewMonthlyWithClock(files *utils.FileManager, now func() time.Time, logger logging.Logger) *Monthly {
	return &Monthly{files: files, now: now, logger: logger}
}

// Append adds a row for bill to this month's workbook, creating the reports
// directory and workbook as needed.
//
// RETURNS:
//   - string: the workbook path
//   - error: *types.CorruptStoreError when the existing workbook cannot be
//     read, *types.StorageWriteError when it cannot be written
func (m *Monthly) Append(bill types.Bill) (string, error) {
	path := m.files.MonthlyReportPath(m.now())

	if err := m.files.EnsureDirectories(); err != nil {
		return path, &types.StorageWriteError{Store: types.StoreMonthly, Path: path, Err: err}
	}

	f, sheet, next, err := m.open(path)
	if err != nil {
		return path, err
	}
	defer f.Close()

	cell, err := excelize.CoordinatesToCellName(1, next)
	if err != nil {
		return path, fmt.Errorf("failed to address row %d: %w", next, err)
	}
	values := Row(bill)
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return path, fmt.Errorf("failed to set row %d: %w", next, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return path, &types.StorageWriteError{Store: types.StoreMonthly, Path: path, Err: err}
	}
	if err := utils.WriteFileAtomic(path, buf.Bytes(), 0644); err != nil {
		return path, &types.StorageWriteError{Store: types.StoreMonthly, Path: path, Err: err}
	}

	m.logger.Info("bill exported", "invoice", bill.InvoiceNumber, "path", path)
	return path, nil
}

// open returns the workbook at path and the next free row number, creating a
// workbook with the header row when the file does not exist.
func (m *Monthly) open(path string) (*excelize.File, string, int, error) {
	data, ok, err := utils.ReadFileIfExists(path)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to read monthly report: %w", err)
	}

	if !ok {
		f := excelize.NewFile()
		sheet := f.GetSheetName(0)
		header := make([]interface{}, len(Columns))
		for i, c := range Columns {
			header[i] = c
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			f.Close()
			return nil, "", 0, fmt.Errorf("failed to write header: %w", err)
		}
		return f, sheet, 2, nil
	}

	corrupt := func(err error) error {
		return &types.CorruptStoreError{Store: types.StoreMonthly, Path: path, Err: err}
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, "", 0, corrupt(err)
	}
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		f.Close()
		return nil, "", 0, corrupt(err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 || rows[0][0] != Columns[0] {
		f.Close()
		return nil, "", 0, corrupt(fmt.Errorf("unexpected header row"))
	}

	return f, sheet, len(rows) + 1, nil
}
