// =============================================================================
// Bill Generator - PDF Renderer
// =============================================================================
//
// Draws a saved bill as a one-page A4 tax invoice:
//
//   company header (name, tagline, GSTIN, phone, address)
//   invoice number / date, customer block
//   item table: S.No | Item | HSN | Qty | Rate | GST % | Amount
//   subtotal, CGST %, SGST %, total, total in words
//
// The renderer only reads the bill.
//
// =============================================================================

package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/godopgaming/bill-genertor/internal/config"
	"github.com/godopgaming/bill-genertor/internal/types"
)

// column widths in mm, summing to the 190mm printable width
var itemColumns = []struct {
	title string
	width float64
	align string
}{
	{"S.No", 12, "C"},
	{"Item", 62, "L"},
	{"HSN", 22, "C"},
	{"Qty", 16, "R"},
	{"Rate", 26, "R"},
	{"GST %", 18, "R"},
	{"Amount", 34, "R"},
}

// PDF renders bills with a fixed company header.
type PDF struct {
	company config.Company
}

// NewPDF returns a renderer printing company in the header.
func NewPDF(company config.Company) *PDF {
	return &PDF{company: company}
}

// Render writes bill as a PDF document to w.
func (r *PDF) Render(w io.Writer, bill types.Bill) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Invoice "+bill.InvoiceNumber, true)
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	r.header(pdf, tr)
	details(pdf, tr, bill)
	items(pdf, tr, bill)
	totals(pdf, tr, bill)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render invoice %s: %w", bill.InvoiceNumber, err)
	}
	return nil
}

// =============================================================================
// SECTIONS
// =============================================================================

func (r *PDF) header(pdf *gofpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 9, tr(r.company.Name), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	if r.company.Tagline != "" {
		pdf.CellFormat(0, 5, tr(r.company.Tagline), "", 1, "C", false, 0, "")
	}
	if r.company.Address != "" {
		pdf.MultiCell(0, 5, tr(r.company.Address), "", "C", false)
	}

	var contact []string
	if r.company.GSTIN != "" {
		contact = append(contact, "GSTIN: "+r.company.GSTIN)
	}
	if r.company.Phone != "" {
		contact = append(contact, "Phone: "+r.company.Phone)
	}
	if len(contact) > 0 {
		pdf.CellFormat(0, 5, tr(strings.Join(contact, "   ")), "", 1, "C", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, "TAX INVOICE", "TB", 1, "C", false, 0, "")
	pdf.Ln(3)
}

func details(pdf *gofpdf.Fpdf, tr func(string) string, bill types.Bill) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(95, 6, tr("Invoice No: "+bill.InvoiceNumber), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, tr("Date: "+bill.Date.Format(types.DateLayout)), "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr("Bill To: "+bill.CustomerName), "", 1, "L", false, 0, "")
	if bill.CustomerGST != "" {
		pdf.CellFormat(0, 6, tr("GSTIN: "+bill.CustomerGST), "", 1, "L", false, 0, "")
	}
	if bill.CustomerPhone != "" {
		pdf.CellFormat(0, 6, tr("Phone: "+bill.CustomerPhone), "", 1, "L", false, 0, "")
	}
	if bill.CustomerAddress != "" {
		pdf.MultiCell(0, 5, tr("Address: "+bill.CustomerAddress), "", "L", false)
	}
	pdf.Ln(3)
}

func items(pdf *gofpdf.Fpdf, tr func(string) string, bill types.Bill) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range itemColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for i, item := range bill.Items {
		cells := []string{
			strconv.Itoa(i + 1),
			item.Name,
			item.HSNCode,
			strconv.Itoa(item.Quantity),
			types.Money(item.Rate),
			item.GSTPercent.String(),
			types.Money(item.LineTotal),
		}
		for j, col := range itemColumns {
			pdf.CellFormat(col.width, 7, tr(cells[j]), "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func totals(pdf *gofpdf.Fpdf, tr func(string) string, bill types.Bill) {
	labelWidth, valueWidth := 156.0, 34.0
	line := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(labelWidth, 7, label, "1", 0, "R", false, 0, "")
		pdf.CellFormat(valueWidth, 7, value, "1", 1, "R", false, 0, "")
	}

	line("Subtotal", types.Money(bill.Subtotal()), false)
	line("CGST %", bill.CGSTPercent.String(), false)
	line("SGST %", bill.SGSTPercent.String(), false)
	line("Total (Rs.)", types.Money(bill.Total), true)

	pdf.Ln(3)
	pdf.SetFont("Arial", "I", 10)
	pdf.MultiCell(0, 5, tr("Amount in words: "+AmountInWords(bill.Total)), "", "L", false)
}
