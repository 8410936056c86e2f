// =============================================================================
// Bill Generator - Console Output
// =============================================================================
//
// Table printers shared by the subcommands. All output goes to the command's
// configured writer so it can be captured.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/godopgaming/bill-genertor/internal/billing"
	"github.com/godopgaming/bill-genertor/internal/transactions"
	"github.com/godopgaming/bill-genertor/internal/types"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// printBill prints one bill with its items and totals.
func printBill(w io.Writer, bill types.Bill) {
	fmt.Fprintf(w, "Invoice No: %s\n", bill.InvoiceNumber)
	fmt.Fprintf(w, "Date:       %s\n", bill.Date.Format(types.DateLayout))
	fmt.Fprintf(w, "Customer:   %s\n", bill.CustomerName)
	if bill.CustomerGST != "" {
		fmt.Fprintf(w, "GSTIN:      %s\n", bill.CustomerGST)
	}
	if bill.CustomerPhone != "" {
		fmt.Fprintf(w, "Phone:      %s\n", bill.CustomerPhone)
	}
	if bill.CustomerAddress != "" {
		fmt.Fprintf(w, "Address:    %s\n", strings.ReplaceAll(bill.CustomerAddress, "\n", ", "))
	}
	fmt.Fprintln(w)

	tw := newTable(w)
	fmt.Fprintln(tw, "#\tITEM\tHSN\tQTY\tRATE\tGST %\tAMOUNT")
	for i, item := range bill.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
			i+1, item.Name, item.HSNCode, item.Quantity,
			types.Money(item.Rate), item.GSTPercent.String(), types.Money(item.LineTotal))
	}
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Subtotal: %s\n", types.Money(bill.Subtotal()))
	fmt.Fprintf(w, "CGST %%:   %s\n", bill.CGSTPercent.String())
	fmt.Fprintf(w, "SGST %%:   %s\n", bill.SGSTPercent.String())
	fmt.Fprintf(w, "Total:    %s\n", types.Money(bill.Total))
}

// printBills prints a one-line summary per bill.
func printBills(w io.Writer, bills []types.Bill) {
	if len(bills) == 0 {
		fmt.Fprintln(w, "No bills found.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "INVOICE NO\tDATE\tCUSTOMER\tGSTIN\tTOTAL")
	for _, bill := range bills {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			bill.InvoiceNumber, bill.Date.Format(types.DateLayout), bill.CustomerName,
			bill.CustomerGST, types.Money(bill.Total))
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d bill(s)\n", len(bills))
}

// printRecords prints transaction rows.
func printRecords(w io.Writer, records []transactions.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No transactions recorded.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "INVOICE NO\tDATE\tCUSTOMER\tITEM\tQTY\tRATE\tITEM TOTAL\tBILL TOTAL")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			r.InvoiceNumber, r.Date.Format(types.DateLayout), r.Customer, r.Item,
			r.Quantity, types.Money(r.Rate), types.Money(r.ItemTotal), types.Money(r.BillTotal))
	}
	tw.Flush()
}

// printSaveResult reports the outcome of each store separately.
func printSaveResult(w io.Writer, result billing.SaveResult) {
	status := func(err error) string {
		if err == nil {
			return "saved"
		}
		return "FAILED: " + err.Error()
	}

	fmt.Fprintf(w, "Ledger:       %s\n", status(result.LedgerErr))
	fmt.Fprintf(w, "Transactions: %s\n", status(result.MirrorErr))
	if result.Partial() {
		fmt.Fprintf(w, "Bill %s is only partially saved; reconcile the failed store manually.\n", result.Bill.InvoiceNumber)
	}
}
