// =============================================================================
// Bill Generator - Bill Command
// =============================================================================
//
// COMMAND USAGE:
//   billgen bill save [flags]          - build a bill from --item flags and save it
//   billgen bill show <invoice> [--pdf] - print a saved bill, optionally as PDF
//
// ITEM FORMAT:
//   --item "name|hsn|quantity|rate|gst%"   (repeatable, kept in order)
//   e.g. --item "Hose pipe|4009|2|100|18"
//
// SAVE FLOW:
//   1. Every --item is validated and added to a new bill
//   2. The bill is saved under the current invoice number
//      (ledger and transaction workbook, reported separately)
//   3. --export appends it to this month's report
//   4. --pdf writes the rendered invoice
//   5. --reset advances to the next invoice number, only after a full save
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/godopgaming/bill-genertor/internal/bill"
	"github.com/godopgaming/bill-genertor/internal/types"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// saveOptions holds the flags of 'bill save'.
type saveOptions struct {
	customer string
	gstin    string
	address  string
	phone    string
	cgst     string
	sgst     string
	items    []string
	reset    bool
	export   bool
	pdf      string
}

var saveOpts saveOptions

// showPDF is the output path of 'bill show --pdf'.
var showPDF string

// =============================================================================
// COMMAND DEFINITIONS
// =============================================================================

var billCmd = &cobra.Command{
	Use:   "bill",
	Short: "Save and show bills",
}

var billSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a bill under the current invoice number",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSave(cmd, saveOpts)
	},
}

var billShowCmd = &cobra.Command{
	Use:   "show <invoice>",
	Short: "Print a saved bill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		found, ok, err := application.index.ByInvoiceNumber(args[0])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(out, "No bill with invoice number %s.\n", args[0])
			return nil
		}

		printBill(out, found)
		if showPDF != "" {
			if err := application.writePDF(showPDF, found); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nPDF written to %s\n", showPDF)
		}
		return nil
	},
}

func init() {
	flags := billSaveCmd.Flags()
	flags.StringVar(&saveOpts.customer, "customer", "", "Customer name")
	flags.StringVar(&saveOpts.gstin, "gstin", "", "Customer GSTIN")
	flags.StringVar(&saveOpts.address, "address", "", "Customer address")
	flags.StringVar(&saveOpts.phone, "phone", "", "Customer phone")
	flags.StringVar(&saveOpts.cgst, "cgst", "0", "CGST percent recorded on the bill")
	flags.StringVar(&saveOpts.sgst, "sgst", "0", "SGST percent recorded on the bill")
	flags.StringArrayVar(&saveOpts.items, "item", nil, `Line item as "name|hsn|quantity|rate|gst%" (repeatable)`)
	flags.BoolVar(&saveOpts.reset, "reset", false, "Advance to the next invoice number after a successful save")
	flags.BoolVar(&saveOpts.export, "export", false, "Also append the bill to this month's report")
	flags.StringVar(&saveOpts.pdf, "pdf", "", "Write the rendered invoice to this PDF file")

	billShowCmd.Flags().StringVar(&showPDF, "pdf", "", "Write the rendered invoice to this PDF file")

	billCmd.AddCommand(billSaveCmd)
	billCmd.AddCommand(billShowCmd)
	rootCmd.AddCommand(billCmd)
}

// =============================================================================
// SAVE
// =============================================================================

func runSave(cmd *cobra.Command, opts saveOptions) error {
	out := cmd.OutOrStdout()

	taxes, err := parseTaxes(opts.cgst, opts.sgst)
	if err != nil {
		return err
	}

	builder := bill.NewBuilder()
	for i, raw := range opts.items {
		in, err := parseItem(raw)
		if err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
		if _, err := builder.AddItem(in.name, in.hsn, in.quantity, in.rate, in.gst); err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
	}

	customer := types.Customer{
		Name:    opts.customer,
		GSTIN:   opts.gstin,
		Address: opts.address,
		Phone:   opts.phone,
	}

	result, err := application.service.Save(builder, customer, taxes)
	if errors.Is(err, bill.ErrEmptyBill) {
		return fmt.Errorf("%w: add at least one --item", err)
	}
	if result.Bill.InvoiceNumber == "" {
		return err
	}

	printBill(out, result.Bill)
	fmt.Fprintln(out)
	printSaveResult(out, result)

	if opts.export && result.LedgerErr == nil {
		path, exportErr := application.monthly.Append(result.Bill)
		if exportErr != nil {
			err = errors.Join(err, exportErr)
		} else {
			fmt.Fprintf(out, "Exported to %s\n", path)
		}
	}

	if opts.pdf != "" {
		if pdfErr := application.writePDF(opts.pdf, result.Bill); pdfErr != nil {
			err = errors.Join(err, pdfErr)
		} else {
			fmt.Fprintf(out, "PDF written to %s\n", opts.pdf)
		}
	}

	if opts.reset {
		if !result.Success() {
			fmt.Fprintf(out, "Invoice number kept at %s because the save was incomplete.\n", result.Bill.InvoiceNumber)
		} else {
			next, resetErr := application.service.Reset(builder)
			if resetErr != nil {
				err = errors.Join(err, resetErr)
			} else {
				fmt.Fprintf(out, "Next invoice number: %s\n", next)
			}
		}
	}

	return err
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// itemFlag is one parsed --item value.
type itemFlag struct {
	name     string
	hsn      string
	quantity int
	rate     decimal.Decimal
	gst      decimal.Decimal
}

// parseItem splits "name|hsn|quantity|rate|gst%". Range checks are left to
// the bill builder.
func parseItem(raw string) (itemFlag, error) {
	parts := strings.Split(raw, "|")
	if len(parts) != 5 {
		return itemFlag{}, fmt.Errorf("expected name|hsn|quantity|rate|gst, got %q", raw)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	quantity, err := strconv.Atoi(parts[2])
	if err != nil {
		return itemFlag{}, fmt.Errorf("invalid quantity %q", parts[2])
	}
	rate, err := decimal.NewFromString(parts[3])
	if err != nil {
		return itemFlag{}, fmt.Errorf("invalid rate %q", parts[3])
	}
	gst, err := decimal.NewFromString(strings.TrimSuffix(parts[4], "%"))
	if err != nil {
		return itemFlag{}, fmt.Errorf("invalid gst %q", parts[4])
	}

	return itemFlag{name: parts[0], hsn: parts[1], quantity: quantity, rate: rate, gst: gst}, nil
}

func parseTaxes(cgst, sgst string) (types.Taxes, error) {
	c, err := decimal.NewFromString(cgst)
	if err != nil {
		return types.Taxes{}, fmt.Errorf("invalid --cgst %q", cgst)
	}
	s, err := decimal.NewFromString(sgst)
	if err != nil {
		return types.Taxes{}, fmt.Errorf("invalid --sgst %q", sgst)
	}
	if c.IsNegative() || s.IsNegative() {
		return types.Taxes{}, fmt.Errorf("tax percentages must not be negative")
	}
	return types.Taxes{CGSTPercent: c, SGSTPercent: s}, nil
}
