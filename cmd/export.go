// =============================================================================
// Bill Generator - Export Command
// =============================================================================
//
// COMMAND USAGE:
//   billgen export monthly <invoice>...
//
// Appends one summary row per saved bill to this month's report workbook
// (<reports_dir>/<Month>_<Year>.xlsx).
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export bills to report workbooks",
}

var exportMonthlyCmd = &cobra.Command{
	Use:   "monthly <invoice>...",
	Short: "Append saved bills to this month's report",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		for _, invoiceNumber := range args {
			found, ok, err := application.index.ByInvoiceNumber(invoiceNumber)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no bill with invoice number %s", invoiceNumber)
			}

			path, err := application.monthly.Append(found)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s exported to %s\n", invoiceNumber, path)
		}
		return nil
	},
}

func init() {
	exportCmd.AddCommand(exportMonthlyCmd)
	rootCmd.AddCommand(exportCmd)
}
