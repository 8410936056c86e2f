// =============================================================================
// Bill Generator - Invoice Command
// =============================================================================
//
// COMMAND USAGE:
//   billgen invoice current   - print the number the next saved bill will use
//   billgen invoice next      - move on to the next invoice number
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/godopgaming/bill-genertor/internal/bill"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Show or advance the invoice number",
}

var invoiceCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the current invoice number",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), application.service.InvoiceNumber())
		return nil
	},
}

var invoiceNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Advance to the next invoice number",
	Long: `Advance to the next invoice number, the same as resetting the bill form.
The new counter is persisted before it is printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		next, err := application.service.Reset(bill.NewBuilder())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), next)
		return nil
	},
}

func init() {
	invoiceCmd.AddCommand(invoiceCurrentCmd)
	invoiceCmd.AddCommand(invoiceNextCmd)
	rootCmd.AddCommand(invoiceCmd)
}
