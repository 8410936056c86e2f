// =============================================================================
// Bill Generator - Transactions Command
// =============================================================================
//
// COMMAND USAGE:
//   billgen transactions list   - print every row of the transaction workbook
//
// =============================================================================

package cmd

import (
	"github.com/spf13/cobra"
)

var transactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "Inspect the transaction workbook",
}

var transactionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every recorded line item",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := application.mirror.Records()
		if err != nil {
			return err
		}
		printRecords(cmd.OutOrStdout(), records)
		return nil
	},
}

func init() {
	transactionsCmd.AddCommand(transactionsListCmd)
	rootCmd.AddCommand(transactionsCmd)
}
