// =============================================================================
// Bill Generator - Search Command
// =============================================================================
//
// COMMAND USAGE:
//   billgen search [--invoice N] [--customer TEXT] [--from DATE] [--to DATE] [--this-month]
//
// All given filters must match. Dates are YYYY-MM-DD and inclusive. With
// --from or --to set, a missing bound takes the current month default (first
// of the month / today); --this-month applies both defaults. With no filters
// every bill is listed.
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/godopgaming/bill-genertor/internal/search"
)

// searchOptions holds the flags of 'search'.
type searchOptions struct {
	invoice   string
	customer  string
	from      string
	to        string
	thisMonth bool
}

var searchOpts searchOptions

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search saved bills",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		criteria, err := searchCriteria(searchOpts)
		if err != nil {
			return err
		}

		application.logger.Debug("searching ledger", "criteria", fmt.Sprint(criteria))
		bills, err := application.index.Combined(criteria...)
		if err != nil {
			return err
		}

		printBills(cmd.OutOrStdout(), bills)
		return nil
	},
}

func init() {
	flags := searchCmd.Flags()
	flags.StringVar(&searchOpts.invoice, "invoice", "", "Exact invoice number")
	flags.StringVar(&searchOpts.customer, "customer", "", "Case-insensitive part of the customer name")
	flags.StringVar(&searchOpts.from, "from", "", "First day of the date range (YYYY-MM-DD)")
	flags.StringVar(&searchOpts.to, "to", "", "Last day of the date range (YYYY-MM-DD)")
	flags.BoolVar(&searchOpts.thisMonth, "this-month", false, "Only bills from the first of this month to today")

	rootCmd.AddCommand(searchCmd)
}

// searchCriteria turns the flags into search criteria.
func searchCriteria(opts searchOptions) ([]search.Criterion, error) {
	var criteria []search.Criterion

	if opts.invoice != "" {
		criteria = append(criteria, search.ByInvoiceNumber{Number: opts.invoice})
	}
	if opts.customer != "" {
		criteria = append(criteria, search.ByCustomer{Text: opts.customer})
	}

	if opts.thisMonth || opts.from != "" || opts.to != "" {
		from, err := parseDay(opts.from, "--from")
		if err != nil {
			return nil, err
		}
		to, err := parseDay(opts.to, "--to")
		if err != nil {
			return nil, err
		}
		if !from.IsZero() && !to.IsZero() && to.Before(from) {
			return nil, fmt.Errorf("--to %s is before --from %s", opts.to, opts.from)
		}
		criteria = append(criteria, search.ByDateRange{From: from, To: to})
	}

	return criteria, nil
}

// parseDay parses YYYY-MM-DD in local time. Empty is the zero time.
func parseDay(value, flag string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: expected YYYY-MM-DD", flag, value)
	}
	return t, nil
}
