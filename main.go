// =============================================================================
// Bill Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Bill Generator CLI application. It
// delegates command execution to the cmd package.
//
// USAGE:
//   billgen invoice current|next   - show or advance the invoice number
//   billgen bill save|show         - save a bill, print a saved bill
//   billgen search                 - search saved bills
//   billgen export monthly         - append bills to this month's report
//   billgen transactions list      - list the per-item transaction records
//   billgen version                - display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : billing domain (not for external import)
//   - pkg/       : shared file utilities
//
// =============================================================================

package main

import (
	"github.com/godopgaming/bill-genertor/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
