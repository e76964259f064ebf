package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsClient string

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show billing history statistics",
	Long: `Show statistics from the local history database: how many invoices
were recorded, the total billed amount and the last journal export.

Example:
  agency-billing stats
  agency-billing stats --client 株式会社サンライズ企画`,
	Run: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsClient, "client", "", "Also list invoice history for this client")
}

func runStats(cmd *cobra.Command, args []string) {
	a, err := newApp()
	exitOnError(err, "failed to initialize")

	conn, history, err := a.openHistory()
	exitOnError(err, "failed to open history database")
	defer conn.Close()

	stats, err := history.GetStats()
	exitOnError(err, "failed to get statistics")

	fmt.Println("=== Billing Statistics ===")
	fmt.Printf("Recorded invoices: %d\n", stats.TotalInvoices)
	fmt.Printf("Total billed:      ¥%d\n", stats.TotalBilled)
	fmt.Printf("Journal exports:   %d\n", stats.TotalExports)
	if stats.LastExport.Valid {
		fmt.Printf("Last export:       %s\n", stats.LastExport.String)
	}

	if statsClient != "" {
		records, err := history.GetInvoicesByClient(statsClient)
		exitOnError(err, "failed to get invoice history")

		fmt.Printf("\n=== %s ===\n", statsClient)
		if len(records) == 0 {
			fmt.Println("No recorded invoices")
			return
		}
		for _, record := range records {
			issued := "draft"
			if record.IssuedAt.Valid {
				issued = record.IssuedAt.String
			}
			fmt.Printf("%s  %s  %d items  ¥%d  (%s, %s)\n",
				record.BillingMonth, record.InvoiceNumber, record.ItemCount,
				record.TotalAmount, record.Status, issued)
		}
	}
}
