// Package cmd provides CLI commands for agency-billing.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkojima-works/agency-billing/internal/logger"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "agency-billing",
	Short: "Monthly billing operations for the agency",
	Long: `agency-billing manages the agency's monthly billing flow on top of
the hosted table store that holds project line items.

It supports:
- Listing invoice groups (delivered, unbilled items per client and month)
- Generating and issuing monthly invoices
- Generating quotes
- Rendering printable HTML/PDF documents
- Exporting accounting journal entries as CSV
- Tracking issued invoices and exports in a local SQLite history

Example:
  agency-billing groups --year 2025 --month 8
  agency-billing invoice --client 株式会社サンライズ企画 --year 2025 --month 8 --issue
  agency-billing export --year 2025 --month 8 --out journal.csv`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logConfig := logger.DefaultConfig()
		if debug {
			logConfig.Level = "debug"
		}
		return logger.Setup(logConfig)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(invoiceCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
}

// getConfigFile returns the explicit config path or "" for default .env loading.
func getConfigFile() string {
	return cfgFile
}

// exitOnError logs the error and exits.
func exitOnError(err error, msg string) {
	if err != nil {
		l := logger.Get()
		l.Error().Err(err).Msg(msg)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
