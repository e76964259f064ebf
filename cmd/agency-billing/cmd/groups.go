package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkojima-works/agency-billing/internal/billing"
)

var (
	groupsClient     string
	groupsYear       int
	groupsMonth      int
	groupsIncludeAll bool
)

// groupsCmd represents the groups command.
var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List invoice groups",
	Long: `List the current invoice groups: delivered, not-yet-invoiced line
items partitioned by client and billing month.

Example:
  agency-billing groups
  agency-billing groups --client 株式会社サンライズ企画 --year 2025 --month 8
  agency-billing groups --all`,
	Run: runGroups,
}

func init() {
	groupsCmd.Flags().StringVar(&groupsClient, "client", "", "Filter by client name")
	groupsCmd.Flags().IntVar(&groupsYear, "year", 0, "Filter by billing year (requires --month)")
	groupsCmd.Flags().IntVar(&groupsMonth, "month", 0, "Filter by billing month 1-12 (requires --year)")
	groupsCmd.Flags().BoolVar(&groupsIncludeAll, "all", false, "Include already-invoiced items")
}

func runGroups(cmd *cobra.Command, args []string) {
	a, err := newApp()
	exitOnError(err, "failed to initialize")

	filter := billing.GroupFilter{
		Client:          groupsClient,
		IncludeInvoiced: groupsIncludeAll,
	}
	if groupsYear != 0 {
		filter.Year = groupsYear
		filter.Month = time.Month(groupsMonth)
	}

	groups, err := a.service.Groups(context.Background(), filter)
	exitOnError(err, "failed to compute groups")

	if len(groups) == 0 {
		fmt.Println("No billable groups found")
		return
	}

	for _, group := range groups {
		fmt.Printf("%s  %s  (%d items)  ¥%d\n",
			group.Month, group.Client, group.ItemCount, group.TotalAmount)
		for _, item := range group.Items {
			fmt.Printf("    %s - %s  %d x ¥%d = ¥%d\n",
				item.ProjectName, item.ContentType, item.Quantity, item.UnitPrice, item.Amount)
		}
	}
}
