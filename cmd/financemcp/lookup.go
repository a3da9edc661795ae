package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seenimoa/financemcp/internal/analysis/sector"
)

// --- Lookup Commands ---

var companiesCmd = &cobra.Command{
	Use:   "companies [sector]",
	Short: "List major companies in a sector",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(svc.ListCompaniesInSector(cmd.Context(), args[0]))
	},
}

var financialsCmd = &cobra.Command{
	Use:   "financials [ticker]",
	Short: "Show the last 4 annual income statements of a company",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(svc.GetCompanyFinancials(cmd.Context(), args[0]))
	},
}

var newsCmd = &cobra.Command{
	Use:   "news [company]",
	Short: "Show recent news articles about a company",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(svc.GetCompanyNews(cmd.Context(), strings.Join(args, " ")))
	},
}

var trendsCmd = &cobra.Command{
	Use:   "trends [sector]",
	Short: "Aggregate revenue and net income trends across a sector",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		if limit < 1 || strings.TrimSpace(args[0]) == "" {
			fmt.Println(svc.GetSectorFinancialTrends(cmd.Context(), args[0], limit))
			return
		}

		sum := svc.SectorSummary(cmd.Context(), args[0], limit)
		fmt.Println(sum.Render())
		if len(sum.Skipped) > 0 {
			fmt.Fprintf(os.Stderr, "\nskipped (no statements): %s\n", strings.Join(sum.Skipped, ", "))
		}
	},
}

func init() {
	trendsCmd.Flags().Int("limit", sector.DefaultCompanyLimit, "number of companies to include")
}
