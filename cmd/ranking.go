package cmd

import (
	"github.com/huangsam/appraise/core"
	"github.com/huangsam/appraise/internal/contract"
	"github.com/spf13/cobra"
)

// rankingCmd ranks every assignee of the period.
var rankingCmd = &cobra.Command{
	Use:   "ranking",
	Short: "Rank every assignee by comprehensive final score.",
	Long: `Build the comprehensive result of every assignee in the roster and rank them
by final score, highest first. Ties are broken by assignee id.

The summary line shows the grade distribution and the average final score.

Examples:
  # Rank everyone for the current period
  appraise ranking

  # Top three as CSV
  appraise ranking --limit 3 --output csv

  # Keep a Parquet snapshot of the ranking for later analysis
  appraise ranking --period 2025-H1 --parquet-file ranking-2025-H1.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		if err := core.ExecuteRanking(rootCtx, cfg, storeManager, rosterSource); err != nil {
			contract.LogFatal("Cannot rank assignees", err)
		}
		if parquetFile, _ := cmd.Flags().GetString("parquet-file"); parquetFile != "" {
			if err := core.ExecuteRankingExport(rootCtx, cfg, storeManager, rosterSource, parquetFile); err != nil {
				contract.LogFatal("Cannot export ranking", err)
			}
		}
	},
}
