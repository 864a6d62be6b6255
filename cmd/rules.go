package cmd

import (
	"github.com/huangsam/appraise/core"
	"github.com/huangsam/appraise/internal/contract"
	"github.com/spf13/cobra"
)

// rulesCmd prints the active rule sets.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the scoring rules and weights of every task type.",
	Long: `Print the rule set used for each task type: metric id, category, kind, unit
and weight.

Weights come from the built-in defaults (20 per metric) and can be overridden
in the config file:

  weights:
    plan_specificity: 30
    delay_days: 10

A warning is printed when the weights of a rule set do not add up to 100.

Examples:
  # Show the active rules
  appraise rules

  # Rules as JSON
  appraise rules --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRules(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot print rules", err)
		}
	},
}
