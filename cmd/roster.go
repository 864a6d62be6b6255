package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/internal/roster"
	"github.com/spf13/cobra"
)

// rosterCmd lists the assignees and tasks of the period.
var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "List the assignees and tasks of the period.",
	Long: `Show who is evaluated and on which tasks.

Without --roster the built-in sample roster is used. Use --yaml to print the
active roster in the file format accepted by --roster, which is a handy
starting point for your own roster file.

Examples:
  # Tasks of the current period
  appraise roster

  # Start a roster file from the sample
  appraise roster --yaml > roster.yaml`,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		asYAML, _ := cmd.Flags().GetBool("yaml")
		if asYAML {
			r, ok := rosterSource.(*roster.Roster)
			if !ok {
				contract.LogFatal("Cannot print roster", fmt.Errorf("roster source does not support YAML output"))
			}
			data, err := r.Marshal()
			if err != nil {
				contract.LogFatal("Cannot print roster", err)
			}
			_, _ = os.Stdout.Write(data)
			return
		}
		printRoster(os.Stdout, rosterSource, cfg.Period)
	},
}

func init() {
	rosterCmd.Flags().Bool("yaml", false, "Print the roster as YAML")
}

// printRoster writes every assignee followed by their tasks in the period.
func printRoster(w io.Writer, src contract.RosterSource, period string) {
	_, _ = fmt.Fprintf(w, "📅 Period: %s\n", period)
	for _, a := range src.Assignees() {
		_, _ = fmt.Fprintf(w, "\n%s  %s (%s)\n", a.ID, a.Name, a.Department)
		tasks := roster.TasksFor(src, period, a.ID)
		if len(tasks) == 0 {
			_, _ = fmt.Fprintln(w, "  (no tasks)")
		}
		for _, t := range tasks {
			_, _ = fmt.Fprintf(w, "  - %-6s %-12s %s\n", t.ID, t.Type, t.Name)
		}
	}
}
