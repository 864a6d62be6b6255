package cmd

import (
	"github.com/huangsam/appraise/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:     "mcp",
	Short:   "Start the Appraise MCP server",
	Long:    `Launch an MCP server on stdio that lets AI agents score tasks, rank assignees and record inputs via standard tools.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager, rosterSource)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
