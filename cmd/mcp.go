package cmd

import (
	"github.com/huangsam/covidash/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [file]",
	Short: "Start the covidash MCP server",
	Long:  `Launch an MCP server that allows AI agents to slice the COVID-19 dataset via standard tools.`,
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Handlers never print headers, stdio carries the protocol.
		return sharedSetup(rootCtx, cmd, args, false)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, datasetManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
