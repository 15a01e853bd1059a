package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/igupta/rivalscope/cmd/rivalscope/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server exposing analysis tools",
	Long: `Start an MCP (Model Context Protocol) server over stdio that exposes
analyze_company, compare_companies and list_history tools.

Configure in an MCP client config:
  {
    "mcpServers": {
      "rivalscope": {
        "command": "rivalscope",
        "args": ["mcp"]
      }
    }
  }
`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	if err := mcp.StartServer(); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
