package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utsavm/nexus/cmd/nexus/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Start MCP server exposing NEXUS tools",
	Long: `Start an MCP (Model Context Protocol) server over stdio that lets other
assistants read your project board and talk to NEXUS.

Configure in an MCP client's config file:
  {
    "mcpServers": {
      "nexus": {
        "command": "nexus",
        "args": ["serve-mcp"]
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
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := mcp.StartServer(cfg.APIBaseURL); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
