// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fitlog/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants to interact with your fitlog data through a
standardized protocol. The server communicates via stdin/stdout.

CLIENT CONFIGURATION:

  Add this to your MCP client config:

  {
    "mcpServers": {
      "fitlog": {
        "command": "fitlog",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_compound       Create a compound with half-life and start date
  list_compounds     List tracked compounds
  delete_compound    Delete a compound and its dose history
  set_dose           Set a dose for a date (overwrites; 0 clears)
  list_doses         List a compound's dose ledger
  get_dose_series    Compute the daily decay series
  log_exercise       Log an exercise entry
  list_exercises     List exercise entries

AVAILABLE RESOURCES:

  fitlog://compounds   Compounds with current active dose levels
  fitlog://activity    Recent exercise entries`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
