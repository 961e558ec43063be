package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	daybookmcp "github.com/ajitpratap0/daybook/internal/mcp"
)

func mcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP (Model Context Protocol) server over stdio",
		Long: `Starts an MCP JSON-RPC 2.0 server that reads from stdin and writes to stdout.
All diagnostic logs go to stderr so that stdout remains exclusively MCP protocol traffic.

Tools exposed:
  add_entry         add an entry (validated against the journal variant)
  update_entry      change an entry's fields, date or tags
  delete_entry      delete an entry by ID
  toggle_favorite   flip an entry's favorite flag
  get_entry         fetch one entry
  list_entries      search and filter entries
  entries_for_date  entries of one calendar day
  stats             totals, tag counts, monthly counts, streaks
  list_tags         known tags
  add_tag           register a custom tag`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			j, backend, err := openJournal(ctx, logger)
			if err != nil {
				return fmt.Errorf("mcp: opening journal: %w", err)
			}
			defer func() { _ = backend.Close() }()

			srv := daybookmcp.NewServer(j, version, logger)

			// mcp-go reports transport errors through a standard log.Logger.
			errLogger := log.New(os.Stderr, "mcp: ", log.LstdFlags)

			logger.Info("mcp: daybook MCP server starting", "transport", "stdio", "variant", j.Variant().Name)

			return mcpserver.ServeStdio(
				srv.MCPServer(),
				mcpserver.WithErrorLogger(errLogger),
			)
		},
	}

	return cmd
}
