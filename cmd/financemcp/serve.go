package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/seenimoa/financemcp/internal/analysis/sector"
	"github.com/seenimoa/financemcp/internal/tools"
)

// --- Serve Command ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the finance tools over MCP stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		mcpServer := newMCPServer(tools.NewCatalog(svc))
		logger.Info().Str("version", version).Msg("serving MCP over stdio")

		// Blocks until stdin closes.
		if err := server.ServeStdio(mcpServer); err != nil {
			return fmt.Errorf("MCP server failed: %w", err)
		}
		return nil
	},
}

// newMCPServer registers every catalog tool on a fresh MCP server.
func newMCPServer(reg *tools.Registry) *server.MCPServer {
	s := server.NewMCPServer(
		"finance",
		version,
		server.WithToolCapabilities(true),
	)
	for _, def := range mcpTools() {
		s.AddTool(def, handleTool(reg, def.Name))
	}
	return s
}

// mcpTools returns the MCP definitions of the catalog tools.
func mcpTools() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewTool(tools.ToolCompaniesInSector,
			mcp.WithDescription("Get a list of major publicly traded companies in a given sector."),
			mcp.WithString("sector",
				mcp.Required(),
				mcp.Description("Name of the sector (e.g., 'Cosmetics', 'Technology')"),
			),
		),
		mcp.NewTool(tools.ToolCompanyFinancials,
			mcp.WithDescription("Get the last 4 years of income-statement data for a given company."),
			mcp.WithString("ticker",
				mcp.Required(),
				mcp.Description("Stock ticker symbol (e.g. \"AAPL\", \"EL\")"),
			),
		),
		mcp.NewTool(tools.ToolCompanyNews,
			mcp.WithDescription("Get recent news articles for a given company."),
			mcp.WithString("company",
				mcp.Required(),
				mcp.Description("Company name or ticker (e.g., \"Apple\", \"AAPL\")"),
			),
		),
		mcp.NewTool(tools.ToolSectorFinancialTrends,
			mcp.WithDescription("Get aggregated financial trends for the top N companies in a given sector."),
			mcp.WithString("sector",
				mcp.Required(),
				mcp.Description("Name of the sector (e.g. \"Cosmetics\")"),
			),
			mcp.WithNumber("company_limit",
				mcp.Description("Number of companies to include (default: 5)"),
				mcp.Min(1),
				mcp.DefaultNumber(sector.DefaultCompanyLimit),
			),
		),
	}
}

// handleTool routes an MCP call to the registry. Registry errors (bad
// arguments) are reported as tool errors, not protocol errors.
func handleTool(reg *tools.Registry, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error: invalid arguments: %v", err)), nil
		}

		out, err := reg.Execute(ctx, tools.Call{ID: uuid.NewString(), Name: name, Arguments: args})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}
