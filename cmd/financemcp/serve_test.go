package main

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/phuslu/log"

	"github.com/seenimoa/financemcp/internal/config"
	"github.com/seenimoa/financemcp/internal/tools"
)

func testRegistry() *tools.Registry {
	quiet := &log.Logger{Level: log.ErrorLevel, Writer: &log.IOWriter{Writer: io.Discard}}
	c := &config.Config{
		FMP:     config.ProviderConfig{BaseURL: "http://127.0.0.1:1"},
		NewsAPI: config.ProviderConfig{BaseURL: "http://127.0.0.1:1"},
		Fetch:   config.FetchConfig{Timeout: time.Second, Concurrency: 1},
	}
	return tools.NewCatalog(newService(c, quiet))
}

func callTool(t *testing.T, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := handleTool(testRegistry(), name)(context.Background(), req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("expected one content item, got %d", len(res.Content))
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", res.Content[0])
	}
	return text.Text
}

func TestMCPToolsMatchCatalog(t *testing.T) {
	names := testRegistry().Names()
	defs := mcpTools()
	if len(defs) != len(names) {
		t.Fatalf("mcp tools %d, catalog tools %d", len(defs), len(names))
	}
	for _, d := range defs {
		if _, ok := testRegistry().Get(d.Name); !ok {
			t.Errorf("mcp tool %q missing from catalog", d.Name)
		}
	}
}

func TestHandleToolValidation(t *testing.T) {
	res := callTool(t, tools.ToolSectorFinancialTrends, map[string]any{"sector": "Energy", "company_limit": 0})
	if res.IsError {
		t.Fatal("validation message should be a normal result")
	}
	if got := resultText(t, res); got != "company_limit must be at least 1." {
		t.Errorf("got %q", got)
	}

	res = callTool(t, tools.ToolCompanyNews, map[string]any{})
	if got := resultText(t, res); got != "Please provide a company." {
		t.Errorf("got %q", got)
	}
}

func TestHandleToolUnavailableUpstream(t *testing.T) {
	res := callTool(t, tools.ToolCompanyFinancials, map[string]any{"ticker": "aapl"})
	if got := resultText(t, res); got != "Unable to fetch financials for 'aapl', or no data found." {
		t.Errorf("got %q", got)
	}
}

func TestHandleToolBadArguments(t *testing.T) {
	res := callTool(t, tools.ToolCompanyNews, map[string]any{"company": 42})
	if !res.IsError {
		t.Error("expected tool error for mistyped argument")
	}
}
