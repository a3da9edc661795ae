package tools

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phuslu/log"

	"github.com/seenimoa/financemcp/internal/providers/fmp"
	"github.com/seenimoa/financemcp/internal/providers/newsapi"
)

var quietLogger = &log.Logger{Level: log.ErrorLevel, Writer: &log.IOWriter{Writer: io.Discard}}

// newTestService wires a service whose two upstreams are served by the
// given handlers.
func newTestService(t *testing.T, fmpHandler, newsHandler http.HandlerFunc) *Service {
	t.Helper()
	fmpSrv := httptest.NewServer(fmpHandler)
	t.Cleanup(fmpSrv.Close)
	newsSrv := httptest.NewServer(newsHandler)
	t.Cleanup(newsSrv.Close)

	companies := fmp.New(fmp.Options{BaseURL: fmpSrv.URL, APIKey: "k", Logger: quietLogger})
	news := newsapi.New(newsapi.Options{BaseURL: newsSrv.URL, APIKey: "k", Logger: quietLogger})
	return NewService(companies, news, nil, quietLogger)
}

func fail(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "boom", http.StatusInternalServerError)
}

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func TestListCompaniesInSector(t *testing.T) {
	var limit string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		limit = r.URL.Query().Get("limit")
		respond(`[{"symbol":"EL","companyName":"Estee Lauder","industry":"Cosmetics"},{"symbol":"COTY"}]`)(w, r)
	}, fail)

	got := svc.ListCompaniesInSector(context.Background(), "Consumer Defensive")
	want := "\nTicker: EL\nName:   Estee Lauder\nIndustry: Cosmetics\n" +
		"\n---\n" +
		"\nTicker: COTY\nName:   Unknown\nIndustry: Unknown\n"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
	if limit != "10" {
		t.Errorf("limit: got %q", limit)
	}
}

func TestListCompaniesInSectorUnavailable(t *testing.T) {
	want := "Unable to fetch companies for sector 'Energy', or no companies found."
	for name, h := range map[string]http.HandlerFunc{"error": fail, "empty": respond(`[]`)} {
		t.Run(name, func(t *testing.T) {
			svc := newTestService(t, h, fail)
			if got := svc.ListCompaniesInSector(context.Background(), "Energy"); got != want {
				t.Errorf("got %q", got)
			}
		})
	}
}

func TestGetCompanyFinancials(t *testing.T) {
	var path string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		respond(`[{"date":"2024-09-28","calendarYear":"2024","revenue":391035000000,"netIncome":93736000000,"eps":6.11}]`)(w, r)
	}, fail)

	got := svc.GetCompanyFinancials(context.Background(), " aapl ")
	want := "\nYear: 2024\n  • Revenue: $391,035,000,000\n  • Net Income: $93,736,000,000\n  • EPS: 6.11\n"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
	if path != "/income-statement/AAPL" {
		t.Errorf("path: got %q", path)
	}
}

func TestGetCompanyFinancialsUnavailable(t *testing.T) {
	svc := newTestService(t, respond(`[]`), fail)
	got := svc.GetCompanyFinancials(context.Background(), "zzzz")
	if got != "Unable to fetch financials for 'zzzz', or no data found." {
		t.Errorf("got %q", got)
	}
}

func TestGetCompanyNews(t *testing.T) {
	var q, pageSize, sortBy string
	svc := newTestService(t, fail, func(w http.ResponseWriter, r *http.Request) {
		q = r.URL.Query().Get("q")
		pageSize = r.URL.Query().Get("pageSize")
		sortBy = r.URL.Query().Get("sortBy")
		respond(`{"status":"ok","articles":[{"source":{"name":"Reuters"},"title":"Apple beats","description":"<p>Strong <b>quarter</b></p>","url":"https://example.com/a","publishedAt":"2025-01-30T21:00:00Z"}]}`)(w, r)
	})

	got := svc.GetCompanyNews(context.Background(), "Apple Inc")
	want := "\nSource: Reuters\nDate:   2025-01-30\nTitle:  Apple beats\nSummary:Strong quarter\nLink:   https://example.com/a\n"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
	if q != "Apple Inc" || pageSize != "5" || sortBy != "publishedAt" {
		t.Errorf("query: q=%q pageSize=%q sortBy=%q", q, pageSize, sortBy)
	}
}

func TestGetCompanyNewsMessages(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{"unavailable", fail, "Unable to fetch news for 'Acme', or no articles found."},
		{"missing articles", respond(`{"status":"ok"}`), "Unable to fetch news for 'Acme', or no articles found."},
		{"empty articles", respond(`{"status":"ok","articles":[]}`), "No recent news articles found for 'Acme'."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, fail, tt.handler)
			if got := svc.GetCompanyNews(context.Background(), "Acme"); got != tt.want {
				t.Errorf("got %q", got)
			}
		})
	}
}

func TestGetSectorFinancialTrends(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/stock-screener":
			respond(`[{"symbol":"AAA"},{"symbol":"BBB"}]`)(w, r)
		case r.URL.Path == "/income-statement/AAA":
			respond(`[{"date":"2022-12-31","revenue":150,"netIncome":15},{"date":"2021-12-31","revenue":100,"netIncome":10}]`)(w, r)
		default:
			fail(w, r)
		}
	}, fail)

	got := svc.GetSectorFinancialTrends(context.Background(), "Utilities", 5)
	want := strings.Join([]string{
		"Sector Financial Trends:",
		"2021: Avg Revenue = $100.00, Avg Net Income = $10.00",
		"2022: Avg Revenue = $150.00, Avg Net Income = $15.00",
		"\nRevenue Growth:",
		"2021→2022 Rev Δ: +50.0%",
		"\nNet Income Growth:",
		"2021→2022 Net Δ: +50.0%",
	}, "\n")
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestValidationMessages(t *testing.T) {
	svc := newTestService(t, fail, fail)
	ctx := context.Background()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"sector", svc.ListCompaniesInSector(ctx, "  "), "Please provide a sector."},
		{"ticker", svc.GetCompanyFinancials(ctx, ""), "Please provide a ticker."},
		{"company", svc.GetCompanyNews(ctx, "\t"), "Please provide a company."},
		{"trends sector", svc.GetSectorFinancialTrends(ctx, "", 5), "Please provide a sector."},
		{"trends limit", svc.GetSectorFinancialTrends(ctx, "Energy", 0), "company_limit must be at least 1."},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestCatalog(t *testing.T) {
	var limit string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		limit = r.URL.Query().Get("limit")
		fail(w, r)
	}, fail)
	reg := NewCatalog(svc)

	wantNames := []string{ToolCompaniesInSector, ToolCompanyFinancials, ToolCompanyNews, ToolSectorFinancialTrends}
	if got := reg.Names(); strings.Join(got, ",") != strings.Join(wantNames, ",") {
		t.Errorf("names: got %v", got)
	}

	out, err := reg.Execute(context.Background(), Call{Name: ToolSectorFinancialTrends, Arguments: json.RawMessage(`{"sector":"Energy"}`)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Unable to fetch companies for sector 'Energy'." {
		t.Errorf("got %q", out)
	}
	if limit != "5" {
		t.Errorf("default company_limit: got %q", limit)
	}

	out, err = reg.Execute(context.Background(), Call{Name: ToolSectorFinancialTrends, Arguments: json.RawMessage(`{"sector":"Energy","company_limit":0}`)})
	if err != nil || out != "company_limit must be at least 1." {
		t.Errorf("explicit zero limit: out=%q err=%v", out, err)
	}
}

func TestExecuteErrors(t *testing.T) {
	reg := NewCatalog(newTestService(t, fail, fail))

	if _, err := reg.Execute(context.Background(), Call{Name: "nope"}); !errors.Is(err, ErrToolNotFound) {
		t.Errorf("expected ErrToolNotFound, got %v", err)
	}
	if _, err := reg.Execute(context.Background(), Call{Name: ToolCompanyNews, Arguments: json.RawMessage(`{"company":`)}); err == nil {
		t.Error("expected invalid arguments error")
	}
}

func TestSchemaJSON(t *testing.T) {
	tool, ok := NewCatalog(newTestService(t, fail, fail)).Get(ToolSectorFinancialTrends)
	if !ok {
		t.Fatal("trends tool not registered")
	}
	b, err := json.Marshal(tool)
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	for _, want := range []string{`"required":["sector"]`, `"minimum":1`, `"default":5`} {
		if !strings.Contains(s, want) {
			t.Errorf("schema %s missing %s", s, want)
		}
	}
}
