package newsapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/phuslu/log"
)

var quietLogger = &log.Logger{Level: log.ErrorLevel, Writer: &log.IOWriter{Writer: io.Discard}}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Options{BaseURL: srv.URL, APIKey: "news_key", Logger: quietLogger})
}

func TestEverythingRequestAndDecode(t *testing.T) {
	var path, q, pageSize, sortBy, key string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		q = r.URL.Query().Get("q")
		pageSize = r.URL.Query().Get("pageSize")
		sortBy = r.URL.Query().Get("sortBy")
		key = r.URL.Query().Get("apiKey")
		w.Write([]byte(`{"status":"ok","totalResults":2,"articles":[
			{"source":{"id":null,"name":"Reuters"},"title":"Apple & partners","description":"<p>Shares <b>rose</b> 3%</p>","url":"https://example.com/a","publishedAt":"2024-05-01T12:30:00Z"},
			{"source":{"name":"Bloomberg"},"title":"Second","url":"https://example.com/b"}
		]}`))
	})

	search, ok := c.Everything(context.Background(), "Apple Inc", 5).Get()
	if !ok {
		t.Fatal("expected success")
	}
	if path != "/everything" {
		t.Errorf("path: got %q", path)
	}
	if q != "Apple Inc" || pageSize != "5" || sortBy != "publishedAt" || key != "news_key" {
		t.Errorf("query: q=%q pageSize=%q sortBy=%q apiKey=%q", q, pageSize, sortBy, key)
	}
	if !search.Found || len(search.Articles) != 2 {
		t.Fatalf("unexpected search: %+v", search)
	}
	a := search.Articles[0]
	if a.SourceName != "Reuters" || a.Title != "Apple & partners" {
		t.Errorf("unexpected article: %+v", a)
	}
	if a.Description != "Shares rose 3%" {
		t.Errorf("description: got %q, want HTML stripped", a.Description)
	}
	if a.PublishedDate() != "2024-05-01" {
		t.Errorf("published date: got %q", a.PublishedDate())
	}
}

func TestEverythingEncodesReservedCharacters(t *testing.T) {
	const query = "AT&T #5G +plus=yes?"
	var got url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`{"status":"ok","articles":[]}`))
	})

	if _, ok := c.Everything(context.Background(), query, 5).Get(); !ok {
		t.Fatal("expected success")
	}
	if q := got.Get("q"); q != query {
		t.Errorf("q: got %q, want %q", q, query)
	}
	if len(got) != 4 || got.Get("apiKey") != "news_key" || got.Get("pageSize") != "5" || got.Get("sortBy") != "publishedAt" {
		t.Errorf("unexpected query params: %v", got)
	}
}

func TestEverythingMissingArticles(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})
	search, ok := c.Everything(context.Background(), "x", 5).Get()
	if !ok {
		t.Fatal("expected a decoded response")
	}
	if search.Found {
		t.Error("missing articles field should not be Found")
	}
}

func TestEverythingEmptyArticles(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","totalResults":0,"articles":[]}`))
	})
	search, ok := c.Everything(context.Background(), "x", 5).Get()
	if !ok || !search.Found || len(search.Articles) != 0 {
		t.Errorf("expected found empty list, got %+v ok=%v", search, ok)
	}
}

func TestEverythingErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"error","code":"apiKeyInvalid"}`))
	})
	if res := c.Everything(context.Background(), "x", 5); !res.IsUnavailable() {
		t.Error("expected Unavailable")
	}
}

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"  plain text  ", "plain text"},
		{"<p>Hello <i>world</i></p>", "Hello world"},
		{"Q&amp;A session", "Q&A session"},
	}
	for _, tt := range tests {
		if got := cleanHTML(tt.in); got != tt.want {
			t.Errorf("cleanHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
