// Package newsapi implements the NewsAPI.org article search provider.
//
// Docs: https://newsapi.org/docs/endpoints/everything
package newsapi

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/phuslu/log"

	"github.com/seenimoa/financemcp/internal/gateway"
	"github.com/seenimoa/financemcp/pkg/models"
)

const (
	providerName = "newsapi"
	// BaseURL is the NewsAPI v2 REST root.
	BaseURL = "https://newsapi.org/v2"
	// APIKeyParam is the query parameter NewsAPI reads the key from.
	APIKeyParam = "apiKey"
)

// Options configures a Client.
type Options struct {
	BaseURL string // defaults to BaseURL
	APIKey  string
	Timeout time.Duration
	Logger  *log.Logger
}

// Client searches recent articles on NewsAPI.
type Client struct {
	gw *gateway.Gateway
}

// New creates a NewsAPI client backed by its own gateway.
func New(opts Options) *Client {
	base := opts.BaseURL
	if base == "" {
		base = BaseURL
	}
	return &Client{
		gw: gateway.New(gateway.Options{
			Name:        providerName,
			BaseURL:     base,
			APIKeyParam: APIKeyParam,
			APIKey:      opts.APIKey,
			Timeout:     opts.Timeout,
			Logger:      opts.Logger,
		}),
	}
}

// Search is the outcome of an article search. Found is false when the
// response carried no "articles" field at all.
type Search struct {
	Found    bool
	Articles []models.NewsArticle
}

// Everything searches all articles matching query, newest first, returning
// at most pageSize of them in the order NewsAPI sent them.
func (c *Client) Everything(ctx context.Context, query string, pageSize int) gateway.Result[Search] {
	res := gateway.Fetch[everythingResponse](ctx, c.gw, gateway.Request{
		Path: "/everything",
		Query: url.Values{
			"q":        {query},
			"pageSize": {strconv.Itoa(pageSize)},
			"sortBy":   {"publishedAt"},
		},
	})
	return gateway.Map(res, func(r everythingResponse) Search {
		if r.Articles == nil {
			return Search{}
		}
		out := make([]models.NewsArticle, 0, len(*r.Articles))
		for _, a := range *r.Articles {
			out = append(out, a.toArticle())
		}
		return Search{Found: true, Articles: out}
	})
}

// everythingResponse is the /everything envelope. Articles is a pointer so
// a missing field can be told apart from an empty list.
type everythingResponse struct {
	Status       string     `json:"status"`
	TotalResults int        `json:"totalResults"`
	Articles     *[]article `json:"articles"`
}

type article struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

func (a article) toArticle() models.NewsArticle {
	return models.NewsArticle{
		SourceName:  strings.TrimSpace(a.Source.Name),
		PublishedAt: a.PublishedAt,
		Title:       strings.TrimSpace(a.Title),
		Description: cleanHTML(a.Description),
		URL:         strings.TrimSpace(a.URL),
	}
}

// cleanHTML strips HTML tags from a string using goquery.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
