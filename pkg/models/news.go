package models

import "strings"

// NewsArticle is one article returned by a news search.
type NewsArticle struct {
	SourceName  string `json:"source_name"`
	PublishedAt string `json:"published_at"` // RFC 3339 as sent upstream
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// PublishedDate returns the date part of PublishedAt, or "" if unset.
func (a NewsArticle) PublishedDate() string {
	d, _, _ := strings.Cut(strings.TrimSpace(a.PublishedAt), "T")
	return d
}
