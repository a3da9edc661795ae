// Package gateway issues single outbound read requests to an upstream REST
// provider and reports the outcome as a parsed payload or Unavailable.
//
// Every failure mode (transport error, timeout, non-2xx status, undecodable
// body) collapses into the same Unavailable outcome. Nothing is retried.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/phuslu/log"
)

// DefaultTimeout bounds every upstream call.
const DefaultTimeout = 30 * time.Second

// Options configures one gateway instance (one per provider).
type Options struct {
	Name        string        // provider name used in logs, e.g., "fmp"
	BaseURL     string        // e.g., "https://financialmodelingprep.com/api/v3"
	APIKeyParam string        // query parameter carrying the key, e.g., "apikey"
	APIKey      string        // may be empty; the upstream then rejects the call
	Timeout     time.Duration // zero means DefaultTimeout
	Logger      *log.Logger   // nil means the package default logger
}

// Gateway is a read-only client for one upstream provider.
type Gateway struct {
	name        string
	apiKeyParam string
	apiKey      string
	client      *resty.Client
	logger      *log.Logger
}

// New creates a gateway for a single provider.
func New(opts Options) *Gateway {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = &log.DefaultLogger
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseURL)
	client.SetTimeout(timeout)
	client.SetRetryCount(0)
	client.SetHeader("Accept", "application/json")

	return &Gateway{
		name:        opts.Name,
		apiKeyParam: opts.APIKeyParam,
		apiKey:      opts.APIKey,
		client:      client,
		logger:      logger,
	}
}

// Name returns the provider name.
func (g *Gateway) Name() string { return g.name }

// Request describes one GET call relative to the gateway base URL.
// Path may contain {name} placeholders filled (and path-escaped) from
// PathParams. Query values are percent-encoded.
type Request struct {
	Path       string
	PathParams map[string]string
	Query      url.Values
}

// get performs the call and returns the raw body of a 2xx response.
func (g *Gateway) get(ctx context.Context, req Request) ([]byte, error) {
	query := url.Values{}
	for k, vs := range req.Query {
		query[k] = append([]string(nil), vs...)
	}
	if g.apiKeyParam != "" {
		query.Set(g.apiKeyParam, g.apiKey)
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetPathParams(req.PathParams).
		SetQueryParamsFromValues(query).
		Get(req.Path)
	if err != nil {
		// url.Error carries the full URL, key included.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("GET %s: %w", req.Path, err)
	}
	if !resp.IsSuccess() {
		return nil, &ErrHTTP{StatusCode: resp.StatusCode(), Status: resp.Status()}
	}
	return resp.Body(), nil
}

// Fetch performs req against g and decodes a successful body into T.
// It never returns an error: any failure yields Unavailable.
func Fetch[T any](ctx context.Context, g *Gateway, req Request) Result[T] {
	start := time.Now()
	body, err := g.get(ctx, req)
	if err == nil {
		var v T
		if err = json.Unmarshal(body, &v); err == nil {
			g.logger.Debug().
				Str("provider", g.name).
				Str("path", req.Path).
				Dur("took", time.Since(start)).
				Msg("upstream call succeeded")
			return Ok(v)
		}
		err = fmt.Errorf("decode response: %w", err)
	}

	g.logger.Warn().
		Str("provider", g.name).
		Str("path", req.Path).
		Dur("took", time.Since(start)).
		Err(err).
		Msg("upstream unavailable")
	return Unavailable[T]()
}

// ErrHTTP records a non-2xx upstream status. It only appears in logs.
type ErrHTTP struct {
	StatusCode int
	Status     string
}

func (e *ErrHTTP) Error() string {
	if e.Status != "" {
		return "HTTP " + e.Status
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}
