// Package api exposes the finance tools over a small HTTP JSON API: a tool
// listing, generic tool execution, and resource-style lookup routes.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/phuslu/log"

	"github.com/seenimoa/financemcp/internal/analysis/sector"
	"github.com/seenimoa/financemcp/internal/tools"
)

// maxBodyBytes caps tool argument payloads.
const maxBodyBytes = 1 << 16

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	svc     *tools.Service
	reg     *tools.Registry
	origins []string
	version string
	logger  *log.Logger
}

// Options configures a Server.
type Options struct {
	Version     string
	CORSOrigins []string // default "*"
	Logger      *log.Logger
}

// NewServer creates a server with all routes and middleware.
func NewServer(svc *tools.Service, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = &log.DefaultLogger
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	s := &Server{
		svc:     svc,
		reg:     tools.NewCatalog(svc),
		origins: opts.CORSOrigins,
		version: opts.Version,
		logger:  opts.Logger,
	}
	s.router = s.buildRouter()
	return s
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("HTTP API listening")
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down HTTP API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Tools
		r.Get("/tools", s.handleListTools)
		r.Post("/tools/{name}", s.handleExecuteTool)

		// Lookups
		r.Get("/sectors/{sector}/companies", s.handleCompanies)
		r.Get("/sectors/{sector}/trends", s.handleTrends)
		r.Get("/companies/{ticker}/financials", s.handleFinancials)
		r.Get("/companies/{company}/news", s.handleNews)
	})

	return r
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ToolInfo describes a registered tool.
type ToolInfo struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Parameters  *tools.JSONSchema `json:"parameters"`
}

// ToolResult is the data of a tool execution.
type ToolResult struct {
	CallID string `json:"call_id"`
	Tool   string `json:"tool"`
	Text   string `json:"text"`
}

// TrendsResult is the data of the trends lookup.
type TrendsResult struct {
	Text    string         `json:"text"`
	Summary sector.Summary `json:"summary"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]any{
			"status":  "ok",
			"version": s.version,
			"tools":   s.reg.Names(),
		},
	})
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	list := s.reg.List()
	out := make([]ToolInfo, len(list))
	for i, t := range list {
		out[i] = ToolInfo{Name: t.Name, Description: t.Description, Parameters: t.Parameters}
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: out})
}

func (s *Server) handleExecuteTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := s.reg.Get(name); !ok {
		writeError(w, http.StatusNotFound, "unknown tool: "+name)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body: "+err.Error())
		return
	}

	callID := uuid.NewString()
	text, err := s.reg.Execute(r.Context(), tools.Call{ID: callID, Name: name, Arguments: body})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    ToolResult{CallID: callID, Tool: name, Text: text},
	})
}

func (s *Server) handleCompanies(w http.ResponseWriter, r *http.Request) {
	writeText(w, s.svc.ListCompaniesInSector(r.Context(), chi.URLParam(r, "sector")))
}

func (s *Server) handleFinancials(w http.ResponseWriter, r *http.Request) {
	writeText(w, s.svc.GetCompanyFinancials(r.Context(), chi.URLParam(r, "ticker")))
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	writeText(w, s.svc.GetCompanyNews(r.Context(), chi.URLParam(r, "company")))
}

// handleTrends returns the rendered trends plus the numeric summary.
// Invalid input gets the plain validation text.
func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	limit := sector.DefaultCompanyLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}
	name := chi.URLParam(r, "sector")

	if limit < 1 || strings.TrimSpace(name) == "" {
		writeText(w, s.svc.GetSectorFinancialTrends(r.Context(), name, limit))
		return
	}
	sum := s.svc.SectorSummary(r.Context(), name, limit)
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: TrendsResult{Text: sum.Render(), Summary: sum}})
}

// ============================================================
// Helpers
// ============================================================

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("http request")
	})
}

// writeText wraps a tool text result in the envelope. Degraded messages
// are successful responses too.
func writeText(w http.ResponseWriter, text string) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: text})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
