package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"
)

// ErrToolNotFound is returned when a call names an unregistered tool.
var ErrToolNotFound = errors.New("tools: tool not found")

// Tool describes one callable operation.
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  *JSONSchema `json:"parameters"`
	Handler     Handler     `json:"-"`
}

// Handler executes a tool call and returns its text result.
type Handler func(ctx context.Context, args json.RawMessage) (string, error)

// JSONSchema is the subset of JSON Schema used for tool parameters.
type JSONSchema struct {
	Type        string                 `json:"type"`
	Description string                 `json:"description,omitempty"`
	Properties  map[string]*JSONSchema `json:"properties,omitempty"`
	Required    []string               `json:"required,omitempty"`
	Minimum     *float64               `json:"minimum,omitempty"`
	Default     any                    `json:"default,omitempty"`
}

// ObjectSchema creates a JSON Schema for an object with the given properties.
func ObjectSchema(desc string, props map[string]*JSONSchema, required ...string) *JSONSchema {
	return &JSONSchema{
		Type:        "object",
		Description: desc,
		Properties:  props,
		Required:    required,
	}
}

// StringProp creates a JSON Schema for a string property.
func StringProp(desc string) *JSONSchema {
	return &JSONSchema{Type: "string", Description: desc}
}

// IntProp creates a JSON Schema for an integer property with a lower
// bound and a default.
func IntProp(desc string, minimum float64, def int) *JSONSchema {
	return &JSONSchema{Type: "integer", Description: desc, Minimum: &minimum, Default: def}
}

// Call is one tool invocation.
type Call struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// Registry holds the available tools and executes calls against them.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]Tool
	logger *log.Logger
}

// NewRegistry creates an empty registry. A nil logger uses log.DefaultLogger.
func NewRegistry(logger *log.Logger) *Registry {
	if logger == nil {
		logger = &log.DefaultLogger
	}
	return &Registry{
		tools:  make(map[string]Tool),
		logger: logger,
	}
}

// Register adds a tool, replacing any tool of the same name.
func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name] = tool
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// List returns the registered tools sorted by name.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the registered tool names, sorted.
func (r *Registry) Names() []string {
	tools := r.List()
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.Name
	}
	return names
}

// Execute runs a call and returns the tool's text. A call without an ID
// gets a fresh one for the log line.
func (r *Registry) Execute(ctx context.Context, call Call) (string, error) {
	if call.ID == "" {
		call.ID = uuid.NewString()
	}
	tool, ok := r.Get(call.Name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, call.Name)
	}
	if tool.Handler == nil {
		return "", fmt.Errorf("tools: tool %q has no handler", call.Name)
	}

	start := time.Now()
	out, err := tool.Handler(ctx, call.Arguments)
	if err != nil {
		r.logger.Warn().Str("call_id", call.ID).Str("tool", call.Name).Dur("took", time.Since(start)).Err(err).Msg("tool call failed")
		return "", err
	}
	r.logger.Info().Str("call_id", call.ID).Str("tool", call.Name).Dur("took", time.Since(start)).Int("bytes", len(out)).Msg("tool call")
	return out, nil
}
