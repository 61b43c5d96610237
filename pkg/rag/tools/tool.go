// Package tools holds the capabilities the generation engine may invoke
// instead of answering directly, plus the registry dispatching them.
package tools

import (
	"context"
	"errors"
	"fmt"

	"ai-coursechat-be/pkg/llm"
)

// ErrToolNotFound marks a model request for an unregistered tool name. It is
// surfaced to the model as a tool-result string, not a process fault.
var ErrToolNotFound = errors.New("tool not found")

// Tool is a named, schema-described capability. Execute returns model-facing
// text; err is reserved for infrastructure failures. Tools that cite content
// track the sources used by the current query.
type Tool interface {
	Definition() llm.ToolDefinition
	Execute(ctx context.Context, args map[string]interface{}) (string, error)
	LastSources() []string
	ResetSources()
}

// Registry maps tool names to handlers and owns the per-query citation
// accumulation across all registered tools.
type Registry struct {
	tools map[string]Tool
	order []string // registration order, for deterministic schemas/sources
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

func (r *Registry) Register(tool Tool) {
	name := tool.Definition().Name
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = tool
}

// Definitions returns all declared schemas for capability negotiation.
func (r *Registry) Definitions() []llm.ToolDefinition {
	defs := make([]llm.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition())
	}
	return defs
}

// Execute dispatches by name. An unknown name yields a textual result the
// model can recover from, wrapped around the ErrToolNotFound sentinel.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	tool, ok := r.tools[name]
	if !ok {
		return fmt.Sprintf("Tool '%s' not found", name),
			fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	return tool.Execute(ctx, args)
}

// DrainSources returns the distinct citations accumulated since the last
// drain and clears every tool's accumulator, so sources never leak into an
// unrelated query.
func (r *Registry) DrainSources() []string {
	var out []string
	seen := make(map[string]bool)
	for _, name := range r.order {
		for _, s := range r.tools[name].LastSources() {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
		r.tools[name].ResetSources()
	}
	return out
}

// ResetSources clears all accumulators without reading them; called at the
// start of a new top-level query so abandoned partial results cannot leak.
func (r *Registry) ResetSources() {
	for _, name := range r.order {
		r.tools[name].ResetSources()
	}
}
