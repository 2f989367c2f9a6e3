// Package tools holds the native tools the model can call and the
// registry that presents them to the completion API.
package tools

import (
	"context"
	"fmt"

	ai "github.com/sashabaranov/go-openai"
)

// Tool is a capability the model can invoke by name. GetTool returns
// the function declaration advertised to the API; Execute runs the
// call with the already-decoded arguments and returns the text result.
type Tool interface {
	GetName() string
	GetTool() ai.Tool
	Execute(ctx context.Context, args map[string]any) (string, error)
}

// Registry holds the tools available to a conversation. It preserves
// registration order so the declarations sent to the API are stable.
// Registration happens at startup; afterwards the registry is read-only
// and safe to share.
type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. A duplicate name is a configuration bug, so it
// fails instead of silently replacing the earlier tool.
func (r *Registry) Register(tool Tool) error {
	name := tool.GetName()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool already registered: %s", name)
	}
	r.tools[name] = tool
	r.order = append(r.order, name)
	return nil
}

func (r *Registry) Get(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// All returns the registered tools in registration order.
func (r *Registry) All() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Definitions returns the function declarations for the completion
// request, in registration order.
func (r *Registry) Definitions() []ai.Tool {
	defs := make([]ai.Tool, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].GetTool())
	}
	return defs
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
