package tools

import (
	"context"
	"strings"
	"testing"

	ai "github.com/sashabaranov/go-openai"
)

type fakeTool struct {
	name string
}

func (t *fakeTool) GetName() string { return t.name }

func (t *fakeTool) GetTool() ai.Tool {
	return ai.Tool{
		Type:     ai.ToolTypeFunction,
		Function: &ai.FunctionDefinition{Name: t.name},
	}
}

func (t *fakeTool) Execute(_ context.Context, _ map[string]any) (string, error) {
	return "", nil
}

func TestRegistryOrder(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := r.Register(&fakeTool{name: name}); err != nil {
			t.Fatal(err)
		}
	}

	names := r.Names()
	want := []string{"zeta", "alpha", "mid"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected registration order %v, got %v", want, names)
		}
	}

	defs := r.Definitions()
	if len(defs) != 3 {
		t.Fatalf("expected 3 definitions, got %d", len(defs))
	}
	for i := range want {
		if defs[i].Function.Name != want[i] {
			t.Errorf("definition %d: expected %s, got %s", i, want[i], defs[i].Function.Name)
		}
	}
}

func TestRegistryDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&fakeTool{name: "dup"}); err != nil {
		t.Fatal(err)
	}
	err := r.Register(&fakeTool{name: "dup"})
	if err == nil {
		t.Fatal("expected error on duplicate registration")
	}
	if !strings.Contains(err.Error(), "dup") {
		t.Errorf("error should name the tool, got %v", err)
	}
	if len(r.All()) != 1 {
		t.Errorf("duplicate must not be added, got %d tools", len(r.All()))
	}
}

func TestRegistryGet(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&fakeTool{name: "present"}); err != nil {
		t.Fatal(err)
	}

	if _, ok := r.Get("present"); !ok {
		t.Error("expected to find registered tool")
	}
	if _, ok := r.Get("absent"); ok {
		t.Error("expected lookup miss for unregistered tool")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r, err := DefaultRegistry()
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"file_reader", "web_search", "web_fetch", "calculator"}
	names := r.Names()
	if len(names) != len(want) {
		t.Fatalf("expected %d tools, got %v", len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("tool %d: expected %s, got %s", i, want[i], names[i])
		}
	}

	for _, def := range r.Definitions() {
		if def.Function == nil || def.Function.Description == "" {
			t.Errorf("tool %v is missing a description", def)
		}
	}
}
