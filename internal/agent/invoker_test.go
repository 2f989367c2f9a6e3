package agent

import (
	"context"
	"fmt"
	"strings"
	"testing"

	ai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"hackforge/toolagent/internal/tools"
)

// mockTool implements tools.Tool for testing
type mockTool struct {
	name     string
	result   string
	err      error
	gotArgs  map[string]any
	executed bool
}

func (t *mockTool) GetName() string { return t.name }

func (t *mockTool) GetTool() ai.Tool {
	return ai.Tool{
		Type: ai.ToolTypeFunction,
		Function: &ai.FunctionDefinition{
			Name:       t.name,
			Parameters: jsonschema.Definition{Type: jsonschema.Object},
		},
	}
}

func (t *mockTool) Execute(_ context.Context, args map[string]any) (string, error) {
	t.executed = true
	t.gotArgs = args
	return t.result, t.err
}

var _ tools.Tool = (*mockTool)(nil)

func newCall(name, args string) ai.ToolCall {
	return ai.ToolCall{
		ID:   "call_1",
		Type: ai.ToolTypeFunction,
		Function: ai.FunctionCall{
			Name:      name,
			Arguments: args,
		},
	}
}

func TestInvokerUnknownTool(t *testing.T) {
	registry := tools.NewRegistry()
	inv := NewInvoker(registry, nil)

	msg := inv.Invoke(context.Background(), newCall("nonexistent_tool", "{}"))

	if msg.Role != ai.ChatMessageRoleTool {
		t.Errorf("expected tool role, got %s", msg.Role)
	}
	if msg.ToolCallID != "call_1" {
		t.Errorf("expected tool call id to round-trip, got %q", msg.ToolCallID)
	}
	if msg.Content != "Error: Tool 'nonexistent_tool' not found" {
		t.Errorf("unexpected content: %q", msg.Content)
	}
}

func TestInvokerSuccess(t *testing.T) {
	registry := tools.NewRegistry()
	mock := &mockTool{name: "echo", result: "hello"}
	if err := registry.Register(mock); err != nil {
		t.Fatal(err)
	}
	inv := NewInvoker(registry, nil)

	msg := inv.Invoke(context.Background(), newCall("echo", `{"query":"hi"}`))

	if msg.Content != "hello" {
		t.Errorf("expected tool result, got %q", msg.Content)
	}
	if msg.Name != "echo" {
		t.Errorf("expected tool name on message, got %q", msg.Name)
	}
	if mock.gotArgs["query"] != "hi" {
		t.Errorf("expected decoded args, got %v", mock.gotArgs)
	}
}

func TestInvokerMalformedArguments(t *testing.T) {
	registry := tools.NewRegistry()
	mock := &mockTool{name: "echo", result: "ran"}
	if err := registry.Register(mock); err != nil {
		t.Fatal(err)
	}
	inv := NewInvoker(registry, nil)

	msg := inv.Invoke(context.Background(), newCall("echo", `{not json`))

	if !mock.executed {
		t.Fatal("tool should still execute with malformed arguments")
	}
	if len(mock.gotArgs) != 0 {
		t.Errorf("expected empty args, got %v", mock.gotArgs)
	}
	if msg.Content != "ran" {
		t.Errorf("unexpected content: %q", msg.Content)
	}
}

func TestInvokerExecutionError(t *testing.T) {
	registry := tools.NewRegistry()
	mock := &mockTool{name: "boom", err: fmt.Errorf("file not found: nope.txt")}
	if err := registry.Register(mock); err != nil {
		t.Fatal(err)
	}
	inv := NewInvoker(registry, nil)

	msg := inv.Invoke(context.Background(), newCall("boom", "{}"))

	if !strings.HasPrefix(msg.Content, "Error: ") {
		t.Errorf("expected error content, got %q", msg.Content)
	}
	if !strings.Contains(msg.Content, "file not found") {
		t.Errorf("expected error detail, got %q", msg.Content)
	}
}

func TestInvokerNotifies(t *testing.T) {
	registry := tools.NewRegistry()
	mock := &mockTool{name: "web_search", result: "ok"}
	if err := registry.Register(mock); err != nil {
		t.Fatal(err)
	}

	var notices []string
	inv := NewInvoker(registry, func(text string) { notices = append(notices, text) })

	inv.Invoke(context.Background(), newCall("web_search", `{"query":"golang"}`))

	if len(notices) != 1 {
		t.Fatalf("expected 1 notice, got %d", len(notices))
	}
	if !strings.Contains(notices[0], "web_search") || !strings.Contains(notices[0], "golang") {
		t.Errorf("notice should name the tool and its argument, got %q", notices[0])
	}
}
