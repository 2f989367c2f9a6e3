package agent

import (
	"context"
	"encoding/json"
	"fmt"

	ai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"hackforge/toolagent/internal/core"
	"hackforge/toolagent/internal/tools"
)

// Invoker executes a single tool call and packages the outcome as a
// tool message. Failures never escape as Go errors: an unknown tool,
// bad arguments or an execution error all become message content the
// model can read and react to.
type Invoker struct {
	registry *tools.Registry
	notify   Notifier
	logger   *zap.SugaredLogger
}

func NewInvoker(registry *tools.Registry, notify Notifier) *Invoker {
	return &Invoker{
		registry: registry,
		notify:   notify,
		logger:   core.GetLogger(),
	}
}

func (inv *Invoker) Invoke(ctx context.Context, call ai.ToolCall) ai.ChatCompletionMessage {
	name := call.Function.Name
	msg := ai.ChatCompletionMessage{
		Role:       ai.ChatMessageRoleTool,
		ToolCallID: call.ID,
		Name:       name,
	}

	tool, ok := inv.registry.Get(name)
	if !ok {
		inv.logger.Warnw("Unknown tool requested", "tool", name)
		msg.Content = fmt.Sprintf("Error: Tool '%s' not found", name)
		return msg
	}

	// Arguments arrive as a JSON string. Malformed JSON is treated as
	// no arguments; the tool reports whatever is missing.
	args := map[string]any{}
	if raw := call.Function.Arguments; raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			core.WithTool(inv.logger, name, nil).Debugw("Malformed tool arguments", "error", err)
			args = map[string]any{}
		}
	}

	if inv.notify != nil {
		inv.notify(fmt.Sprintf("[%s] %s", name, summarizeArgs(args)))
	}

	log := core.WithTool(inv.logger, name, args)
	result, err := tool.Execute(ctx, args)
	if err != nil {
		log.Debugw("Tool execution failed", "error", err)
		msg.Content = fmt.Sprintf("Error: %v", err)
		return msg
	}
	log.Debugw("Tool executed", "result_len", len(result))
	msg.Content = result
	return msg
}

// summarizeArgs picks the argument that identifies the call for the
// one-line progress notice.
func summarizeArgs(args map[string]any) string {
	for _, key := range []string{"path", "query", "url", "expression"} {
		if v, ok := args[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
