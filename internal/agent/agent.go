// Package agent runs the tool-calling conversation loop: it sends the
// accumulated history to the model, executes any tool calls it asks
// for, feeds the results back, and repeats until the model answers in
// plain text or the round budget runs out.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	ai "github.com/sashabaranov/go-openai"

	"hackforge/toolagent/internal/config"
	"hackforge/toolagent/internal/core"
	"hackforge/toolagent/internal/llm"
	"hackforge/toolagent/internal/tools"
)

// Notifier receives one-line progress notices (round markers, tool
// invocations) for display. May be nil.
type Notifier func(text string)

const (
	// fallback when the model ends the chat with empty content
	noResponseFallback = "No response"

	// injected when the loop detector fires
	loopBreakPrompt = "Stop repeating the same tool calls. Provide a response based on the information you already have."
)

type Agent struct {
	client   llm.CompletionClient
	registry *tools.Registry
	invoker  *Invoker
	cfg      *config.Configuration
	notify   Notifier
}

func New(cfg *config.Configuration, client llm.CompletionClient, registry *tools.Registry, notify Notifier) *Agent {
	return &Agent{
		client:   client,
		registry: registry,
		invoker:  NewInvoker(registry, notify),
		cfg:      cfg,
		notify:   notify,
	}
}

// Chat runs one conversation to completion and returns the model's
// final answer. Tool failures are fed back to the model as data; only
// API failures surface as errors.
func (a *Agent) Chat(ctx context.Context, message string) (string, error) {
	maxRounds := a.cfg.Agent.MaxRounds
	log := core.WithChat(core.GetLogger(), uuid.NewString())
	defer core.LogDuration(log, "chat", time.Now())

	messages := []ai.ChatCompletionMessage{
		{Role: ai.ChatMessageRoleSystem, Content: a.cfg.Agent.Prompt},
		{Role: ai.ChatMessageRoleUser, Content: message},
	}
	defs := a.registry.Definitions()

	var history [][]string
	var lastContent string

	for round := 1; round <= maxRounds; round++ {
		a.notifyf("Round %d/%d: thinking...", round, maxRounds)

		resp, err := a.complete(ctx, messages, defs)
		if err != nil {
			return "", fmt.Errorf("completion request failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("completion returned no choices")
		}
		reply := resp.Choices[0].Message

		// No tool calls means the model is done.
		if len(reply.ToolCalls) == 0 {
			messages = append(messages, reply)
			log.Debugw("Chat complete", "rounds", round)
			if strings.TrimSpace(reply.Content) == "" {
				return noResponseFallback, nil
			}
			return reply.Content, nil
		}

		names := toolNames(reply.ToolCalls)
		if IsRepeating(names, history) {
			log.Infow("Tool call loop detected", "round", round, "tools", names)
			messages = append(messages, ai.ChatCompletionMessage{
				Role:    ai.ChatMessageRoleSystem,
				Content: loopBreakPrompt,
			})
			continue
		}

		history = append(history, names)
		messages = append(messages, reply)
		if reply.Content != "" {
			lastContent = reply.Content
		}

		a.notifyf("Round %d/%d: executing tools...", round, maxRounds)
		for _, call := range reply.ToolCalls {
			messages = append(messages, a.invoker.Invoke(ctx, call))
		}
	}

	log.Infow("Round budget exhausted", "maxrounds", maxRounds)
	if strings.TrimSpace(lastContent) != "" {
		return fmt.Sprintf("%s\n\nMaximum rounds (%d) reached.", lastContent, maxRounds), nil
	}
	return fmt.Sprintf("Maximum rounds (%d) reached. No final response generated.", maxRounds), nil
}

func (a *Agent) complete(ctx context.Context, messages []ai.ChatCompletionMessage, defs []ai.Tool) (ai.ChatCompletionResponse, error) {
	reqCtx := ctx
	if a.cfg.API.Timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, a.cfg.API.Timeout)
		defer cancel()
	}

	return a.client.CreateChatCompletion(reqCtx, ai.ChatCompletionRequest{
		Model:       a.cfg.Model.Model,
		Messages:    messages,
		Temperature: a.cfg.Model.Temperature,
		Tools:       defs,
		ToolChoice:  "auto",
	})
}

func (a *Agent) notifyf(format string, args ...any) {
	if a.notify != nil {
		a.notify(fmt.Sprintf(format, args...))
	}
}

func toolNames(calls []ai.ToolCall) []string {
	names := make([]string, len(calls))
	for i, call := range calls {
		names[i] = call.Function.Name
	}
	return names
}
