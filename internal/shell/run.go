// Package shell wires the agent to the terminal. It picks the run
// mode from the invocation: piped stdin runs one chat with the piped
// text, otherwise a positional argument runs one chat, and a terminal
// with no argument gets an interactive prompt.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"hackforge/toolagent/internal/agent"
	"hackforge/toolagent/internal/config"
	"hackforge/toolagent/internal/core"
	"hackforge/toolagent/internal/llm"
	"hackforge/toolagent/internal/tools"
)

// Run starts the agent with the given configuration. message is the
// positional argument, empty if none was given.
func Run(ctx context.Context, cfg *config.Configuration, message string) error {
	core.InitLogger(cfg.Agent.Verbose)
	defer zap.L().Sync()

	registry, err := tools.DefaultRegistry()
	if err != nil {
		return fmt.Errorf("failed to build tool registry: %w", err)
	}

	if cfg.Agent.Verbose {
		cfg.PrintConfig()
	}

	notify := func(text string) { fmt.Println(text) }
	a := agent.New(cfg, llm.NewClient(cfg.API), registry, notify)

	stdinTTY := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	input, interactive, err := resolveInput(stdinTTY, os.Stdin, message)
	if err != nil {
		return err
	}
	if interactive {
		return runInteractive(ctx, a, cfg, registry)
	}
	return runOnce(ctx, a, input)
}

// resolveInput picks the chat input for this invocation. Piped stdin
// takes precedence over a positional argument, and empty piped input
// is an error. A terminal on stdin with no positional means
// interactive mode.
func resolveInput(stdinTTY bool, stdin io.Reader, positional string) (message string, interactive bool, err error) {
	if !stdinTTY {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			return "", false, fmt.Errorf("no input provided")
		}
		return text, false, nil
	}
	if positional != "" {
		return positional, false, nil
	}
	return "", true, nil
}

func runOnce(ctx context.Context, a *agent.Agent, message string) error {
	answer, err := a.Chat(ctx, message)
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}

func runInteractive(ctx context.Context, a *agent.Agent, cfg *config.Configuration, registry *tools.Registry) error {
	fmt.Print(getBanner())
	fmt.Println("Type 'quit' to exit, 'help' for available tools")
	fmt.Printf("Max rounds: %d\n\n", cfg.Agent.MaxRounds)

	// The prompt blocks in Scan, so a cancelled context (SIGINT) says
	// goodbye from here rather than waiting for another line.
	go func() {
		<-ctx.Done()
		fmt.Println("\nGoodbye!")
		os.Exit(0)
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "quit" || line == "exit":
			fmt.Println("Goodbye!")
			return nil
		case line == "help":
			printHelp(registry)
			continue
		}

		answer, err := a.Chat(ctx, line)
		if err != nil {
			// A failed chat ends the conversation, not the session.
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		fmt.Printf("\n%s\n\n", answer)
	}
}

func printHelp(registry *tools.Registry) {
	fmt.Println("Available tools:")
	for _, tool := range registry.All() {
		fmt.Printf("  %-12s %s\n", tool.GetName(), tool.GetTool().Function.Description)
	}
	fmt.Println()
}
