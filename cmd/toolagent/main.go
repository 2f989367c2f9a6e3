package main

//  _                    _                               _
// | |_   ___    ___    | |  __ _   __ _   ___   _ __   | |_
// | __| / _ \  / _ \   | | / _` | / _` | / _ \ | '_ \  | __|
// | |_ | (_) || (_) |  | || (_| || (_| ||  __/ | | | | | |_
//  \__| \___/  \___/   |_| \__,_| \__, | \___| |_| |_|  \__|
//  .  .  .  an  llm  with  hands  |___/

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"

	"hackforge/toolagent/internal/config"
	"hackforge/toolagent/internal/shell"
)

const version = "0.3"

func main() {
	cmd := &cli.Command{
		Name:      "toolagent",
		Usage:     "chat with an llm that can read files, search, fetch pages and do arithmetic",
		ArgsUsage: "[message]",
		Version:   version,
		Flags:     config.GetFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := config.NewConfiguration(c)
			message := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			return shell.Run(ctx, cfg, message)
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
