// Package main is the entry point for the clickup-tasks CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/oauth2"

	"github.com/colinmollenhour/clickup-mcp-server/internal/backend/clickup"
	"github.com/colinmollenhour/clickup-mcp-server/internal/cli"
	"github.com/colinmollenhour/clickup-mcp-server/internal/commands"
	"github.com/colinmollenhour/clickup-mcp-server/internal/config"
	"github.com/colinmollenhour/clickup-mcp-server/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	factory := func(ctx context.Context, cfg *config.Config) (service.Client, error) {
		if cfg.OAuthToken != "" {
			ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.OAuthToken})
			return clickup.NewWithTokenSource(ctx, ts, cfg.TeamID)
		}
		return clickup.New(cfg)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
