// Package main is the entry point for the ftask CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ftask/internal/backend/firebase"
	"ftask/internal/cli"
	"ftask/internal/commands"
	"ftask/internal/config"
	"ftask/internal/service"
	"ftask/internal/session"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Session gate over the Firebase identity provider
	gates := func(ctx context.Context, cfg *config.Config) (*session.Gate, error) {
		auth, err := firebase.NewAuth(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return session.NewGate(cfg, auth), nil
	}

	// Task store authenticated with the cached session
	stores := func(ctx context.Context, cfg *config.Config, gate *session.Gate) (service.Store, error) {
		ts, err := gate.TokenSource(ctx)
		if err != nil {
			return nil, err
		}
		return firebase.NewStore(ctx, cfg, ts)
	}

	// Create dispatcher
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, gates, stores)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
