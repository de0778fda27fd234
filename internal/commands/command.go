// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"ftask/internal/config"
	"ftask/internal/service"
	"ftask/internal/session"
)

// AuthMode describes what a command needs from the dispatcher.
type AuthMode int

const (
	// AuthNone runs with neither gate nor store (help, version).
	AuthNone AuthMode = iota

	// AuthGate runs with the session gate only (login, signup, logout).
	AuthGate

	// AuthStore runs with the gate and an authenticated task store.
	AuthStore
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// Auth returns what the command needs from the dispatcher.
	Auth() AuthMode

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths, settings).
	// gate is nil if Auth() returns AuthNone.
	// store is non-nil only if Auth() returns AuthStore.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, gate *session.Gate, store service.Store, args []string, out, errOut io.Writer) int
}
