package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"ftask/internal/config"
	"ftask/internal/exitcode"
	"ftask/internal/service"
	"ftask/internal/session"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return []string{"signin"} }
func (c *LoginCmd) Synopsis() string  { return "Sign in with email and password" }
func (c *LoginCmd) Usage() string     { return "ftask login [common flags] <email> <password>" }
func (c *LoginCmd) Auth() AuthMode    { return AuthGate }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, gate *session.Gate, store service.Store, args []string, out, errOut io.Writer) int {
	if !cfg.HasSettings() {
		printSettingsHelp(cfg, errOut)
		return exitcode.AuthError
	}

	// Already signed in: nothing to do.
	if gate.LoggedIn() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	var email, password string
	if len(args) > 0 {
		email = args[0]
	}
	if len(args) > 1 {
		password = args[1]
	}

	sess, err := gate.SignIn(ctx, email, password)
	if err != nil {
		return printAuthError(err, errOut)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "signed in as %s\n", sess.Email)
	}
	return exitcode.Success
}

// printAuthError prints one distinct message per auth failure class and
// returns the exit code.
func printAuthError(err error, errOut io.Writer) int {
	switch {
	case errors.Is(err, session.ErrEmailRequired), errors.Is(err, session.ErrPasswordRequired):
		fmt.Fprintln(errOut, "error: email and password required")
		return exitcode.UserError
	case errors.Is(err, service.ErrUserNotFound):
		fmt.Fprintln(errOut, "error: no user found with this email")
		return exitcode.AuthError
	case errors.Is(err, service.ErrInvalidEmail):
		fmt.Fprintln(errOut, "error: that email address is invalid")
		return exitcode.AuthError
	case errors.Is(err, service.ErrWrongPassword):
		fmt.Fprintln(errOut, "error: incorrect password")
		return exitcode.AuthError
	case errors.Is(err, service.ErrEmailInUse):
		fmt.Fprintln(errOut, "error: that email address is already in use")
		return exitcode.AuthError
	case errors.Is(err, service.ErrWeakPassword):
		fmt.Fprintln(errOut, "error: password is too weak")
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}

// printSettingsHelp explains how to configure the Firebase project.
func printSettingsHelp(cfg *config.Config, errOut io.Writer) {
	fmt.Fprintf(errOut, "error: firebase settings not found in %s\n\n", cfg.Dir)
	fmt.Fprintln(errOut, "To connect to your Firebase project:")
	fmt.Fprintln(errOut, "")
	fmt.Fprintln(errOut, "1. Go to https://console.firebase.google.com and open your project")
	fmt.Fprintln(errOut, "2. Under Project settings, copy the Web API key and project ID")
	fmt.Fprintf(errOut, "3. Save them as:\n")
	fmt.Fprintf(errOut, "   %s\n", cfg.SettingsPath())
	fmt.Fprintln(errOut, "   with the lines:")
	fmt.Fprintln(errOut, "   FIREBASE_API_KEY=<web api key>")
	fmt.Fprintln(errOut, "   FIREBASE_PROJECT_ID=<project id>")
	fmt.Fprintln(errOut, "")
	fmt.Fprintln(errOut, "Then run 'ftask login' again.")
}
