package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"ftask/internal/config"
	"ftask/internal/exitcode"
	"ftask/internal/service"
	"ftask/internal/session"
)

func init() {
	Register(&SignupCmd{})
}

// SignupCmd implements the signup command.
type SignupCmd struct{}

func (c *SignupCmd) Name() string      { return "signup" }
func (c *SignupCmd) Aliases() []string { return []string{"register"} }
func (c *SignupCmd) Synopsis() string  { return "Create an account and sign in" }
func (c *SignupCmd) Usage() string     { return "ftask signup [common flags] <email> <password>" }
func (c *SignupCmd) Auth() AuthMode    { return AuthGate }

func (c *SignupCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SignupCmd) Run(ctx context.Context, cfg *config.Config, gate *session.Gate, store service.Store, args []string, out, errOut io.Writer) int {
	if !cfg.HasSettings() {
		printSettingsHelp(cfg, errOut)
		return exitcode.AuthError
	}

	// A cached session must not be silently overwritten.
	if gate.LoggedIn() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in (run: ftask logout first)")
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

	sess, err := gate.SignUp(ctx, email, password)
	if err != nil {
		return printAuthError(err, errOut)
	}

	// The profile record is best-effort: the account and session are
	// already established, so a failure here is only a warning.
	if err := gate.CreateProfile(ctx, sess); err != nil {
		fmt.Fprintf(errOut, "warning: profile record not created: %v\n", err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "signed up as %s\n", sess.Email)
	}
	return exitcode.Success
}
