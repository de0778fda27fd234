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
	Register(&RmCmd{})
}

// RmCmd implements the rm command. It takes the same filter flags as
// list so that a number refers to the numbering the user just saw.
type RmCmd struct {
	status   string
	priority string
}

// SetFilter sets the filter values (for testing).
func (c *RmCmd) SetFilter(status, priority string) {
	c.status = status
	c.priority = priority
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "ftask rm [common flags] [filter flags] <ref>" }
func (c *RmCmd) Auth() AuthMode    { return AuthStore }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", "all", "")
	fs.StringVar(&c.status, "s", "all", "")
	fs.StringVar(&c.priority, "priority", "all", "")
	fs.StringVar(&c.priority, "p", "all", "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, gate *session.Gate, store service.Store, args []string, out, errOut io.Writer) int {
	filter, ok := parseFilter(c.status, c.priority, errOut)
	if !ok {
		return exitcode.UserError
	}

	m, task, code := resolveTask(ctx, store, args, filter, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := m.Delete(ctx, task.ID); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
