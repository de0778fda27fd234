package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"ftask/internal/config"
	"ftask/internal/exitcode"
	"ftask/internal/service"
	"ftask/internal/session"
	"ftask/internal/tasklist"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command: it flips the completed state
// of the referenced task. It takes the same filter flags as list so that
// a number refers to the numbering the user just saw.
type ToggleCmd struct {
	status   string
	priority string
}

// SetFilter sets the filter values (for testing).
func (c *ToggleCmd) SetFilter(status, priority string) {
	c.status = status
	c.priority = priority
}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Toggle task completion" }
func (c *ToggleCmd) Usage() string     { return "ftask toggle [common flags] [filter flags] <ref>" }
func (c *ToggleCmd) Auth() AuthMode    { return AuthStore }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", "all", "")
	fs.StringVar(&c.status, "s", "all", "")
	fs.StringVar(&c.priority, "priority", "all", "")
	fs.StringVar(&c.priority, "p", "all", "")
}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, gate *session.Gate, store service.Store, args []string, out, errOut io.Writer) int {
	filter, ok := parseFilter(c.status, c.priority, errOut)
	if !ok {
		return exitcode.UserError
	}

	m, task, code := resolveTask(ctx, store, args, filter, errOut)
	if code != exitcode.Success {
		return code
	}

	toggled, err := m.Toggle(ctx, task.ID)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		if toggled.Completed {
			fmt.Fprintln(out, "completed")
		} else {
			fmt.Fprintln(out, "reopened")
		}
	}
	return exitcode.Success
}

// resolveTask refreshes a manager and resolves the task reference in
// args against the view for filter. On failure it prints the error and
// returns a non-success code.
func resolveTask(ctx context.Context, store service.Store, args []string, filter service.Filter, errOut io.Writer) (*tasklist.Manager, service.Task, int) {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task reference required")
		return nil, service.Task{}, exitcode.UserError
	}

	m := tasklist.NewManager(store)
	if err := m.Refresh(ctx); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return nil, service.Task{}, exitcode.BackendError
	}

	task, err := m.ResolveRef(strings.Join(args, " "), filter)
	if err != nil {
		switch {
		case err == tasklist.ErrRefRequired:
			fmt.Fprintln(errOut, "error: task reference required")
		case err == tasklist.ErrAmbiguousRef:
			fmt.Fprintf(errOut, "error: ambiguous task reference: %s\n", strings.Join(args, " "))
		case err == service.ErrNotFound:
			fmt.Fprintf(errOut, "error: task not found: %s\n", strings.Join(args, " "))
		default:
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return nil, service.Task{}, exitcode.UserError
	}
	return m, task, exitcode.Success
}
