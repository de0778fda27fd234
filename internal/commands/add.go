package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"ftask/internal/config"
	"ftask/internal/exitcode"
	"ftask/internal/service"
	"ftask/internal/session"
	"ftask/internal/tasklist"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
	due         string
	priority    string
}

// SetFields sets the flag-backed fields (for testing).
func (c *AddCmd) SetFields(description, due, priority string) {
	c.description = description
	c.due = due
	c.priority = priority
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "ftask add --desc <text> --due <date> [--priority low|medium|high] <title...>"
}
func (c *AddCmd) Auth() AuthMode { return AuthStore }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.description, "d", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, gate *session.Gate, store service.Store, args []string, out, errOut io.Writer) int {
	draft := service.Draft{
		Title:       strings.Join(args, " "),
		Description: c.description,
		Priority:    service.Priority(c.priority),
	}

	if c.due != "" {
		due, err := parseDueDate(c.due)
		if err != nil {
			fmt.Fprintf(errOut, "error: invalid due date: %s\n", c.due)
			return exitcode.UserError
		}
		draft.DueDate = due
	}

	m := tasklist.NewManager(store)
	if _, err := m.Add(ctx, draft); err != nil {
		switch {
		case errors.Is(err, tasklist.ErrTitleRequired),
			errors.Is(err, tasklist.ErrDescriptionRequired),
			errors.Is(err, tasklist.ErrDueDateRequired):
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		case strings.Contains(err.Error(), "invalid priority"):
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// parseDueDate accepts a plain date or a full RFC 3339 timestamp.
func parseDueDate(s string) (time.Time, error) {
	if due, err := time.Parse("2006-01-02", s); err == nil {
		return due, nil
	}
	return time.Parse(time.RFC3339, s)
}
