package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"ftask/internal/config"
	"ftask/internal/exitcode"
	"ftask/internal/output"
	"ftask/internal/service"
	"ftask/internal/session"
	"ftask/internal/tasklist"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `ftask` (no args) and `ftask list`.
type ListCmd struct {
	status   string
	priority string
	long     bool
}

// SetFilter sets the filter values (for testing).
func (c *ListCmd) SetFilter(status, priority string) {
	c.status = status
	c.priority = priority
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "ftask list [common flags] [filter flags] [--long]"
}
func (c *ListCmd) Auth() AuthMode { return AuthStore }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", "all", "")
	fs.StringVar(&c.status, "s", "all", "")
	fs.StringVar(&c.priority, "priority", "all", "")
	fs.StringVar(&c.priority, "p", "all", "")
	fs.BoolVar(&c.long, "long", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, gate *session.Gate, store service.Store, args []string, out, errOut io.Writer) int {
	filter, ok := parseFilter(c.status, c.priority, errOut)
	if !ok {
		return exitcode.UserError
	}

	m := tasklist.NewManager(store)
	if err := m.Refresh(ctx); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	view := m.View(filter)
	if len(view) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	for i, task := range view {
		if c.long {
			output.FormatTaskLong(out, i+1, task)
		} else {
			output.FormatTask(out, i+1, task)
		}
	}
	return exitcode.Success
}

// parseFilter validates the filter flag values shared by the list,
// toggle and rm commands. Empty values keep every task.
func parseFilter(statusFlag, priorityFlag string, errOut io.Writer) (service.Filter, bool) {
	if statusFlag == "" {
		statusFlag = string(service.StatusAll)
	}
	if priorityFlag == "" {
		priorityFlag = string(service.PriorityAll)
	}

	status := service.StatusFilter(statusFlag)
	if !service.ValidStatusFilter(status) {
		fmt.Fprintf(errOut, "error: invalid status filter: %s\n", statusFlag)
		return service.Filter{}, false
	}
	priority := service.PriorityFilter(priorityFlag)
	if !service.ValidPriorityFilter(priority) {
		fmt.Fprintf(errOut, "error: invalid priority filter: %s\n", priorityFlag)
		return service.Filter{}, false
	}
	return service.Filter{Status: status, Priority: priority}, true
}
