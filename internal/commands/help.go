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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "ftask help" }
func (c *HelpCmd) Auth() AuthMode    { return AuthNone }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, gate *session.Gate, store service.Store, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  ftask                                             List all tasks
  ftask list [common flags] [filter flags] [--long]
  ftask add [common flags] --desc <text> --due <date>
            [--priority low|medium|high] <title...>
  ftask toggle [common flags] [filter flags] <ref>
  ftask done [common flags] [filter flags] <ref>
  ftask rm [common flags] [filter flags] <ref>
  ftask login [common flags] <email> <password>
  ftask signup [common flags] <email> <password>
  ftask logout [common flags]
  ftask help
  ftask version

A <ref> is a task number from the list output under the same filter
flags, or a task ID prefix.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Filter flags:
  --status all|completed|incomplete   Filter by completion state
  --priority all|low|medium|high      Filter by priority
`
