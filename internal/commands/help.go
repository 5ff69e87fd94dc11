package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/colinmollenhour/clickup-mcp-server/internal/config"
	"github.com/colinmollenhour/clickup-mcp-server/internal/exitcode"
	"github.com/colinmollenhour/clickup-mcp-server/internal/ops"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "clickup-tasks help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, h *ops.Handler, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  clickup-tasks get <task-id> | --custom-id <id> | --list <list-name> <name...>
  clickup-tasks create --list <list-name> [--priority <1-4>] [--due <when>] <name...>
  clickup-tasks update [--status <s>] [--priority <1-4>] [--due <when>] <task-id>
  clickup-tasks move --to <list-name> <task-id>
  clickup-tasks duplicate [--to <list-name>] <task-id>
  clickup-tasks done [--status <closing-status>] <task-id>
  clickup-tasks rm <task-id> | --list <list-name> <name...>
  clickup-tasks tasks [--statuses <s1,s2>] [--page <n>] <list-name>
  clickup-tasks lists
  clickup-tasks comments [--start <millis> --start-id <id>] <task-id>
  clickup-tasks comment --id <task-id> [--notify-all] <text...>
  clickup-tasks bulk-create --list <list-name> <file.json>
  clickup-tasks bulk-update <file.json>
  clickup-tasks bulk-move --to <list-name> <file.json>
  clickup-tasks bulk-delete <file.json>
  clickup-tasks auth --token <api-token> --team <workspace-id>
  clickup-tasks logout
  clickup-tasks help
  clickup-tasks version

Tasks are identified by ID, by custom ID (e.g. DEV-123), or by name together
with --list. Bulk commands read a JSON array from the file ("-" for stdin).

Environment:
  CLICKUP_API_TOKEN    Personal API token (overrides stored credentials)
  CLICKUP_TEAM_ID      Workspace ID (overrides stored credentials)
  CLICKUP_OAUTH_TOKEN  OAuth2 access token, used instead of the API token

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Bulk flags:
  --concurrency <n>  Parallel requests (default 4)
  --retry <n>        Retries per item (default 0)
  --stop-on-error    Cancel remaining items after the first failure
`
