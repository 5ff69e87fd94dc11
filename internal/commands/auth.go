package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/colinmollenhour/clickup-mcp-server/internal/config"
	"github.com/colinmollenhour/clickup-mcp-server/internal/exitcode"
	"github.com/colinmollenhour/clickup-mcp-server/internal/ops"
)

func init() {
	Register(&AuthCmd{})
}

// AuthCmd implements the auth command. It stores the API token and workspace
// ID in the config directory so later commands can authenticate.
type AuthCmd struct {
	token string
	team  string
}

func (c *AuthCmd) Name() string      { return "auth" }
func (c *AuthCmd) Aliases() []string { return []string{"login"} }
func (c *AuthCmd) Synopsis() string  { return "Store ClickUp credentials" }
func (c *AuthCmd) Usage() string {
	return "clickup-tasks auth --token <api-token> --team <workspace-id>"
}
func (c *AuthCmd) NeedsAuth() bool { return false }

func (c *AuthCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.token, "token", "", "")
	fs.StringVar(&c.team, "team", "", "")
}

func (c *AuthCmd) Run(ctx context.Context, cfg *config.Config, h *ops.Handler, args []string, out, errOut io.Writer) int {
	token := c.token
	if token == "" {
		token = os.Getenv(config.EnvAPIToken)
	}
	team := c.team
	if team == "" {
		team = os.Getenv(config.EnvTeamID)
	}

	if token == "" || team == "" {
		fmt.Fprintln(errOut, "error: API token and workspace ID required")
		fmt.Fprintln(errOut, "")
		fmt.Fprintln(errOut, "1. Open https://app.clickup.com/settings/apps and generate a personal token")
		fmt.Fprintln(errOut, "2. Find your workspace ID in the ClickUp URL (https://app.clickup.com/<id>/...)")
		fmt.Fprintln(errOut, "3. Run: clickup-tasks auth --token <api-token> --team <workspace-id>")
		return exitcode.AuthError
	}

	if err := cfg.SaveCredentials(token, team); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
