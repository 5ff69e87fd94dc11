// Package config handles the XDG configuration directory, stored
// credentials, and environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "clickup-tasks"

	// CredentialsFile stores the API token and workspace ID.
	CredentialsFile = "credentials.json"

	// EnvAPIToken overrides the stored API token.
	EnvAPIToken = "CLICKUP_API_TOKEN"

	// EnvTeamID overrides the stored workspace ID.
	EnvTeamID = "CLICKUP_TEAM_ID"

	// EnvOAuthToken supplies an OAuth2 access token instead of a personal
	// API token. OAuth tokens are never stored on disk.
	EnvOAuthToken = "CLICKUP_OAUTH_TOKEN"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIToken is the ClickUp personal API token.
	APIToken string

	// OAuthToken is a ClickUp OAuth2 access token. When set it takes
	// precedence over APIToken. Environment-only; never persisted.
	OAuthToken string

	// TeamID is the ClickUp workspace (team) ID.
	TeamID string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// credentials is the on-disk shape of the credentials file.
type credentials struct {
	APIToken string `json:"api_token"`
	TeamID   string `json:"team_id"`
}

// New creates a Config with the default or specified config directory and
// loads credentials. Values come from, in increasing precedence: the stored
// credentials file, a .env file in the working directory, and the process
// environment. If configDir is empty, uses XDG_CONFIG_HOME/clickup-tasks or
// $HOME/.config/clickup-tasks.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}

	if err := cfg.loadCredentials(); err != nil {
		return nil, err
	}

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	if token := os.Getenv(EnvAPIToken); token != "" {
		cfg.APIToken = token
	}
	if team := os.Getenv(EnvTeamID); team != "" {
		cfg.TeamID = team
	}
	cfg.OAuthToken = os.Getenv(EnvOAuthToken)
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// CredentialsPath returns the path to the stored credentials file.
func (c *Config) CredentialsPath() string {
	return filepath.Join(c.Dir, CredentialsFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasCredentials reports whether an API token and workspace ID are available
// from any source.
func (c *Config) HasCredentials() bool {
	return c.APIToken != "" && c.TeamID != ""
}

// SaveCredentials persists the given token and workspace ID and applies them
// to the Config. The file is written with mode 0600.
func (c *Config) SaveCredentials(apiToken, teamID string) error {
	if err := c.EnsureDir(); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(credentials{APIToken: apiToken, TeamID: teamID}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.CredentialsPath(), data, 0600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	c.APIToken = apiToken
	c.TeamID = teamID
	return nil
}

// RemoveCredentials deletes the stored credentials file.
func (c *Config) RemoveCredentials() error {
	return os.Remove(c.CredentialsPath())
}

// loadCredentials reads the credentials file if present.
func (c *Config) loadCredentials() error {
	data, err := os.ReadFile(c.CredentialsPath())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading credentials: %w", err)
	}
	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return fmt.Errorf("parsing %s: %w", c.CredentialsPath(), err)
	}
	c.APIToken = creds.APIToken
	c.TeamID = creds.TeamID
	return nil
}
