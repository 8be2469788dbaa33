package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrConfigNotFound indicates the credentials file does not exist.
	ErrConfigNotFound = errors.New("credentials file not found")

	// ErrInvalidConfig indicates the credentials file could not be parsed
	// or lacks a required key.
	ErrInvalidConfig = errors.New("invalid credentials file")
)

// MaxResultsCap is the largest page a single search may request.
const MaxResultsCap = 1000

// Credentials describe how to reach the JIRA server.
type Credentials struct {
	Server             string        `yaml:"server"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	InsecureSkipVerify bool          `yaml:"insecure_skip_verify,omitempty"`
	Timeout            time.Duration `yaml:"timeout,omitempty"`
}

// Config holds the runtime settings of the tool. Credentials are loaded
// separately, right before a command needs the server.
type Config struct {
	CredentialsPath string
	HistoryPath     string
	LogCalls        bool
	MaxResults      int
}

// DefaultConfig returns a Config rooted at home.
func DefaultConfig(home string) Config {
	return Config{
		CredentialsPath: filepath.Join(home, ".ask_jira.yaml"),
		HistoryPath:     filepath.Join(home, ".ask_jira", "history.db"),
		LogCalls:        false,
		MaxResults:      MaxResultsCap,
	}
}

// LoadConfig reads settings from environment variables, falling back to
// defaults for any unset values.
func LoadConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	cfg := DefaultConfig(home)

	if v := os.Getenv("ASKJIRA_CONF"); v != "" {
		cfg.CredentialsPath = expandHome(v, home)
	}
	if v := os.Getenv("ASKJIRA_HISTORY"); v != "" {
		cfg.HistoryPath = expandHome(v, home)
	}
	if v := os.Getenv("ASKJIRA_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("ASKJIRA_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= MaxResultsCap {
			cfg.MaxResults = n
		}
	}

	return cfg, nil
}

// LoadCredentials reads and validates the YAML credentials file at path.
func LoadCredentials(path string) (Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Credentials{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return Credentials{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if err := creds.Validate(); err != nil {
		return Credentials{}, fmt.Errorf("%s: %w", path, err)
	}
	return creds, nil
}

// Validate checks that the required keys are present and the server URL is
// absolute.
func (c Credentials) Validate() error {
	var missing []string
	if c.Server == "" {
		missing = append(missing, "server")
	}
	if c.User == "" {
		missing = append(missing, "user")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidConfig, strings.Join(missing, ", "))
	}

	u, err := url.Parse(c.Server)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: server %q is not an absolute URL", ErrInvalidConfig, c.Server)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidConfig)
	}
	return nil
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
