package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultAPIBaseURL is the partner platform API endpoint.
	DefaultAPIBaseURL = "https://api.refero.dev"

	// Environment overrides.
	EnvAPIBaseURL = "PARTNERCTL_API_URL"
	EnvToken      = "PARTNERCTL_TOKEN"

	configFileName = "config.toml"
)

// programSlugRegex validates program slugs.
// Slugs start with a lowercase letter or digit, followed by lowercase
// letters, digits, or hyphens. Maximum length is 63 characters.
var programSlugRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,62}$`)

// ValidateProgramSlug checks if a program slug is valid.
// Valid slugs:
//   - Start with a lowercase letter or digit
//   - Contain only lowercase letters, digits, or hyphens
//   - Are between 1 and 63 characters long
func ValidateProgramSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("program slug cannot be empty")
	}

	if !programSlugRegex.MatchString(slug) {
		return fmt.Errorf("invalid program slug %q: must start with a lowercase letter or digit, contain only lowercase letters, digits, or hyphens, and be at most 63 characters", slug)
	}

	return nil
}

// Config is the client configuration loaded from config.toml.
type Config struct {
	// APIBaseURL is the platform API endpoint.
	APIBaseURL string `toml:"api_base_url"`

	// Token authenticates the partner against the platform.
	Token string `toml:"token"`

	// BrowserCommand opens URLs (e.g. program terms) from the TUI.
	// Parsed with shell quoting rules; the URL is appended.
	BrowserCommand string `toml:"browser_command"`
}

// Paths holds the directories partnerctl reads and writes.
type Paths struct {
	// ConfigDir holds config.toml.
	ConfigDir string

	// StateDir holds mutable state.
	StateDir string

	// DraftsDir holds saved application drafts, one file per program slug.
	DraftsDir string
}

// ConfigFile returns the path of the config file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, configFileName)
}

// DefaultPaths returns the standard path layout, honoring XDG
// directories where the platform provides them.
func DefaultPaths() *Paths {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}

	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			stateDir = filepath.Join(home, ".local", "state")
		} else {
			stateDir = "."
		}
	}

	base := &Paths{
		ConfigDir: filepath.Join(configDir, "partnerctl"),
		StateDir:  filepath.Join(stateDir, "partnerctl"),
	}
	base.DraftsDir = filepath.Join(base.StateDir, "drafts")
	return base
}

// Load reads the config file and applies defaults and environment
// overrides. A missing config file is not an error; defaults apply.
func Load(paths *Paths) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(paths.ConfigFile())
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", paths.ConfigFile(), err)
		}
	case os.IsNotExist(err):
		// Defaults only.
	default:
		return nil, fmt.Errorf("failed to read %s: %w", paths.ConfigFile(), err)
	}

	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		cfg.Token = v
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}

	return cfg, nil
}
