// Package config resolves the immutable run configuration for ghexport.
//
// Values are layered, lowest precedence first: built-in defaults, the
// optional TOML file at ~/.ghexport/config.toml, the GITHUB_TOKEN
// environment variable, and CLI flags. The resolved Config is passed by
// value to the exporter and never mutated afterwards.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid marks configuration validation failures. The CLI maps it
// to the usage exit code.
var ErrInvalid = errors.New("invalid configuration")

// Backend selects the checkpoint store implementation.
type Backend string

const (
	// BackendFS stores checkpoints as JSON files under the temp
	// directory.
	BackendFS Backend = "fs"

	// BackendSQLite stores checkpoints in a SQLite database.
	BackendSQLite Backend = "sqlite"
)

// Config is the resolved, immutable run configuration.
type Config struct {
	// Token is the API token, or the username when Password is set.
	Token string

	// Password enables basic authentication (optional).
	Password string

	// Owner and Repository identify the repository to export.
	Owner      string
	Repository string

	// State filters milestones and issues: open, closed or all.
	State string

	// PerPage is the page size for list calls (1..100).
	PerPage int

	// PrintJSON prints the export to stdout instead of archiving.
	PrintJSON bool

	// CleanTemp purges the checkpoint store before running.
	CleanTemp bool

	// UseCache enables checkpoint reuse. When false every entity is
	// refetched.
	UseCache bool

	// CacheBackend selects the checkpoint store implementation.
	CacheBackend Backend

	// CacheDir overrides the filesystem store directory.
	CacheDir string

	// CacheDBPath overrides the SQLite store location.
	CacheDBPath string

	// Throttle is the proactive request rate in requests per second.
	// Zero uses the client default.
	Throttle float64

	// Verbose enables debug logging.
	Verbose bool
}

// fileConfig is the TOML schema of ~/.ghexport/config.toml. Every field
// is optional.
type fileConfig struct {
	Token        string  `toml:"token"`
	State        string  `toml:"state"`
	PerPage      int     `toml:"per_page"`
	UseCache     *bool   `toml:"use_cache"`
	CacheBackend string  `toml:"cache_backend"`
	CacheDir     string  `toml:"cache_dir"`
	CacheDBPath  string  `toml:"cache_db_path"`
	Throttle     float64 `toml:"throttle"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		State:        "all",
		PerPage:      100,
		UseCache:     true,
		CacheBackend: BackendFS,
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".ghexport", "config.toml"), nil
}

// Load layers the config file (if present) and environment over the
// defaults. Flags are applied afterwards by the CLI.
func Load() (Config, error) {
	cfg := Default()

	path, err := DefaultPath()
	if err == nil {
		if fileCfg, err := loadFile(path); err != nil {
			return cfg, err
		} else if fileCfg != nil {
			applyFile(&cfg, fileCfg)
		}
	}

	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.Token = token
	}

	return cfg, nil
}

// loadFile parses a TOML config file. A missing file is not an error.
func loadFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &fc, nil
}

func applyFile(cfg *Config, fc *fileConfig) {
	if fc.Token != "" {
		cfg.Token = fc.Token
	}
	if fc.State != "" {
		cfg.State = fc.State
	}
	if fc.PerPage > 0 {
		cfg.PerPage = fc.PerPage
	}
	if fc.UseCache != nil {
		cfg.UseCache = *fc.UseCache
	}
	if fc.CacheBackend != "" {
		cfg.CacheBackend = Backend(fc.CacheBackend)
	}
	if fc.CacheDir != "" {
		cfg.CacheDir = fc.CacheDir
	}
	if fc.CacheDBPath != "" {
		cfg.CacheDBPath = fc.CacheDBPath
	}
	if fc.Throttle > 0 {
		cfg.Throttle = fc.Throttle
	}
}

// Validate checks the resolved configuration. All failures wrap
// ErrInvalid.
func (c Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("%w: user token is required (flag -u or GITHUB_TOKEN)", ErrInvalid)
	}
	if c.Owner == "" {
		return fmt.Errorf("%w: owner is required", ErrInvalid)
	}
	if c.Repository == "" {
		return fmt.Errorf("%w: repository is required", ErrInvalid)
	}
	switch c.State {
	case "open", "closed", "all":
	default:
		return fmt.Errorf("%w: state must be open, closed or all, got %q", ErrInvalid, c.State)
	}
	if c.PerPage < 1 || c.PerPage > 100 {
		return fmt.Errorf("%w: per_page must be between 1 and 100, got %d", ErrInvalid, c.PerPage)
	}
	switch c.CacheBackend {
	case BackendFS, BackendSQLite:
	default:
		return fmt.Errorf("%w: cache backend must be fs or sqlite, got %q", ErrInvalid, c.CacheBackend)
	}
	return nil
}
