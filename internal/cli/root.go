// Package cli implements the ghexport command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ghexport/ghexport/internal/config"
	"github.com/ghexport/ghexport/internal/github"
)

const version = "1.0.0"

// Exit codes, one per error kind.
const (
	ExitSuccess      = 0
	ExitRuntimeError = 1
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitNotFound     = 4
)

var flags struct {
	userToken    string
	password     string
	owner        string
	repository   string
	printJSON    bool
	cleanTemp    bool
	state        string
	noCache      bool
	cacheBackend string
	verbose      bool
}

var rootCmd = &cobra.Command{
	Use:   "ghexport",
	Short: "Export a GitHub repository to a local JSON archive",
	Long: `ghexport iterates over each milestone of a GitHub repository and
exports all issues and pull requests with their comments.

By default the result is a zip archive in the current directory
containing a JSON file with the exported repository. With --print_json
the document is printed to stdout instead.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runExport,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.userToken, "user-token", "u", "", "GitHub user or API token (defaults to GITHUB_TOKEN)")
	pf.StringVarP(&flags.password, "password", "p", "", "GitHub password (optional)")
	pf.StringVarP(&flags.owner, "owner", "o", "", "owner of the GitHub project")
	pf.StringVarP(&flags.repository, "repository", "r", "", "GitHub repository name")
	pf.StringVar(&flags.cacheBackend, "cache-backend", "", "checkpoint cache backend: fs or sqlite")
	pf.BoolVar(&flags.verbose, "verbose", false, "enable verbose logging")

	f := rootCmd.Flags()
	f.BoolVar(&flags.printJSON, "print_json", false, "print the JSON result instead of archiving")
	f.BoolVar(&flags.cleanTemp, "clean_temp", false, "purge the checkpoint cache before running")
	f.StringVar(&flags.state, "state", "", "milestone and issue state filter: open, closed or all")
	f.BoolVar(&flags.noCache, "no-cache", false, "disable checkpoint reuse, always refetch")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", config.ErrInvalid, err)
	})
}

// Run executes the root command and returns the process exit code.
func Run(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return reportError(err)
	}
	return ExitSuccess
}

// reportError prints a human-readable message for err and maps it to
// an exit code.
func reportError(err error) int {
	switch {
	case errors.Is(err, config.ErrInvalid):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitUsageError
	case github.IsUnauthorized(err):
		fmt.Fprintln(os.Stderr, "Error: incorrect credentials")
		return ExitAuthError
	case github.IsNotFound(err):
		fmt.Fprintln(os.Stderr, "Error: incorrect GitHub owner or repository")
		return ExitNotFound
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitRuntimeError
	}
}

// resolveConfig layers CLI flags over the loaded configuration.
func resolveConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}

	if flags.userToken != "" {
		cfg.Token = flags.userToken
	}
	if flags.password != "" {
		cfg.Password = flags.password
	}
	if flags.owner != "" {
		cfg.Owner = flags.owner
	}
	if flags.repository != "" {
		cfg.Repository = flags.repository
	}
	if flags.state != "" {
		cfg.State = flags.state
	}
	if flags.cacheBackend != "" {
		cfg.CacheBackend = config.Backend(flags.cacheBackend)
	}
	if flags.noCache {
		cfg.UseCache = false
	}
	if flags.printJSON {
		cfg.PrintJSON = true
	}
	if flags.cleanTemp {
		cfg.CleanTemp = true
	}
	cfg.Verbose = flags.verbose

	return cfg, nil
}
