package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ghexport/ghexport/internal/archive"
	"github.com/ghexport/ghexport/internal/checkpoint"
	"github.com/ghexport/ghexport/internal/config"
	"github.com/ghexport/ghexport/internal/export"
	"github.com/ghexport/ghexport/internal/github"
	"github.com/ghexport/ghexport/internal/logger"
)

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	logger.SetVerbose(cfg.Verbose)

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening checkpoint store: %w", err)
	}
	defer store.Close()

	if cfg.CleanTemp {
		if err := store.Clear(); err != nil {
			return fmt.Errorf("cleaning checkpoint store: %w", err)
		}
		logger.Info("checkpoint store cleared")
	}

	runStore := store
	if !cfg.UseCache {
		runStore = checkpoint.Disabled()
	}

	client, err := github.NewClient(ctx, github.Options{
		Token:    cfg.Token,
		Password: cfg.Password,
		Owner:    cfg.Owner,
		Repo:     cfg.Repository,
		PerPage:  cfg.PerPage,
		Throttle: cfg.Throttle,
	})
	if err != nil {
		return err
	}

	// Resolve the repository first so bad credentials and unknown
	// repositories surface before the traversal starts.
	if _, err := client.Repository(ctx); err != nil {
		return err
	}

	exporter := export.New(client, runStore, cfg.State, cmd.ErrOrStderr())
	doc, err := exporter.Run(ctx)
	if err != nil {
		return err
	}

	if cfg.PrintJSON {
		return archive.Print(cmd.OutOrStdout(), doc)
	}

	path, err := archive.Write(doc, ".")
	if err != nil {
		return err
	}
	cmd.Printf("Export written to %s\n", path)
	return nil
}

// openStore builds the configured checkpoint store for the repository.
func openStore(cfg config.Config) (checkpoint.Store, error) {
	switch cfg.CacheBackend {
	case config.BackendSQLite:
		path := cfg.CacheDBPath
		if path == "" {
			var err error
			path, err = checkpoint.DefaultDBPath()
			if err != nil {
				return nil, err
			}
		}
		return checkpoint.NewSQLite(path, cfg.Owner, cfg.Repository)
	default:
		dir := cfg.CacheDir
		if dir == "" {
			dir = checkpoint.DefaultDir(cfg.Owner, cfg.Repository)
		}
		return checkpoint.NewFS(dir), nil
	}
}
