package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ghexport/ghexport/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the checkpoint cache",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove all checkpoint entries for a repository",
	RunE:  runCacheClean,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show checkpoint cache statistics for a repository",
	RunE:  runCacheStats,
}

func init() {
	cacheCmd.AddCommand(cacheCleanCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	rootCmd.AddCommand(cacheCmd)
}

// cacheConfig resolves just enough configuration for cache operations:
// owner and repository are required, credentials are not.
func cacheConfig() (config.Config, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return cfg, err
	}
	if cfg.Owner == "" {
		return cfg, fmt.Errorf("%w: owner is required", config.ErrInvalid)
	}
	if cfg.Repository == "" {
		return cfg, fmt.Errorf("%w: repository is required", config.ErrInvalid)
	}
	return cfg, nil
}

func runCacheClean(cmd *cobra.Command, _ []string) error {
	cfg, err := cacheConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening checkpoint store: %w", err)
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		return fmt.Errorf("cleaning checkpoint store: %w", err)
	}

	cmd.Printf("Checkpoint cache cleared for %s/%s.\n", cfg.Owner, cfg.Repository)
	return nil
}

func runCacheStats(cmd *cobra.Command, _ []string) error {
	cfg, err := cacheConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening checkpoint store: %w", err)
	}
	defer store.Close()

	stats, err := store.Stats()
	if err != nil {
		return fmt.Errorf("reading checkpoint stats: %w", err)
	}

	cmd.Printf("Location: %s\n", stats.Location)
	cmd.Printf("Entries:  %d\n", stats.Entries)
	cmd.Printf("Size:     %d bytes\n", stats.TotalBytes)
	return nil
}
