package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghexport/ghexport/internal/checkpoint"
	"github.com/ghexport/ghexport/internal/config"
	"github.com/ghexport/ghexport/internal/github"
)

func TestReportError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid config maps to usage", fmt.Errorf("%w: owner is required", config.ErrInvalid), ExitUsageError},
		{"401 maps to auth", &github.APIError{StatusCode: 401}, ExitAuthError},
		{"404 maps to not found", &github.APIError{StatusCode: 404}, ExitNotFound},
		{"wrapped 404 maps to not found", fmt.Errorf("get repository: %w", &github.APIError{StatusCode: 404}), ExitNotFound},
		{"anything else maps to runtime", errors.New("boom"), ExitRuntimeError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, reportError(tc.err))
		})
	}
}

func TestOpenStore(t *testing.T) {
	t.Run("filesystem backend by default", func(t *testing.T) {
		cfg := config.Default()
		cfg.Owner = "octo"
		cfg.Repository = "hello"
		cfg.CacheDir = t.TempDir()

		store, err := openStore(cfg)

		require.NoError(t, err)
		defer store.Close()
		_, ok := store.(*checkpoint.FS)
		assert.True(t, ok)
	})

	t.Run("sqlite backend when configured", func(t *testing.T) {
		cfg := config.Default()
		cfg.Owner = "octo"
		cfg.Repository = "hello"
		cfg.CacheBackend = config.BackendSQLite
		cfg.CacheDBPath = t.TempDir() + "/checkpoints.db"

		store, err := openStore(cfg)

		require.NoError(t, err)
		defer store.Close()
		_, ok := store.(*checkpoint.SQLite)
		assert.True(t, ok)
	})
}
