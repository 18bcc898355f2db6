package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	t.Run("prints the version", func(t *testing.T) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"version"})
		defer rootCmd.SetArgs(nil)

		err := rootCmd.Execute()

		require.NoError(t, err)
		assert.Contains(t, out.String(), "ghexport version "+version)
	})
}
