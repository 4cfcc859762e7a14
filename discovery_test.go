// FILE: lixenwraith/envconfig/discovery_test.go
package envconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDiscoverEnvFile tests env file lookup precedence
func TestDiscoverEnvFile(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		opts := DefaultEnvFileDiscovery("myapp")
		assert.Equal(t, DefaultEnvFile, opts.Name)
		assert.Equal(t, "MYAPP_ENV_FILE", opts.EnvVar)
		assert.Equal(t, "--env-file", opts.CLIFlag)
		assert.True(t, opts.UseCurrentDir)
	})

	t.Run("CLIFlagWins", func(t *testing.T) {
		t.Setenv("DISCO_ENV_FILE", "/from/env")

		opts := DefaultEnvFileDiscovery("disco")
		opts.Args = []string{"run", "--env-file", "/from/flag"}
		assert.Equal(t, "/from/flag", DiscoverEnvFile(opts))

		opts.Args = []string{"--env-file=/from/equals"}
		assert.Equal(t, "/from/equals", DiscoverEnvFile(opts))
	})

	t.Run("EnvVar", func(t *testing.T) {
		t.Setenv("DISCO_ENV_FILE", "/from/env")
		assert.Equal(t, "/from/env", DiscoverEnvFile(DefaultEnvFileDiscovery("disco")))
	})

	t.Run("SearchPaths", func(t *testing.T) {
		first := t.TempDir()
		second := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(second, "app.env"), []byte("A=1\n"), 0644))

		path := DiscoverEnvFile(EnvFileDiscoveryOptions{
			Name:  "app.env",
			Paths: []string{first, second},
		})
		assert.Equal(t, filepath.Join(second, "app.env"), path)
	})

	t.Run("CurrentDir", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		require.NoError(t, os.WriteFile(DefaultEnvFile, []byte("A=1\n"), 0644))

		cwd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(cwd, DefaultEnvFile), DiscoverEnvFile(EnvFileDiscoveryOptions{UseCurrentDir: true}))
	})

	t.Run("FallsBackToName", func(t *testing.T) {
		path := DiscoverEnvFile(EnvFileDiscoveryOptions{
			Name:  "never-exists.env",
			Paths: []string{t.TempDir()},
		})
		assert.Equal(t, "never-exists.env", path)
	})
}
