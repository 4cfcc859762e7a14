package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/envconfig"
)

const testTemplate = `
JWT_SECRET = ""
HOST = "0.0.0.0"
PORT = 8100
AUTO_SAVE = false
`

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func setup(t *testing.T) (tmplPath, dir string) {
	t.Helper()
	dir = t.TempDir()
	tmplPath = filepath.Join(dir, "template.toml")
	require.NoError(t, os.WriteFile(tmplPath, []byte(testTemplate), 0644))
	return tmplPath, dir
}

func TestCheckCommand(t *testing.T) {
	tmplPath, _ := setup(t)

	t.Run("Resolved", func(t *testing.T) {
		t.Setenv("CLI_JWT_SECRET", "s3cret")
		t.Setenv("CLI_AUTO_SAVE", "on")

		out, _, err := runCmd(t, "check", "-t", tmplPath, "--prefix", "CLI_")
		require.NoError(t, err)
		assert.Equal(t, "JWT_SECRET=s3cret\nHOST=0.0.0.0\nPORT=8100\nAUTO_SAVE=true\n", out)
	})

	t.Run("Missing", func(t *testing.T) {
		_, errOut, err := runCmd(t, "check", "-t", tmplPath, "--prefix", "CLI_UNSET_")
		require.Error(t, err)
		assert.ErrorIs(t, err, envconfig.ErrMissingKeys)
		assert.Contains(t, errOut, "JWT_SECRET")
		assert.Equal(t, exitMissing, exitCode(err))
	})

	t.Run("EnvFile", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(envFile, []byte("JWT_SECRET=from-file\nPORT=1\n"), 0644))

		out, _, err := runCmd(t, "check", "-t", tmplPath, "--prefix", "CLI_UNSET_", "--env-file", envFile)
		require.NoError(t, err)
		assert.Contains(t, out, "JWT_SECRET=from-file\n")
		assert.Contains(t, out, "PORT=1\n")
	})

	t.Run("TemplateRequired", func(t *testing.T) {
		_, _, err := runCmd(t, "check")
		require.Error(t, err)
		assert.Equal(t, exitError, exitCode(err))
	})
}

func TestSaveCommand(t *testing.T) {
	tmplPath, dir := setup(t)
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("# local\nPORT=8100\n"), 0644))
	t.Setenv("CLI_JWT_SECRET", "1")

	out, _, err := runCmd(t, "save", "-t", tmplPath, "--prefix", "CLI_", "-f", envFile, "-k", "JWT_SECRET", "-k", "PORT")
	require.NoError(t, err)
	assert.Contains(t, out, "updated")

	data, err := os.ReadFile(envFile)
	require.NoError(t, err)
	assert.Equal(t, "# local\nPORT=8100\nJWT_SECRET=1\n", string(data))

	out, _, err = runCmd(t, "save", "-t", tmplPath, "--prefix", "CLI_", "-f", envFile, "-k", "JWT_SECRET,PORT")
	require.NoError(t, err)
	assert.Contains(t, out, "unchanged")
}

func TestDiscoveredEnvFile(t *testing.T) {
	tmplPath, dir := setup(t)
	envFile := filepath.Join(dir, "discovered.env")
	require.NoError(t, os.WriteFile(envFile, []byte("JWT_SECRET=found\n"), 0644))
	t.Setenv("ENVCONFIG_ENV_FILE", envFile)
	t.Setenv("CLI_PORT", "9000")

	out, _, err := runCmd(t, "check", "-t", tmplPath, "--prefix", "CLI_")
	require.NoError(t, err)
	assert.Contains(t, out, "JWT_SECRET=found\n")

	// save without --file writes back into the discovered file
	out, _, err = runCmd(t, "save", "-t", tmplPath, "--prefix", "CLI_", "-k", "PORT")
	require.NoError(t, err)
	assert.Contains(t, out, envFile)

	data, err := os.ReadFile(envFile)
	require.NoError(t, err)
	assert.Equal(t, "JWT_SECRET=found\nPORT=9000\n", string(data))
}

func TestAppendCommand(t *testing.T) {
	tmplPath, dir := setup(t)
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PORT=1\n"), 0644))
	t.Setenv("CLI_JWT_SECRET", "1")
	t.Setenv("CLI_PORT", "2")

	_, _, err := runCmd(t, "append", "-t", tmplPath, "--prefix", "CLI_", "-f", envFile, "-k", "PORT")
	require.NoError(t, err)

	data, err := os.ReadFile(envFile)
	require.NoError(t, err)
	assert.Equal(t, "PORT=1\nPORT=2\n", string(data))

	_, _, err = runCmd(t, "append", "-t", tmplPath, "--prefix", "CLI_", "-f", envFile)
	assert.Error(t, err)
}

func TestEncodeCommand(t *testing.T) {
	out, _, err := runCmd(t, "encode", "plain", `say "hi"`, "it's", `a"b'c`)
	require.NoError(t, err)
	assert.Equal(t, "plain\n'say \"hi\"'\n\"it's\"\n\"a\\\"b'c\"\n", out)

	_, _, err = runCmd(t, "encode")
	assert.Error(t, err)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitMissing, exitCode(&envconfig.MissingKeysError{Keys: []string{"A"}}))
	assert.Equal(t, exitError, exitCode(errors.New("boom")))
}
