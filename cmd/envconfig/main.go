// Package main provides the envconfig command: resolve a template against the
// environment and keep .env files in sync with it.
package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/envconfig"
)

var version = "dev"

// Exit codes
const (
	exitSuccess = 0
	exitMissing = 1 // Mandatory keys missing or validation failed
	exitError   = 2 // Bad template, I/O failure
)

var (
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "9", Dark: "9"}).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "8", Dark: "7"})
)

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(version))
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, envconfig.ErrMissingKeys):
		return exitMissing
	default:
		return exitError
	}
}

// rootFlags are shared by every subcommand
type rootFlags struct {
	template string
	envFile  string
	prefix   string
	verbose  bool
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	flags := &rootFlags{}
	logger := logrus.New()
	logger.SetOutput(errOut)

	cmd := &cobra.Command{
		Use:   "envconfig",
		Short: "Resolve configuration templates against the environment",
		Long: `envconfig resolves a template of typed defaults against environment variables
and an optional .env file, reporting every missing mandatory key at once.

Templates are flat TOML or YAML files. An empty string or nan default marks a key mandatory.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.template, "template", "t", "", "template file (.toml, .yaml)")
	pf.StringVar(&flags.envFile, "env-file", "", "read values from this .env file below the environment (default: discovered)")
	pf.StringVar(&flags.prefix, "prefix", "", "environment variable prefix")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(
		newCheckCmd(flags, logger),
		newSaveCmd(flags, logger),
		newAppendCmd(flags, logger),
		newEncodeCmd(),
	)
	return cmd
}

// resolveTemplate loads the template file and resolves it. On missing keys
// the partial template is returned with the error.
func resolveTemplate(flags *rootFlags, logger logrus.FieldLogger, mode envconfig.Mode) (*envconfig.Template, error) {
	if flags.template == "" {
		return nil, errors.New("--template is required")
	}
	tmpl, err := envconfig.LoadTemplate(flags.template)
	if err != nil {
		return nil, err
	}

	b := envconfig.NewBuilder().
		WithTemplate(tmpl).
		WithEnvPrefix(flags.prefix).
		WithMode(mode).
		WithLogger(logger)
	if flags.envFile != "" {
		b = b.WithEnvFile(flags.envFile)
	} else {
		b = b.WithEnvFileDiscovery(envFileDiscovery())
	}
	return b.Build()
}

// envFileDiscovery looks for .env via ENVCONFIG_ENV_FILE, then the current directory
func envFileDiscovery() envconfig.EnvFileDiscoveryOptions {
	return envconfig.DefaultEnvFileDiscovery("envconfig")
}

// targetFile is the file save and append write to
func targetFile(file string) string {
	if file != "" {
		return file
	}
	return envconfig.DiscoverEnvFile(envFileDiscovery())
}

// reportMissing lists missing keys one per line on w
func reportMissing(w io.Writer, err error) {
	var missing *envconfig.MissingKeysError
	if !errors.As(err, &missing) {
		return
	}
	for _, key := range missing.Keys {
		io.WriteString(w, missingStyle.Render("missing")+" "+key+"\n")
	}
}
