// FILE: lixenwraith/envconfig/discovery.go
package envconfig

import (
	"os"
	"path/filepath"
	"strings"
)

// EnvFileDiscoveryOptions configures how the .env file is located
type EnvFileDiscoveryOptions struct {
	// Name of the env file. Default: DefaultEnvFile
	Name string

	// Custom search paths, tried in order
	Paths []string

	// Environment variable holding an explicit path
	EnvVar string

	// CLI flag holding an explicit path (e.g., "--env-file")
	CLIFlag string

	// Args scanned for CLIFlag
	Args []string

	// Whether to search in the current directory
	UseCurrentDir bool
}

// DefaultEnvFileDiscovery returns sensible defaults for appName
func DefaultEnvFileDiscovery(appName string) EnvFileDiscoveryOptions {
	return EnvFileDiscoveryOptions{
		Name:          DefaultEnvFile,
		EnvVar:        strings.ToUpper(appName) + "_ENV_FILE",
		CLIFlag:       "--env-file",
		UseCurrentDir: true,
	}
}

// DiscoverEnvFile returns the env file path to use. An explicit CLI flag wins,
// then the environment variable, then the first existing file in the search
// paths. When nothing exists, the name itself is returned so Save can create it.
func DiscoverEnvFile(opts EnvFileDiscoveryOptions) string {
	name := opts.Name
	if name == "" {
		name = DefaultEnvFile
	}

	// CLI args first (highest priority)
	if opts.CLIFlag != "" {
		for i, arg := range opts.Args {
			if arg == opts.CLIFlag && i+1 < len(opts.Args) {
				return opts.Args[i+1]
			}
			if strings.HasPrefix(arg, opts.CLIFlag+"=") {
				return strings.TrimPrefix(arg, opts.CLIFlag+"=")
			}
		}
	}

	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			return path
		}
	}

	searchPaths := append([]string{}, opts.Paths...)
	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}

	for _, dir := range searchPaths {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}

	// No file found is not an error - Save creates it
	return name
}

// WithEnvFileDiscovery sets the env file from DiscoverEnvFile. Arguments given
// to WithArgs are scanned for opts.CLIFlag when opts.Args is empty, so call
// WithArgs first.
func (b *Builder) WithEnvFileDiscovery(opts EnvFileDiscoveryOptions) *Builder {
	if len(opts.Args) == 0 {
		opts.Args = b.args
	}
	b.envFile = DiscoverEnvFile(opts)
	return b
}
