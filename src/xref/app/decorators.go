package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/uber/xref-lsp/src/xref/internal/core"
	"go.uber.org/config"
	"go.uber.org/fx"
)

// Context describes where the daemon is running.
type Context struct {
	Environment        string `yaml:"environment"`
	RuntimeEnvironment string `yaml:"runtimeEnvironment"`
}

const (
	// EnvLocal indicates that the service is running locally.
	EnvLocal = "local"

	// EnvDevelopment indicates that the service is running in a development environment.
	EnvDevelopment = "development"

	// Environment variables
	_envXrefEnvironment = "XREF_ENVIRONMENT"
)

func decorateEnvContext(env Context) Context {
	envValue := EnvLocal
	if os.Getenv(_envXrefEnvironment) == EnvDevelopment {
		envValue = EnvDevelopment
	}

	env.Environment = envValue
	env.RuntimeEnvironment = envValue
	return env
}

// DecorateConfigParams is the set of dependencies required to decorate the config.Provider.
type DecorateConfigParams struct {
	fx.In

	Cfg config.Provider
}

// decorateConfigProvider includes any steps that modify the config.Provider before it is used, or use its data for any startup related activities.
func decorateConfigProvider(p DecorateConfigParams) (config.Provider, error) {
	if err := ensureLogFolder(p.Cfg); err != nil {
		return nil, fmt.Errorf("ensuring log folder: %w", err)
	}

	return p.Cfg, nil
}

// Ensure that all configured logging output directories exist or create if necessary.
func ensureLogFolder(cfg config.Provider) error {
	var c core.LoggingConfig
	if err := cfg.Get("logging").Populate(&c); err != nil {
		return fmt.Errorf("loading logging config: %w", err)
	}

	for _, outputPath := range c.OutputPaths {
		if outputPath == "stdout" || outputPath == "stderr" || strings.Contains(outputPath, "://") {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
			return fmt.Errorf("creating logging directory: %w", err)
		}
	}

	return nil
}
