package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestNewConfig(t *testing.T) {
	dir := writeConfigDir(t, map[string]string{
		"meta.yaml": "files:\n  - base.yaml\n  - local.yaml\n",
		"base.yaml": "service:\n  name: xref-lsp\nlogging:\n  level: info\n",
	})
	t.Setenv(_configDirEnv, dir)

	provider, err := NewConfig()
	require.NoError(t, err)

	cfg := provider.(Config)
	assert.Equal(t, "config", cfg.Name())
	assert.Equal(t, "xref-lsp", cfg.Get("service.name").String())
	assert.False(t, cfg.Get("nonexistent.path").HasValue())
}

func TestNewConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{
			name:  "missing meta",
			files: map[string]string{},
		},
		{
			name:  "meta without files",
			files: map[string]string{"meta.yaml": "files: 12\n"},
		},
		{
			name:  "no listed file exists",
			files: map[string]string{"meta.yaml": "files:\n  - base.yaml\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := newConfigFromDir(writeConfigDir(t, tt.files))
			assert.Error(t, err)
			assert.Nil(t, provider)
		})
	}
}

func TestConfigFilePriority(t *testing.T) {
	dir := writeConfigDir(t, map[string]string{
		"meta.yaml":        "files:\n  - base.yaml\n  - development.yaml\n  - local.yaml\n",
		"base.yaml":        "service:\n  name: base-service\nlogging:\n  level: info\n",
		"development.yaml": "service:\n  name: dev-service\nlogging:\n  level: debug\n",
		"local.yaml":       "logging:\n  level: warn\n",
	})

	provider, err := newConfigFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, "dev-service", provider.Get("service.name").String())
	assert.Equal(t, "warn", provider.Get("logging.level").String())
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	dir := writeConfigDir(t, map[string]string{
		"meta.yaml": "files:\n  - base.yaml\n",
		"base.yaml": "jsonrpc:\n  address: 127.0.0.1:${XREF_TEST_PORT:4390}\n",
	})

	provider, err := newConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:4390", provider.Get("jsonrpc.address").String())

	t.Setenv("XREF_TEST_PORT", "8080")
	provider, err = newConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", provider.Get("jsonrpc.address").String())
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv(_configDirEnv, "/custom/config/path")
	assert.Equal(t, "/custom/config/path", getConfigDir())

	t.Setenv(_configDirEnv, "")
	assert.Equal(t, _defaultConfigDir, getConfigDir())
}

func TestShippedConfig(t *testing.T) {
	provider, err := newConfigFromDir(filepath.Join("..", "..", "config"))
	require.NoError(t, err)

	settings, err := NewSettings(provider)
	require.NoError(t, err)
	assert.Equal(t, "master", settings.DefaultBranch)
	assert.Equal(t, 50, settings.MaxExternalReferenceRepos)

	_, err = NewSugaredLogger(provider)
	assert.NoError(t, err)
}

func TestShippedConfigEnvironment(t *testing.T) {
	dir := filepath.Join("..", "..", "config")

	t.Setenv("XREF_ENVIRONMENT", "development")
	provider, err := newConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", provider.Get("logging.level").String())

	t.Setenv("XREF_ENVIRONMENT", "")
	provider, err = newConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "info", provider.Get("logging.level").String())
}
