package core

import (
	"fmt"

	"github.com/uber/xref-lsp/src/xref/entity"
	"go.uber.org/config"
	"go.uber.org/fx"
)

// SettingsModule provides the Go navigation settings.
var SettingsModule = fx.Options(
	fx.Provide(NewSettings),
)

// NewSettings reads the navigation settings and applies defaults to unset fields.
// An empty server address is not an error here; every navigation request reports it instead.
func NewSettings(provider config.Provider) (entity.Settings, error) {
	var settings entity.Settings
	if err := provider.Get(entity.SettingsConfigKey).Populate(&settings); err != nil {
		return entity.Settings{}, fmt.Errorf("getting config field %q: %w", entity.SettingsConfigKey, err)
	}

	settings = settings.WithDefaults()
	switch settings.SearchBackend {
	case entity.SearchBackendSourcegraph, entity.SearchBackendGitHub:
	default:
		return entity.Settings{}, fmt.Errorf("unknown search backend %q", settings.SearchBackend)
	}
	return settings, nil
}
