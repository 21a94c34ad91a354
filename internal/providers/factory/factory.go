package factory

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/boardboost/boardboost/internal/config"
	"github.com/boardboost/boardboost/internal/providers"
	"github.com/boardboost/boardboost/internal/providers/anthropic"
	"github.com/boardboost/boardboost/internal/providers/openai"
)

// CreateProvider creates a provider instance based on configuration.
func CreateProvider(id string, cfg config.ProviderConfig) (providers.Provider, error) {
	switch cfg.Type {
	case "openai", "openai-compatible", "ollama":
		return openai.NewProvider(id, cfg)
	case "anthropic":
		return anthropic.NewProvider(id, cfg)
	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
}

// BuildRegistry constructs providers for every configured entry and
// registers them. A provider that fails to construct is skipped with a
// warning; the conversation layer falls back to the default provider for
// unknown names, so a partial registry still serves requests.
func BuildRegistry(cfg *config.Config, log *logrus.Logger) *providers.Registry {
	registry := providers.NewRegistry(cfg.DefaultProvider)

	for id, providerCfg := range cfg.Providers {
		provider, err := CreateProvider(id, providerCfg)
		if err != nil {
			log.WithError(err).WithField("provider", id).Warn("skipping provider")
			continue
		}
		registry.Register(id, provider)
	}

	return registry
}
