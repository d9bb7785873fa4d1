package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/jinzhu/copier"
	"github.com/kiosk404/echoweather/internal/mcpclient/service/llm/provider"
	"github.com/kiosk404/echoweather/internal/mcpclient/service/llm/provider/helper"
	"github.com/kiosk404/echoweather/internal/pkg/options"
	"github.com/kiosk404/echoweather/pkg/logger"
)

const moduleName = "llm"

// Module resolves ModelOptions against a provider registry and builds the
// chat model used by the orchestrator.
type Module struct {
	registry *provider.Registry
}

// New creates a Module backed by the in-tree providers.
func New() *Module {
	return NewWithRegistry(provider.NewInTreeRegistry())
}

func NewWithRegistry(r *provider.Registry) *Module {
	return &Module{registry: r}
}

// Providers lists the provider names this module can build.
func (m *Module) Providers() []string {
	return m.registry.List()
}

// ResolveConfig merges the user's overrides over the provider defaults and
// expands "${ENV_VAR}" references. Non-empty overrides always win.
func (m *Module) ResolveConfig(opts *options.ModelOptions) (*options.ProviderConfig, error) {
	factory, err := m.registry.Get(opts.Provider)
	if err != nil {
		return nil, err
	}

	cfg := factory().DefaultConfig()
	if cfg == nil {
		cfg = &options.ProviderConfig{}
	}
	if err := copier.CopyWithOption(cfg, opts.Overrides(), copier.Option{IgnoreEmpty: true, DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("merge provider %q config: %w", opts.Provider, err)
	}

	cfg.APIKey = helper.ResolveEnvValue(cfg.APIKey)
	cfg.BaseURL = helper.ResolveEnvValue(cfg.BaseURL)
	return cfg, nil
}

// NewChatModel builds the chat model selected by opts.
func (m *Module) NewChatModel(ctx context.Context, opts *options.ModelOptions) (model.BaseChatModel, error) {
	cfg, err := m.ResolveConfig(opts)
	if err != nil {
		return nil, err
	}

	factory, err := m.registry.Get(opts.Provider)
	if err != nil {
		return nil, err
	}

	cm, err := factory().BuildChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("build %s chat model %q: %w", opts.Provider, cfg.Model, err)
	}

	logger.InfoX(moduleName, "[LLM] using provider %s, model %s", opts.Provider, cfg.Model)
	return cm, nil
}
