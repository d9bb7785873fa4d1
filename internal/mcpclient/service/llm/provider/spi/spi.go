package spi

import (
	"context"

	"github.com/cloudwego/eino/components/model"
	"github.com/kiosk404/echoweather/internal/pkg/options"
)

// ProviderPlugin is the interface for chat model provider plugins.
type ProviderPlugin interface {
	// Name returns the name of the provider plugin.
	Name() string
	// DefaultConfig returns the provider defaults. APIKey and BaseURL may hold
	// "${ENV_VAR}" references that are resolved after user overrides are merged.
	DefaultConfig() *options.ProviderConfig
	// BuildChatModel builds a BaseChatModel from a fully resolved config.
	// The returned model must honour model.WithTools and model.WithMaxTokens
	// passed to Generate.
	BuildChatModel(ctx context.Context, cfg *options.ProviderConfig) (model.BaseChatModel, error)
}

// PluginFactory is a function that creates a ProviderPlugin instance.
type PluginFactory func() ProviderPlugin
