package anthropic

import (
	"context"

	einoClaude "github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino/components/model"
	"github.com/kiosk404/echoweather/internal/mcpclient/service/llm/provider/helper"
	"github.com/kiosk404/echoweather/internal/mcpclient/service/llm/provider/spi"
	"github.com/kiosk404/echoweather/internal/pkg/options"
)

const Name = "anthropic"

var _ spi.ProviderPlugin = (*Plugin)(nil)

type Plugin struct {
	helper.BasePlugin
}

func New() spi.ProviderPlugin {
	return &Plugin{
		BasePlugin: helper.BasePlugin{PluginName: Name},
	}
}

func (p *Plugin) BuildChatModel(ctx context.Context, cfg *options.ProviderConfig) (model.BaseChatModel, error) {
	conf := &einoClaude.Config{
		APIKey:    cfg.APIKey,
		Model:     cfg.Model,
		MaxTokens: cfg.MaxTokens,
	}
	// Claude rejects requests without an explicit output budget.
	if conf.MaxTokens <= 0 {
		conf.MaxTokens = options.DefaultMaxTokens
	}

	if cfg.BaseURL != "" {
		baseURL := cfg.BaseURL
		conf.BaseURL = &baseURL
	}

	return einoClaude.NewChatModel(ctx, conf)
}

func (p *Plugin) DefaultConfig() *options.ProviderConfig {
	return &options.ProviderConfig{
		APIKey: "${ANTHROPIC_API_KEY}",
		Model:  "claude-sonnet-4-5",
	}
}
