package deepseek

import (
	"context"

	einoDeepseek "github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino/components/model"
	"github.com/kiosk404/echoweather/internal/mcpclient/service/llm/provider/helper"
	"github.com/kiosk404/echoweather/internal/mcpclient/service/llm/provider/spi"
	"github.com/kiosk404/echoweather/internal/pkg/options"
)

const Name = "deepseek"

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
	conf := &einoDeepseek.ChatModelConfig{
		APIKey:             cfg.APIKey,
		Model:              cfg.Model,
		MaxTokens:          cfg.MaxTokens,
		ResponseFormatType: einoDeepseek.ResponseFormatTypeText,
	}

	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}

	return einoDeepseek.NewChatModel(ctx, conf)
}

func (p *Plugin) DefaultConfig() *options.ProviderConfig {
	return &options.ProviderConfig{
		BaseURL: "https://api.deepseek.com/v1",
		APIKey:  "${DEEPSEEK_API_KEY}",
		Model:   "deepseek-chat",
	}
}
