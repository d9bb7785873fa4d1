package azure

import (
	"context"
	"errors"

	"github.com/bytedance/gg/gptr"
	einoOpenAI "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/kiosk404/echoweather/internal/mcpclient/service/llm/provider/helper"
	"github.com/kiosk404/echoweather/internal/mcpclient/service/llm/provider/spi"
	"github.com/kiosk404/echoweather/internal/pkg/options"
)

const Name = "azure"

const defaultAPIVersion = "2024-12-01-preview"

var _ spi.ProviderPlugin = (*Plugin)(nil)

// Plugin talks to an Azure OpenAI deployment. The model name is used as the
// deployment name.
type Plugin struct {
	helper.BasePlugin
}

func New() spi.ProviderPlugin {
	return &Plugin{
		BasePlugin: helper.BasePlugin{PluginName: Name},
	}
}

func (p *Plugin) BuildChatModel(ctx context.Context, cfg *options.ProviderConfig) (model.BaseChatModel, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("azure endpoint is required (set AZUREOPENAI_ENDPOINT or --model.base-url)")
	}

	conf := &einoOpenAI.ChatModelConfig{
		ByAzure:    true,
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		APIVersion: cfg.APIVersion,
		Model:      cfg.Model,
		Timeout:    cfg.Timeout,
	}
	if conf.APIVersion == "" {
		conf.APIVersion = defaultAPIVersion
	}
	if cfg.MaxTokens > 0 {
		conf.MaxTokens = gptr.Of(cfg.MaxTokens)
	}

	return einoOpenAI.NewChatModel(ctx, conf)
}

func (p *Plugin) DefaultConfig() *options.ProviderConfig {
	return &options.ProviderConfig{
		BaseURL:    "${AZUREOPENAI_ENDPOINT}",
		APIKey:     "${AZUREOPENAI_API_KEY}",
		APIVersion: defaultAPIVersion,
		Model:      "gpt-4o",
	}
}
