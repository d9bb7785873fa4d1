package gemini

import (
	"context"
	"fmt"

	"github.com/bytedance/gg/gptr"
	einoGemini "github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/components/model"
	"github.com/kiosk404/echoweather/internal/mcpclient/service/llm/provider/helper"
	"github.com/kiosk404/echoweather/internal/mcpclient/service/llm/provider/spi"
	"github.com/kiosk404/echoweather/internal/pkg/options"
	"google.golang.org/genai"
)

const Name = "gemini"

// Compile-time check: Plugin implements ProviderPlugin.
var _ spi.ProviderPlugin = (*Plugin)(nil)

type Plugin struct {
	helper.BasePlugin
}

func New() spi.ProviderPlugin {
	return &Plugin{
		BasePlugin: helper.BasePlugin{PluginName: Name},
	}
}

// BuildChatModel uses Google's genai client instead of the OpenAI-compatible path.
func (p *Plugin) BuildChatModel(ctx context.Context, cfg *options.ProviderConfig) (model.BaseChatModel, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}
	if cfg.APIVersion != "" {
		clientCfg.HTTPOptions.APIVersion = cfg.APIVersion
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client for %s: %w", cfg.Model, err)
	}

	conf := &einoGemini.Config{
		Client: client,
		Model:  cfg.Model,
	}
	if cfg.MaxTokens > 0 {
		conf.MaxTokens = gptr.Of(cfg.MaxTokens)
	}

	return einoGemini.NewChatModel(ctx, conf)
}

func (p *Plugin) DefaultConfig() *options.ProviderConfig {
	return &options.ProviderConfig{
		APIKey: "${GOOGLE_API_KEY}",
		Model:  "gemini-2.0-flash",
	}
}
