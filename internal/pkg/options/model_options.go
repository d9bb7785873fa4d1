package options

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// ModelOptions selects the hosted chat model and carries user overrides for
// the provider's defaults. Empty fields fall back to the provider defaults.
type ModelOptions struct {
	Provider   string        `json:"provider" mapstructure:"provider"`
	Name       string        `json:"name" mapstructure:"name"`
	BaseURL    string        `json:"base-url" mapstructure:"base-url"`
	APIKey     string        `json:"-" mapstructure:"api-key"`
	APIVersion string        `json:"api-version" mapstructure:"api-version"`
	MaxTokens  int           `json:"max-tokens" mapstructure:"max-tokens"`
	Timeout    time.Duration `json:"timeout" mapstructure:"timeout"`
}

// ProviderConfig is the fully resolved connection info handed to a provider
// plugin. APIKey and BaseURL may hold "${ENV_VAR}" references until resolved.
type ProviderConfig struct {
	BaseURL    string        `json:"base-url" mapstructure:"base-url"`
	APIKey     string        `json:"-" mapstructure:"api-key"`
	APIVersion string        `json:"api-version" mapstructure:"api-version"`
	Model      string        `json:"model" mapstructure:"model"`
	MaxTokens  int           `json:"max-tokens" mapstructure:"max-tokens"`
	Timeout    time.Duration `json:"timeout" mapstructure:"timeout"`
}

const DefaultMaxTokens = 4096

func NewModelOptions() *ModelOptions {
	return &ModelOptions{
		Provider:  "azure",
		MaxTokens: DefaultMaxTokens,
	}
}

func (o *ModelOptions) Validate() []error {
	var errs []error
	if o.Provider == "" {
		errs = append(errs, errors.New("model.provider is required"))
	}
	if o.MaxTokens < 0 {
		errs = append(errs, fmt.Errorf("invalid model.max-tokens %d, must not be negative", o.MaxTokens))
	}
	if o.Timeout < 0 {
		errs = append(errs, fmt.Errorf("invalid model.timeout %s, must not be negative", o.Timeout))
	}
	return errs
}

// Overrides returns the options as a ProviderConfig, for merging over a
// provider's defaults.
func (o *ModelOptions) Overrides() *ProviderConfig {
	return &ProviderConfig{
		BaseURL:    o.BaseURL,
		APIKey:     o.APIKey,
		APIVersion: o.APIVersion,
		Model:      o.Name,
		MaxTokens:  o.MaxTokens,
		Timeout:    o.Timeout,
	}
}

func (o *ModelOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Provider, "model.provider", o.Provider, "Chat model provider: azure, openai, anthropic, deepseek, gemini, glm, kimi, ollama or qwen.")
	fs.StringVar(&o.Name, "model.name", o.Name, "Model (or Azure deployment) name. Empty uses the provider default.")
	fs.StringVar(&o.BaseURL, "model.base-url", o.BaseURL, "Override the provider endpoint.")
	fs.StringVar(&o.APIKey, "model.api-key", o.APIKey, "Override the provider API key. Prefer the provider's environment variable.")
	fs.StringVar(&o.APIVersion, "model.api-version", o.APIVersion, "API version (Azure OpenAI only).")
	fs.IntVar(&o.MaxTokens, "model.max-tokens", o.MaxTokens, "Maximum output tokens per completion.")
	fs.DurationVar(&o.Timeout, "model.timeout", o.Timeout, "HTTP timeout for model calls on providers that support it. 0 means none.")
}
