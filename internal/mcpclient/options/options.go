package options

import (
	"errors"
	"fmt"
	"time"

	mcpsvc "github.com/kiosk404/echoweather/internal/mcpclient/service/mcp"
	genericoptions "github.com/kiosk404/echoweather/internal/pkg/options"
	"github.com/kiosk404/echoweather/pkg/utils/json"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable the client reads, e.g.
// MCPCLIENT_MODEL_PROVIDER for --model.provider.
const EnvPrefix = "MCPCLIENT"

const DefaultQueryTimeout = 2 * time.Minute

// MCPOptions configures the connection to the tool server.
type MCPOptions struct {
	InitTimeout time.Duration `json:"init-timeout" mapstructure:"init-timeout"`
}

func NewMCPOptions() *MCPOptions {
	return &MCPOptions{InitTimeout: mcpsvc.DefaultInitTimeout}
}

func (o *MCPOptions) Validate() []error {
	if o.InitTimeout < 0 {
		return []error{fmt.Errorf("invalid mcp.init-timeout %s, must not be negative", o.InitTimeout)}
	}
	return nil
}

func (o *MCPOptions) AddFlags(fs *pflag.FlagSet) {
	fs.DurationVar(&o.InitTimeout, "mcp.init-timeout", o.InitTimeout, "Timeout for the MCP initialize handshake. 0 means none.")
}

// Options is the full configuration of the MCP client.
type Options struct {
	Log   *genericoptions.LogOptions   `json:"log" mapstructure:"log"`
	Model *genericoptions.ModelOptions `json:"model" mapstructure:"model"`
	MCP   *MCPOptions                  `json:"mcp" mapstructure:"mcp"`

	QueryTimeout time.Duration `json:"query-timeout" mapstructure:"query-timeout"`
	Markdown     bool          `json:"markdown" mapstructure:"markdown"`
	EnvFile      string        `json:"env-file" mapstructure:"env-file"`
	ConfigFile   string        `json:"config" mapstructure:"config"`
}

func NewOptions() *Options {
	return &Options{
		Log:          genericoptions.NewLogOptions(),
		Model:        genericoptions.NewModelOptions(),
		MCP:          NewMCPOptions(),
		QueryTimeout: DefaultQueryTimeout,
		EnvFile:      ".env",
	}
}

func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.Log.AddFlags(fs)
	o.Model.AddFlags(fs)
	o.MCP.AddFlags(fs)

	fs.DurationVar(&o.QueryTimeout, "query-timeout", o.QueryTimeout, "Timeout for one query, tool calls included. 0 means none.")
	fs.BoolVar(&o.Markdown, "markdown", o.Markdown, "Render answers as markdown.")
	fs.StringVar(&o.EnvFile, "env-file", o.EnvFile, "Dotenv file loaded at startup. A missing file is ignored.")
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "Optional config file (yaml, json or toml).")
}

// Validate returns the joined validation errors, or nil.
func (o *Options) Validate() error {
	var errs []error
	errs = append(errs, o.Log.Validate()...)
	errs = append(errs, o.Model.Validate()...)
	errs = append(errs, o.MCP.Validate()...)
	if o.QueryTimeout < 0 {
		errs = append(errs, fmt.Errorf("invalid query-timeout %s, must not be negative", o.QueryTimeout))
	}
	return errors.Join(errs...)
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)

	return string(data)
}
