package options

import (
	"fmt"
	"strings"

	"github.com/kiosk404/echoweather/pkg/logger"
	"github.com/spf13/pflag"
)

// LogOptions controls the process logger. Logs always stay off stdout.
type LogOptions struct {
	Level      string `json:"level" mapstructure:"level"`
	Format     string `json:"format" mapstructure:"format"`
	OutputPath string `json:"output" mapstructure:"output"`
}

func NewLogOptions() *LogOptions {
	return &LogOptions{
		Level:  "info",
		Format: "text",
	}
}

func (o *LogOptions) Validate() []error {
	var errs []error
	switch strings.ToLower(o.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log level %q", o.Level))
	}
	switch strings.ToLower(o.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid log format %q, must be 'text' or 'json'", o.Format))
	}
	return errs
}

func (o *LogOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Level, "log.level", o.Level, "Minimum log level: trace, debug, info, warn or error.")
	fs.StringVar(&o.Format, "log.format", o.Format, "Log format: 'text' or 'json'.")
	fs.StringVar(&o.OutputPath, "log.output", o.OutputPath, "Append logs to this file instead of stderr.")
}

// Apply initialises the process logger from the options.
func (o *LogOptions) Apply() error {
	return logger.Init(&logger.Options{
		Level:      o.Level,
		Format:     o.Format,
		OutputPath: o.OutputPath,
	})
}
