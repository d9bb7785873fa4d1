package options

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	genericoptions "github.com/kiosk404/echoweather/internal/pkg/options"
	"github.com/kiosk404/echoweather/internal/weather"
	"github.com/kiosk404/echoweather/pkg/utils/json"
	"github.com/spf13/pflag"
)

// NWSOptions configures the National Weather Service client.
type NWSOptions struct {
	BaseURL   string        `json:"base-url" mapstructure:"base-url"`
	UserAgent string        `json:"user-agent" mapstructure:"user-agent"`
	Timeout   time.Duration `json:"timeout" mapstructure:"timeout"`
}

func NewNWSOptions() *NWSOptions {
	return &NWSOptions{
		BaseURL:   weather.DefaultBaseURL,
		UserAgent: weather.DefaultUserAgent,
		Timeout:   weather.DefaultTimeout,
	}
}

func (o *NWSOptions) Validate() []error {
	var errs []error
	if u, err := url.Parse(o.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("invalid nws.base-url %q", o.BaseURL))
	}
	if o.UserAgent == "" {
		errs = append(errs, errors.New("nws.user-agent is required"))
	}
	if o.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("invalid nws.timeout %s, must be positive", o.Timeout))
	}
	return errs
}

func (o *NWSOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.BaseURL, "nws.base-url", o.BaseURL, "National Weather Service API root.")
	fs.StringVar(&o.UserAgent, "nws.user-agent", o.UserAgent, "User-Agent sent with every NWS request.")
	fs.DurationVar(&o.Timeout, "nws.timeout", o.Timeout, "Timeout for each NWS request.")
}

// NewClient builds an NWS client from the options.
func (o *NWSOptions) NewClient() *weather.NWSClient {
	return weather.NewNWSClient(o.BaseURL, o.UserAgent, &http.Client{Timeout: o.Timeout})
}

// Options is the full configuration of the weather server.
type Options struct {
	Log *genericoptions.LogOptions `json:"log" mapstructure:"log"`
	NWS *NWSOptions                `json:"nws" mapstructure:"nws"`
}

func NewOptions() *Options {
	return &Options{
		Log: genericoptions.NewLogOptions(),
		NWS: NewNWSOptions(),
	}
}

func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.Log.AddFlags(fs)
	o.NWS.AddFlags(fs)
}

// Validate returns the joined validation errors, or nil.
func (o *Options) Validate() error {
	var errs []error
	errs = append(errs, o.Log.Validate()...)
	errs = append(errs, o.NWS.Validate()...)
	return errors.Join(errs...)
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)

	return string(data)
}
