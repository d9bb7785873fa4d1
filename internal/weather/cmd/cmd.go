package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/kiosk404/echoweather/internal/pkg/config"
	"github.com/kiosk404/echoweather/internal/weather"
	"github.com/kiosk404/echoweather/internal/weather/options"
	"github.com/kiosk404/echoweather/pkg/logger"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

// EnvPrefix prefixes every environment variable the server reads, e.g.
// WEATHER_NWS_USER_AGENT for --nws.user-agent.
const EnvPrefix = "WEATHER"

// ServeFunc serves the MCP server until ctx is done.
type ServeFunc func(ctx context.Context, s *server.MCPServer) error

// NewDefaultWeatherCommand creates the `weather` command serving on stdio.
func NewDefaultWeatherCommand() *cobra.Command {
	return NewWeatherCommand(os.Stderr, weather.ServeStdio)
}

func NewWeatherCommand(errOut io.Writer, serve ServeFunc) *cobra.Command {
	opts := options.NewOptions()

	cmd := &cobra.Command{
		Use:   "weather",
		Short: "MCP server exposing US weather alerts and forecasts",
		Long: heredoc.Doc(`
			weather is an MCP tool server backed by the National Weather Service API.
			It speaks MCP over stdin/stdout and is normally launched by an MCP client.

			Tools:
			  get_alerts     active alerts for a two-letter US state code
			  get_forecast   the next forecast periods for a latitude/longitude

			Logs are written to stderr. Flags may also be set through WEATHER_*
			environment variables, e.g. WEATHER_NWS_TIMEOUT for --nws.timeout.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			if err := config.Load(cmd.Flags(), EnvPrefix, "", opts); err != nil {
				return err
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			if err := opts.Log.Apply(); err != nil {
				return err
			}
			defer logger.Flush()

			logger.Debug("[Weather] options: %s", opts)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err := serve(ctx, weather.NewServer(weather.NewTools(opts.NWS.NewClient())))
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	// stdout carries the protocol, so help and errors go to errOut.
	cmd.SetOut(errOut)
	cmd.SetErr(errOut)

	opts.AddFlags(cmd.Flags())
	return cmd
}
