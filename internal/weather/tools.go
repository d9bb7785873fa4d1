package weather

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/kiosk404/echoweather/pkg/logger"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	ToolGetAlerts   = "get_alerts"
	ToolGetForecast = "get_forecast"

	MsgNoForecastPeriods = "No forecast periods available."
)

// Tools implements the weather tools on top of an NWSClient. It holds no
// mutable state, so one value can serve concurrent calls.
type Tools struct {
	nws *NWSClient
}

func NewTools(nws *NWSClient) *Tools {
	return &Tools{nws: nws}
}

// Alerts returns the active alerts for a two-letter state code as text.
func (t *Tools) Alerts(ctx context.Context, state string) string {
	u := fmt.Sprintf("%s/alerts/active/area=%s", t.nws.BaseURL(), url.PathEscape(state))

	data, ok := fetch[AlertsResponse](ctx, t.nws, u).Get()
	if !ok {
		return MsgNoAlertsFound
	}
	if len(data.Features) == 0 {
		return MsgNoActiveAlerts
	}
	return FormatAlerts(data.Features)
}

// Forecast returns up to MaxForecastPeriods forecast periods for a location.
// The forecast URL is only requested once the points lookup succeeded.
func (t *Tools) Forecast(ctx context.Context, latitude, longitude float64) string {
	pointsURL := fmt.Sprintf("%s/points/%s,%s", t.nws.BaseURL(), formatCoord(latitude), formatCoord(longitude))

	points, ok := fetch[PointsResponse](ctx, t.nws, pointsURL).Get()
	if !ok || points.Properties.Forecast == "" {
		return MsgNoForecast
	}

	forecast, ok := fetch[ForecastResponse](ctx, t.nws, points.Properties.Forecast).Get()
	if !ok {
		return MsgNoForecast
	}
	if len(forecast.Properties.Periods) == 0 {
		return MsgNoForecastPeriods
	}
	return FormatForecast(forecast.Properties.Periods)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// AlertsTool describes get_alerts.
func AlertsTool() mcp.Tool {
	return mcp.NewTool(ToolGetAlerts,
		mcp.WithDescription("Get weather alerts for a US state."),
		mcp.WithString("state",
			mcp.Required(),
			mcp.Description("Two-letter US state code (e.g. CA, NY)."),
		),
	)
}

// ForecastTool describes get_forecast.
func ForecastTool() mcp.Tool {
	return mcp.NewTool(ToolGetForecast,
		mcp.WithDescription("Get the weather forecast for a location."),
		mcp.WithNumber("latitude",
			mcp.Required(),
			mcp.Description("Latitude of the location."),
		),
		mcp.WithNumber("longitude",
			mcp.Required(),
			mcp.Description("Longitude of the location."),
		),
	)
}

func (t *Tools) handleAlerts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := req.RequireString("state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	logger.DebugX(moduleName, "[Tools] %s state=%s", ToolGetAlerts, state)
	return mcp.NewToolResultText(t.Alerts(ctx, state)), nil
}

func (t *Tools) handleForecast(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lat, err := req.RequireFloat("latitude")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lon, err := req.RequireFloat("longitude")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	logger.DebugX(moduleName, "[Tools] %s lat=%v lon=%v", ToolGetForecast, lat, lon)
	return mcp.NewToolResultText(t.Forecast(ctx, lat, lon)), nil
}
