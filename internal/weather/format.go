package weather

import (
	"fmt"
	"strconv"
	"strings"
)

// Separator joins formatted alerts and forecast periods.
const Separator = "\n---\n"

const (
	MsgNoAlertsFound  = "No alerts found."
	MsgNoActiveAlerts = "No active alerts for this state."
	MsgNoForecast     = "Unable to fetch forecast."

	// MaxForecastPeriods is how many periods get_forecast reports.
	MaxForecastPeriods = 5
)

func orDefault(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

// FormatAlert renders one alert feature.
func FormatAlert(f AlertFeature) string {
	p := f.Properties
	return fmt.Sprintf(`
Event: %s
Severity: %s
Description: %s
Area: %s
Instructions: %s
`,
		orDefault(p.Event, "Unknown"),
		orDefault(p.Severity, "Unknown"),
		orDefault(p.Description, "No description available"),
		orDefault(p.AreaDesc, "Unknown"),
		orDefault(p.Instruction, "No specific instructions provided"),
	)
}

// FormatPeriod renders one forecast period.
func FormatPeriod(p ForecastPeriod) string {
	return fmt.Sprintf(`
%s:
Temperature: %s°%s
Wind: %s %s
Forecast: %s
`,
		p.Name,
		strconv.FormatFloat(p.Temperature, 'f', -1, 64), p.TemperatureUnit,
		p.WindSpeed, p.WindDirection,
		p.DetailedForecast,
	)
}

// FormatAlerts joins every alert; callers handle the empty case.
func FormatAlerts(features []AlertFeature) string {
	out := make([]string, 0, len(features))
	for _, f := range features {
		out = append(out, FormatAlert(f))
	}
	return strings.Join(out, Separator)
}

// FormatForecast joins at most MaxForecastPeriods periods.
func FormatForecast(periods []ForecastPeriod) string {
	if len(periods) > MaxForecastPeriods {
		periods = periods[:MaxForecastPeriods]
	}
	out := make([]string, 0, len(periods))
	for _, p := range periods {
		out = append(out, FormatPeriod(p))
	}
	return strings.Join(out, Separator)
}
