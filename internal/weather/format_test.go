package weather

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestFormatAlert(t *testing.T) {
	out := FormatAlert(AlertFeature{Properties: AlertProperties{
		Event:       strPtr("Flood Warning"),
		Severity:    strPtr("Severe"),
		Description: strPtr("River flooding."),
		AreaDesc:    strPtr("Sacramento"),
		Instruction: strPtr("Move to higher ground."),
	}})

	assert.Equal(t, "\nEvent: Flood Warning\nSeverity: Severe\nDescription: River flooding.\nArea: Sacramento\nInstructions: Move to higher ground.\n", out)
}

func TestFormatAlertPlaceholders(t *testing.T) {
	out := FormatAlert(AlertFeature{})

	assert.Contains(t, out, "Event: Unknown\n")
	assert.Contains(t, out, "Severity: Unknown\n")
	assert.Contains(t, out, "Description: No description available\n")
	assert.Contains(t, out, "Area: Unknown\n")
	assert.Contains(t, out, "Instructions: No specific instructions provided\n")
}

func TestFormatPeriod(t *testing.T) {
	out := FormatPeriod(ForecastPeriod{
		Name:             "Tonight",
		Temperature:      54,
		TemperatureUnit:  "F",
		WindSpeed:        "5 to 10 mph",
		WindDirection:    "NW",
		DetailedForecast: "Clear.",
	})

	assert.Equal(t, "\nTonight:\nTemperature: 54°F\nWind: 5 to 10 mph NW\nForecast: Clear.\n", out)
}

func TestFormatForecastCapsPeriods(t *testing.T) {
	periods := make([]ForecastPeriod, 8)
	for i := range periods {
		periods[i] = ForecastPeriod{Name: fmt.Sprintf("P%d", i)}
	}

	out := FormatForecast(periods)
	assert.Len(t, strings.Split(out, Separator), MaxForecastPeriods)
	assert.Contains(t, out, "P4:")
	assert.NotContains(t, out, "P5:")
}

func TestFormatAlertsSeparator(t *testing.T) {
	out := FormatAlerts([]AlertFeature{{}, {}, {}})
	assert.Equal(t, 2, strings.Count(out, Separator))
}
