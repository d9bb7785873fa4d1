package weather

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoAlerts = `{"features":[
  {"properties":{"event":"Flood Warning","severity":"Severe","description":"River flooding.","areaDesc":"Sacramento","instruction":null}},
  {"properties":{"event":"Heat Advisory"}}
]}`

func TestAlertsFormatsFeatures(t *testing.T) {
	f := newFakeNWS(t)
	f.alertsBody = twoAlerts

	out := f.tools().Alerts(context.Background(), "CA")

	assert.Equal(t, "/alerts/active/area=CA", f.lastPath.Load())
	assert.Equal(t, 1, strings.Count(out, Separator))
	assert.Contains(t, out, "Event: Flood Warning")
	assert.Contains(t, out, "Instructions: No specific instructions provided")
	assert.Contains(t, out, "Event: Heat Advisory")
	assert.Contains(t, out, "Description: No description available")
}

func TestAlertsNoActiveAlerts(t *testing.T) {
	for name, body := range map[string]string{
		"empty list":       `{"features":[]}`,
		"missing features": `{"type":"FeatureCollection"}`,
		"null features":    `{"features":null}`,
	} {
		t.Run(name, func(t *testing.T) {
			f := newFakeNWS(t)
			f.alertsBody = body

			assert.Equal(t, "No active alerts for this state.", f.tools().Alerts(context.Background(), "VT"))
		})
	}
}

func TestAlertsUpstreamFailure(t *testing.T) {
	f := newFakeNWS(t)
	f.alertsStatus = http.StatusServiceUnavailable

	assert.Equal(t, "No alerts found.", f.tools().Alerts(context.Background(), "CA"))
}

func TestAlertsUnreachable(t *testing.T) {
	f := newFakeNWS(t)
	tools := f.tools()
	f.Close()

	assert.Equal(t, "No alerts found.", tools.Alerts(context.Background(), "CA"))
}

func TestForecastFormatsAtMostFivePeriods(t *testing.T) {
	f := newFakeNWS(t)
	f.forecastBody = periodsJSON(14)

	out := f.tools().Forecast(context.Background(), 39.7456, -97.0892)

	blocks := strings.Split(out, Separator)
	require.Len(t, blocks, MaxForecastPeriods)
	for i, b := range blocks {
		assert.Contains(t, b, "Period ")
		assert.Contains(t, b, "Temperature: ")
		assert.Contains(t, b, "Wind: ")
		assert.Contains(t, b, "Forecast: ")
		assert.Contains(t, b, "Period "+string(rune('0'+i))+":")
	}
	assert.Equal(t, int32(1), f.pointsHits.Load())
	assert.Equal(t, int32(1), f.forecastHits.Load())
}

func TestForecastFewerPeriods(t *testing.T) {
	f := newFakeNWS(t)
	f.forecastBody = periodsJSON(2)

	out := f.tools().Forecast(context.Background(), 40, -100)
	assert.Len(t, strings.Split(out, Separator), 2)
	assert.Equal(t, "/gridpoints/TOP/31,80/forecast", f.lastPath.Load())
}

func TestForecastPointsPath(t *testing.T) {
	f := newFakeNWS(t)
	f.pointsStatus = http.StatusNotFound

	f.tools().Forecast(context.Background(), 39.7456, -97.0892)
	assert.Equal(t, "/points/39.7456,-97.0892", f.lastPath.Load())
}

func TestForecastPointsFailureSkipsSecondCall(t *testing.T) {
	f := newFakeNWS(t)
	f.pointsStatus = http.StatusInternalServerError
	f.forecastBody = periodsJSON(3)

	assert.Equal(t, "Unable to fetch forecast.", f.tools().Forecast(context.Background(), 1, 2))
	assert.Equal(t, int32(1), f.pointsHits.Load())
	assert.Equal(t, int32(0), f.forecastHits.Load())
}

func TestForecastMissingForecastURL(t *testing.T) {
	f := newFakeNWS(t)
	f.pointsBody = `{"properties":{}}`

	assert.Equal(t, "Unable to fetch forecast.", f.tools().Forecast(context.Background(), 1, 2))
	assert.Equal(t, int32(0), f.forecastHits.Load())
}

func TestForecastSecondCallFailure(t *testing.T) {
	f := newFakeNWS(t)
	f.forecastStatus = http.StatusBadGateway

	assert.Equal(t, "Unable to fetch forecast.", f.tools().Forecast(context.Background(), 1, 2))
	assert.Equal(t, int32(1), f.forecastHits.Load())
}

func TestForecastNoPeriods(t *testing.T) {
	f := newFakeNWS(t)
	f.forecastBody = `{"properties":{"periods":[]}}`

	assert.Equal(t, MsgNoForecastPeriods, f.tools().Forecast(context.Background(), 1, 2))
}
