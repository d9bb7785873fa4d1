package weather

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// fakeNWS serves canned NWS documents and counts requests per endpoint.
type fakeNWS struct {
	*httptest.Server

	alertsBody   string
	alertsStatus int

	pointsBody   string
	pointsStatus int

	forecastBody   string
	forecastStatus int

	alertsHits   atomic.Int32
	pointsHits   atomic.Int32
	forecastHits atomic.Int32
	lastPath     atomic.Value
}

func newFakeNWS(t *testing.T) *fakeNWS {
	t.Helper()

	f := &fakeNWS{
		alertsStatus:   http.StatusOK,
		pointsStatus:   http.StatusOK,
		forecastStatus: http.StatusOK,
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)

	f.pointsBody = fmt.Sprintf(`{"properties":{"forecast":"%s/gridpoints/TOP/31,80/forecast"}}`, f.URL)
	return f
}

func (f *fakeNWS) serve(w http.ResponseWriter, r *http.Request) {
	f.lastPath.Store(r.URL.Path)
	w.Header().Set("Content-Type", "application/geo+json")

	switch {
	case strings.HasPrefix(r.URL.Path, "/alerts/active/"):
		f.alertsHits.Add(1)
		w.WriteHeader(f.alertsStatus)
		_, _ = w.Write([]byte(f.alertsBody))
	case strings.HasPrefix(r.URL.Path, "/points/"):
		f.pointsHits.Add(1)
		w.WriteHeader(f.pointsStatus)
		_, _ = w.Write([]byte(f.pointsBody))
	case strings.HasPrefix(r.URL.Path, "/gridpoints/"):
		f.forecastHits.Add(1)
		w.WriteHeader(f.forecastStatus)
		_, _ = w.Write([]byte(f.forecastBody))
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeNWS) tools() *Tools {
	return NewTools(NewNWSClient(f.URL, "", nil))
}

func periodsJSON(n int) string {
	periods := make([]string, 0, n)
	for i := 0; i < n; i++ {
		periods = append(periods, fmt.Sprintf(
			`{"name":"Period %d","temperature":%d,"temperatureUnit":"F","windSpeed":"%d mph","windDirection":"SW","detailedForecast":"Forecast %d."}`,
			i, 60+i, 5+i, i))
	}
	return fmt.Sprintf(`{"properties":{"periods":[%s]}}`, strings.Join(periods, ","))
}
