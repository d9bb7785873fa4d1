package weather

// AlertsResponse is the subset of /alerts/active we read.
type AlertsResponse struct {
	Features []AlertFeature `json:"features"`
}

type AlertFeature struct {
	Properties AlertProperties `json:"properties"`
}

// AlertProperties fields are pointers so a missing key and an explicit null
// both fall back to the placeholder text.
type AlertProperties struct {
	Event       *string `json:"event"`
	Severity    *string `json:"severity"`
	Description *string `json:"description"`
	AreaDesc    *string `json:"areaDesc"`
	Instruction *string `json:"instruction"`
}

// PointsResponse is the subset of /points/{lat},{lon} we read.
type PointsResponse struct {
	Properties struct {
		Forecast string `json:"forecast"`
	} `json:"properties"`
}

// ForecastResponse is the subset of a gridpoint forecast we read.
type ForecastResponse struct {
	Properties struct {
		Periods []ForecastPeriod `json:"periods"`
	} `json:"properties"`
}

type ForecastPeriod struct {
	Name             string  `json:"name"`
	Temperature      float64 `json:"temperature"`
	TemperatureUnit  string  `json:"temperatureUnit"`
	WindSpeed        string  `json:"windSpeed"`
	WindDirection    string  `json:"windDirection"`
	DetailedForecast string  `json:"detailedForecast"`
}
