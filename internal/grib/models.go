package grib

// Parameter identifies a logical weather field served by the API.
type Parameter string

const (
	ParamWaveHeight       Parameter = "WAVE_HEIGHT"
	ParamWindSpeed        Parameter = "WIND_SPEED"
	ParamWindDirection    Parameter = "WIND_DIRECTION"
	ParamCurrentSpeed     Parameter = "CURRENT_SPEED"
	ParamCurrentDirection Parameter = "CURRENT_DIRECTION"
	ParamPrecipitation    Parameter = "PRECIPITATION"
)

// GribDataPoint is a single geo-referenced sample from a grid.
// Value is in the physical unit of its parameter (m, m/s, degrees, mm).
type GribDataPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Value     float64 `json:"value"`
	Timestamp int64   `json:"timestamp"` // epoch milliseconds
}

// GribResponse is the extraction result for one parameter.
//
// When Data is non-empty, MinValue and MaxValue are the true range of the
// filtered samples before decimation; when Data is empty both are zero.
type GribResponse struct {
	Data      []GribDataPoint `json:"data"`
	MinValue  float64         `json:"minValue"`
	MaxValue  float64         `json:"maxValue"`
	Parameter Parameter       `json:"parameter"`
}

// emptyResponse is what a parameter yields when its variable is absent
// from the dataset.
func emptyResponse(p Parameter) *GribResponse {
	return &GribResponse{
		Data:      []GribDataPoint{},
		MinValue:  0,
		MaxValue:  0,
		Parameter: p,
	}
}
