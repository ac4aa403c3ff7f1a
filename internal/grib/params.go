package grib

// VectorPairSpec names the eastward (u) and northward (v) component
// candidates for a field that may have to be derived.
type VectorPairSpec struct {
	UNames []string
	VNames []string
}

// Derivation selects how a vector pair collapses to a scalar field.
type Derivation int

const (
	DeriveNone Derivation = iota
	DeriveMagnitude
	DeriveBearing
)

// VariableSpec describes how to locate one parameter in a dataset:
// direct variable names tried in priority order, then an optional
// u/v component pair. Adding a candidate name is a data change only.
type VariableSpec struct {
	Parameter   Parameter
	DirectNames []string
	VectorPair  *VectorPairSpec
	Derive      Derivation
}

// Coordinate axis candidates, tried in order. GRIB-sourced NetCDF tends
// to use the short forms, CF-compliant files the long forms.
var (
	latitudeNames  = []string{"lat", "latitude"}
	longitudeNames = []string{"lon", "longitude"}
)

var windComponents = VectorPairSpec{
	UNames: []string{"10u", "u10", "x_wind_10m", "eastward_wind"},
	VNames: []string{"10v", "v10", "y_wind_10m", "northward_wind"},
}

var currentComponents = VectorPairSpec{
	UNames: []string{"uogrd", "uo", "eastward_sea_water_velocity"},
	VNames: []string{"vogrd", "vo", "northward_sea_water_velocity"},
}

// variableSpecs is the full parameter table. The name lists mirror what
// the met.no gribfiles products actually expose; order matters.
var variableSpecs = map[Parameter]VariableSpec{
	ParamWaveHeight: {
		Parameter: ParamWaveHeight,
		DirectNames: []string{
			"SHWW",
			"significant_wave_height",
			"swh",
			"VHM0",
			"Significant_height_of_combined_wind_waves_and_swell_height_above_ground",
		},
	},
	ParamWindSpeed: {
		Parameter: ParamWindSpeed,
		DirectNames: []string{
			"WIND",
			"wind_speed",
			"si10",
			"ff10",
			"wind_speed_10m",
			"10_meter_wind_speed",
		},
		VectorPair: &windComponents,
		Derive:     DeriveMagnitude,
	},
	ParamWindDirection: {
		Parameter: ParamWindDirection,
		DirectNames: []string{
			"wind_direction",
			"wind_dir",
			"dd10",
			"10m_wind_direction",
			"wind_direction_10m",
			"wind_from_direction",
		},
		VectorPair: &windComponents,
		Derive:     DeriveBearing,
	},
	ParamCurrentSpeed: {
		Parameter: ParamCurrentSpeed,
		DirectNames: []string{
			"current_speed",
			"sea_water_speed",
			"water_speed",
			"sea_surface_current_speed",
			"surface_current_speed",
			"current_speed_surface",
			"speed_of_current",
		},
		VectorPair: &currentComponents,
		Derive:     DeriveMagnitude,
	},
	ParamCurrentDirection: {
		Parameter: ParamCurrentDirection,
		DirectNames: []string{
			"current_direction",
			"sea_water_direction",
			"sea_water_velocity_to_direction",
			"direction_of_current",
		},
		VectorPair: &currentComponents,
		Derive:     DeriveBearing,
	},
	ParamPrecipitation: {
		Parameter: ParamPrecipitation,
		DirectNames: []string{
			"TP",
			"tp",
			"total_precipitation",
			"precipitation_amount",
			"APCP",
		},
	},
}

// SpecFor returns the lookup table row for a parameter.
func SpecFor(p Parameter) (VariableSpec, bool) {
	s, ok := variableSpecs[p]
	return s, ok
}
