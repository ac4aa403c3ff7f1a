package grib

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DefaultSampleCap bounds how many points one response carries.
const DefaultSampleCap = 1000

// Extractor turns a dataset into GribResponses, one per parameter.
// The zero value is not usable; construct with NewExtractor.
type Extractor struct {
	sampleCap  int
	fillValues []float64
	now        func() time.Time
}

// NewExtractor builds an Extractor. sampleCap <= 0 falls back to
// DefaultSampleCap. fillValues lists dataset-specific sentinels (e.g.
// 9999) to treat as missing in addition to NaN; most datasets need none.
func NewExtractor(sampleCap int, fillValues []float64) *Extractor {
	if sampleCap <= 0 {
		sampleCap = DefaultSampleCap
	}
	return &Extractor{
		sampleCap:  sampleCap,
		fillValues: fillValues,
		now:        time.Now,
	}
}

// Extract runs the pipeline for a single parameter, loading the axes
// itself. Use ExtractAll when reading several parameters from one
// dataset so the axes load only once.
func (e *Extractor) Extract(ds Dataset, p Parameter) (*GribResponse, error) {
	axes, err := LoadAxes(ds)
	if err != nil {
		return nil, err
	}
	return e.extractWithAxes(ds, axes, p)
}

// ExtractAll extracts every requested parameter from one dataset,
// sharing a single axis load. A parameter whose variable is missing
// yields an empty response; any other failure aborts the batch.
func (e *Extractor) ExtractAll(ds Dataset, params ...Parameter) ([]*GribResponse, error) {
	axes, err := LoadAxes(ds)
	if err != nil {
		return nil, err
	}

	out := make([]*GribResponse, 0, len(params))
	for _, p := range params {
		resp, err := e.extractWithAxes(ds, axes, p)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (e *Extractor) extractWithAxes(ds Dataset, axes GridAxes, p Parameter) (*GribResponse, error) {
	spec, ok := SpecFor(p)
	if !ok {
		return nil, fmt.Errorf("unknown parameter %q", p)
	}

	field, err := ResolveField(ds, spec)
	if err != nil {
		// A missing variable empties this parameter only; callers asking
		// for several parameters still get the rest.
		if errors.Is(err, ErrVariableNotFound) {
			return emptyResponse(p), nil
		}
		return nil, err
	}

	stamp := e.now().UnixMilli()
	var points []GribDataPoint
	tracker := rangeTracker{}

	collect := func(lat, lon, value float64) {
		tracker.observe(value)
		points = append(points, GribDataPoint{
			Latitude:  lat,
			Longitude: lon,
			Value:     value,
			Timestamp: stamp,
		})
	}

	if field.IsVector() {
		err = e.walkVector(field, axes, spec.Derive, collect)
	} else {
		err = e.walkDirect(field.Direct, axes, collect)
	}
	if err != nil {
		return nil, err
	}

	if len(points) == 0 {
		return emptyResponse(p), nil
	}

	minV, maxV := tracker.bounds()
	return &GribResponse{
		Data:      decimate(points, e.sampleCap),
		MinValue:  minV,
		MaxValue:  maxV,
		Parameter: p,
	}, nil
}

func (e *Extractor) walkDirect(v Variable, axes GridAxes, collect func(lat, lon, value float64)) error {
	arr, err := v.ReadAll()
	if err != nil {
		return err
	}
	read, err := newCellReader(arr)
	if err != nil {
		return err
	}

	walkGrid(axes, read, func(lat, lon, value float64) {
		if e.valid(value) {
			collect(lat, lon, value)
		}
	})
	return nil
}

// walkVector walks the u and v grids in lockstep and derives one scalar
// per cell. A cell drops out when either component is invalid; deriving
// a magnitude or bearing from half a vector is meaningless.
func (e *Extractor) walkVector(field ResolvedField, axes GridAxes, derive Derivation, collect func(lat, lon, value float64)) error {
	uArr, err := field.U.ReadAll()
	if err != nil {
		return err
	}
	vArr, err := field.V.ReadAll()
	if err != nil {
		return err
	}

	readU, err := newCellReader(uArr)
	if err != nil {
		return err
	}
	readV, err := newCellReader(vArr)
	if err != nil {
		return err
	}

	for latIdx := range axes.Latitudes {
		for lonIdx := range axes.Longitudes {
			u := readU(latIdx, lonIdx)
			v := readV(latIdx, lonIdx)
			if !e.valid(u) || !e.valid(v) {
				continue
			}

			var value float64
			switch derive {
			case DeriveBearing:
				value = Bearing(u, v)
			default:
				value = Magnitude(u, v)
			}
			collect(axes.Latitudes[latIdx], axes.Longitudes[lonIdx], value)
		}
	}
	return nil
}

// valid reports whether a raw cell value is usable: not NaN and not one
// of the configured fill sentinels.
func (e *Extractor) valid(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	for _, fill := range e.fillValues {
		if v == fill {
			return false
		}
	}
	return true
}

// rangeTracker keeps a running min/max over observed values.
type rangeTracker struct {
	min, max float64
	seen     bool
}

func (r *rangeTracker) observe(v float64) {
	if !r.seen {
		r.min, r.max = v, v
		r.seen = true
		return
	}
	r.min = math.Min(r.min, v)
	r.max = math.Max(r.max, v)
}

// bounds returns the observed range, or (0, 0) when nothing was seen.
func (r *rangeTracker) bounds() (float64, float64) {
	if !r.seen {
		return 0, 0
	}
	return r.min, r.max
}

// decimate bounds the point count by uniform-stride subsampling from
// index zero, preserving the walk order. The reported min/max are
// computed before this runs, so decimation never narrows the range.
func decimate(points []GribDataPoint, limit int) []GribDataPoint {
	if limit <= 0 || len(points) <= limit {
		return points
	}

	step := len(points) / limit
	if step < 1 {
		step = 1
	}

	sampled := make([]GribDataPoint, 0, (len(points)+step-1)/step)
	for i := 0; i < len(points); i += step {
		sampled = append(sampled, points[i])
	}
	return sampled
}
