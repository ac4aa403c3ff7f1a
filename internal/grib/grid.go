package grib

import (
	"errors"
	"fmt"
)

// ErrUnsupportedRank means a field's array has a rank outside 2-4, which
// this service has no dimension convention for. Fatal for that field.
var ErrUnsupportedRank = errors.New("unsupported grid rank")

// GridAxes holds the coordinate values shared by every field extraction
// on one dataset. Loaded once per dataset, read-only afterwards.
type GridAxes struct {
	Latitudes  []float64
	Longitudes []float64
}

// LoadAxes reads the latitude and longitude coordinate variables.
// Missing either one is fatal for the whole dataset: no sample can be
// geo-referenced without them.
func LoadAxes(ds Dataset) (GridAxes, error) {
	lats, err := readAxis(ds, latitudeNames)
	if err != nil {
		return GridAxes{}, err
	}
	lons, err := readAxis(ds, longitudeNames)
	if err != nil {
		return GridAxes{}, err
	}
	return GridAxes{Latitudes: lats, Longitudes: lons}, nil
}

func readAxis(ds Dataset, names []string) ([]float64, error) {
	v, ok := findFirst(ds, names)
	if !ok {
		return nil, fmt.Errorf("%w: tried %v", ErrAxisNotFound, names)
	}

	arr, err := v.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading axis %v: %w", names, err)
	}
	if arr.Rank() != 1 {
		return nil, fmt.Errorf("%w: axis %v has rank %d, want 1", ErrAxisNotFound, names, arr.Rank())
	}

	n := v.Shape()[0]
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = arr.At(i)
	}
	return values, nil
}

// cellReader maps a (latIdx, lonIdx) pair to a raw grid value, hiding the
// array's rank. Rank 3 arrays are (time, lat, lon) and rank 4 arrays are
// (time, level, lat, lon); the walk always takes the first time step and
// the first vertical level.
type cellReader func(latIdx, lonIdx int) float64

func newCellReader(arr NDArray) (cellReader, error) {
	switch arr.Rank() {
	case 2:
		return func(i, j int) float64 { return arr.At(i, j) }, nil
	case 3:
		return func(i, j int) float64 { return arr.At(0, i, j) }, nil
	case 4:
		return func(i, j int) float64 { return arr.At(0, 0, i, j) }, nil
	default:
		return nil, fmt.Errorf("%w: rank %d", ErrUnsupportedRank, arr.Rank())
	}
}

// walkGrid visits every (lat, lon) cell in row-major order, latitude
// outermost. The ordering is what makes decimation deterministic, so it
// must not change.
func walkGrid(axes GridAxes, read cellReader, visit func(lat, lon, value float64)) {
	for latIdx := range axes.Latitudes {
		for lonIdx := range axes.Longitudes {
			visit(axes.Latitudes[latIdx], axes.Longitudes[lonIdx], read(latIdx, lonIdx))
		}
	}
}
