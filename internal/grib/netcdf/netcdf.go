// Package netcdf adapts go-native-netcdf to the grib package's dataset
// capability interfaces. The met.no gribfiles products are served as
// NetCDF-convertible grids; everything format-specific stays here.
package netcdf

import (
	"fmt"
	"reflect"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"

	"github.com/evenoes/grib-api/internal/grib"
)

// Open opens a NetCDF file as a grib.Dataset. The returned handle must
// be closed by the caller.
func Open(path string) (grib.Dataset, error) {
	group, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening netcdf file %s: %w", path, err)
	}
	return &dataset{group: group}, nil
}

type dataset struct {
	group api.Group
}

func (d *dataset) ListVariables() []string {
	return d.group.ListVariables()
}

func (d *dataset) FindVariable(name string) (grib.Variable, bool) {
	v, err := d.group.GetVariable(name)
	if err != nil || v == nil {
		return nil, false
	}
	shape, err := shapeOf(v.Values)
	if err != nil {
		return nil, false
	}
	return &variable{values: v.Values, shape: shape}, true
}

func (d *dataset) Close() error {
	d.group.Close()
	return nil
}

type variable struct {
	values interface{}
	shape  []int
}

func (v *variable) Shape() []int {
	return v.shape
}

func (v *variable) ReadAll() (grib.NDArray, error) {
	data := make([]float64, 0, size(v.shape))
	if err := flatten(reflect.ValueOf(v.values), len(v.shape), &data); err != nil {
		return nil, err
	}
	if len(data) != size(v.shape) {
		return nil, fmt.Errorf("ragged array: got %d values for shape %v", len(data), v.shape)
	}
	return newNDArray(data, v.shape), nil
}

// shapeOf derives dimension sizes from the nested slices go-native-netcdf
// materializes variable values as, outermost first.
func shapeOf(values interface{}) ([]int, error) {
	var shape []int
	rv := reflect.ValueOf(values)
	for rv.Kind() == reflect.Slice {
		shape = append(shape, rv.Len())
		if rv.Len() == 0 {
			break
		}
		rv = rv.Index(0)
	}
	if len(shape) == 0 {
		return nil, fmt.Errorf("variable value %T is not an array", values)
	}
	return shape, nil
}

// flatten appends every leaf value, converted to float64, in row-major
// order. depth tracks remaining slice levels so 0-length inner slices
// are caught as ragged rather than silently skipped.
func flatten(rv reflect.Value, depth int, out *[]float64) error {
	if depth == 0 {
		f, err := toFloat(rv)
		if err != nil {
			return err
		}
		*out = append(*out, f)
		return nil
	}
	if rv.Kind() != reflect.Slice {
		return fmt.Errorf("expected slice at depth %d, got %s", depth, rv.Kind())
	}
	for i := 0; i < rv.Len(); i++ {
		if err := flatten(rv.Index(i), depth-1, out); err != nil {
			return err
		}
	}
	return nil
}

func toFloat(rv reflect.Value) (float64, error) {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		return float64(rv.Int()), nil
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		return float64(rv.Uint()), nil
	default:
		return 0, fmt.Errorf("unsupported cell type %s", rv.Kind())
	}
}

// ndArray is a flat row-major buffer with precomputed strides.
type ndArray struct {
	data    []float64
	shape   []int
	strides []int
}

func newNDArray(data []float64, shape []int) *ndArray {
	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}
	return &ndArray{data: data, shape: shape, strides: strides}
}

func (a *ndArray) Rank() int {
	return len(a.shape)
}

func (a *ndArray) At(indices ...int) float64 {
	pos := 0
	for i, idx := range indices {
		pos += idx * a.strides[i]
	}
	return a.data[pos]
}

func size(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}
