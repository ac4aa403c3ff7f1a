package grib

// The extraction core does not decode GRIB/NetCDF bytes itself; it works
// against these interfaces and leaves decoding to an adapter (see the
// netcdf subpackage). Handles are owned by a single extraction run and
// must be closed by whoever opened them.

// Dataset is an opened gridded file.
type Dataset interface {
	// ListVariables returns the names of every variable in the dataset.
	ListVariables() []string

	// FindVariable looks a variable up by exact name.
	FindVariable(name string) (Variable, bool)

	Close() error
}

// Variable is a named array inside a Dataset.
type Variable interface {
	// Shape returns the dimension sizes, outermost first.
	Shape() []int

	// ReadAll materializes the variable's full array.
	ReadAll() (NDArray, error)
}

// NDArray is a read-only multi-dimensional numeric array. At returns the
// value at the given indices, which may be NaN for missing cells.
type NDArray interface {
	Rank() int
	At(indices ...int) float64
}

// DatasetOpener opens a dataset from a local file path.
type DatasetOpener func(path string) (Dataset, error)
