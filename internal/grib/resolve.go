package grib

import (
	"errors"
	"fmt"
)

var (
	// ErrVariableNotFound means a parameter has no direct variable and no
	// complete u/v pair in the dataset. Non-fatal: the parameter yields an
	// empty response while other parameters still extract.
	ErrVariableNotFound = errors.New("variable not found in dataset")

	// ErrAxisNotFound means the dataset has no latitude or longitude
	// variable, so nothing on it can be geo-referenced.
	ErrAxisNotFound = errors.New("lat/lon axis not found in dataset")
)

// ResolvedField is the outcome of variable resolution: either a direct
// scalar field, or a u/v component pair to derive from.
type ResolvedField struct {
	Direct Variable
	U, V   Variable
}

// IsVector reports whether the field must be derived from components.
func (r ResolvedField) IsVector() bool { return r.Direct == nil }

// ResolveField finds the concrete variable(s) backing a parameter.
// Direct names are tried first, in the table's priority order; the u/v
// candidate lists are each tried independently only when no direct name
// matched. Both components must resolve for the pair to count.
func ResolveField(ds Dataset, spec VariableSpec) (ResolvedField, error) {
	if v, ok := findFirst(ds, spec.DirectNames); ok {
		return ResolvedField{Direct: v}, nil
	}

	if spec.VectorPair != nil {
		u, uok := findFirst(ds, spec.VectorPair.UNames)
		v, vok := findFirst(ds, spec.VectorPair.VNames)
		if uok && vok {
			return ResolvedField{U: u, V: v}, nil
		}
	}

	return ResolvedField{}, fmt.Errorf("%w: parameter %s", ErrVariableNotFound, spec.Parameter)
}

func findFirst(ds Dataset, names []string) (Variable, bool) {
	for _, name := range names {
		if v, ok := ds.FindVariable(name); ok {
			return v, true
		}
	}
	return nil, false
}
