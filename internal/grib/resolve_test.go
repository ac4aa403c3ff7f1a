package grib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDirectNamePriorityOrder(t *testing.T) {
	spec, _ := SpecFor(ParamWaveHeight)

	// Both SHWW and VHM0 present: SHWW wins, it comes first in the list.
	ds := newDataset(nil, nil, map[string]fakeVariable{
		"SHWW": grid2(1, 1, func(i, j int) float64 { return 1 }),
		"VHM0": grid2(1, 1, func(i, j int) float64 { return 2 }),
	})

	field, err := ResolveField(ds, spec)
	require.NoError(t, err)
	require.False(t, field.IsVector())

	arr, err := field.Direct.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, 1.0, arr.At(0, 0))
}

func TestResolveFallsBackThroughNameList(t *testing.T) {
	spec, _ := SpecFor(ParamWaveHeight)

	// Only the CMEMS-style name present; earlier candidates must be skipped.
	ds := newDataset(nil, nil, map[string]fakeVariable{
		"VHM0": grid2(1, 1, func(i, j int) float64 { return 2 }),
	})

	field, err := ResolveField(ds, spec)
	require.NoError(t, err)
	require.False(t, field.IsVector())

	arr, err := field.Direct.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, 2.0, arr.At(0, 0))
}

func TestResolveVectorPairWhenNoDirectMatch(t *testing.T) {
	spec, _ := SpecFor(ParamWindSpeed)

	ds := newDataset(nil, nil, map[string]fakeVariable{
		"10u": grid2(1, 1, func(i, j int) float64 { return 3 }),
		"10v": grid2(1, 1, func(i, j int) float64 { return 4 }),
	})

	field, err := ResolveField(ds, spec)
	require.NoError(t, err)
	assert.True(t, field.IsVector())
}

func TestResolveVectorCandidatesTriedIndependently(t *testing.T) {
	spec, _ := SpecFor(ParamWindSpeed)

	// u under its first candidate name, v under a later one.
	ds := newDataset(nil, nil, map[string]fakeVariable{
		"10u": grid2(1, 1, func(i, j int) float64 { return 3 }),
		"v10": grid2(1, 1, func(i, j int) float64 { return 4 }),
	})

	field, err := ResolveField(ds, spec)
	require.NoError(t, err)
	assert.True(t, field.IsVector())
}

func TestResolveHalfPairIsNotFound(t *testing.T) {
	spec, _ := SpecFor(ParamWindSpeed)

	ds := newDataset(nil, nil, map[string]fakeVariable{
		"10u": grid2(1, 1, func(i, j int) float64 { return 3 }),
	})

	_, err := ResolveField(ds, spec)
	require.ErrorIs(t, err, ErrVariableNotFound)
}

func TestResolveNothingFound(t *testing.T) {
	spec, _ := SpecFor(ParamPrecipitation)

	ds := newDataset(nil, nil, nil)

	_, err := ResolveField(ds, spec)
	require.ErrorIs(t, err, ErrVariableNotFound)
}

func TestSpecTableCoversEveryParameter(t *testing.T) {
	for _, p := range []Parameter{
		ParamWaveHeight,
		ParamWindSpeed,
		ParamWindDirection,
		ParamCurrentSpeed,
		ParamCurrentDirection,
		ParamPrecipitation,
	} {
		spec, ok := SpecFor(p)
		require.True(t, ok, "missing spec for %s", p)
		assert.Equal(t, p, spec.Parameter)
		assert.NotEmpty(t, spec.DirectNames)
	}
}
