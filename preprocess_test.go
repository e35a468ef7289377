package mlp_go

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestStandardScaler(t *testing.T) {
	ds := &Dataset{
		Name:       "tiny",
		Dim:        2,
		NumClasses: 2,
		X:          []float64{1, 10, 3, 10},
		Labels:     []int{0, 1},
	}
	scaler := &StandardScaler{}
	transformed, err := scaler.FitTransform(ds)
	require.NoError(t, err)
	require.InDelta(t, 2.0, scaler.Mean[0], 1e-12)
	require.InDelta(t, 10.0, scaler.Mean[1], 1e-12)
	// Constant column keeps unit scale
	require.InDelta(t, 1.0, scaler.Scale[1], 1e-12)
	require.InDelta(t, -1/math.Sqrt2, transformed.X[0], 1e-12)
	require.InDelta(t, 0.0, transformed.X[1], 1e-12)
	require.InDelta(t, 1/math.Sqrt2, transformed.X[2], 1e-12)
	// Source dataset is untouched
	require.Equal(t, []float64{1, 10, 3, 10}, ds.X)
}

func TestStandardScalerOnSyntheticData(t *testing.T) {
	rand.Seed(42)
	ds, err := Moons(400, 0.1)
	require.NoError(t, err)
	scaler := &StandardScaler{}
	transformed, err := scaler.FitTransform(ds)
	require.NoError(t, err)
	column := make([]float64, transformed.Len())
	for j := 0; j < transformed.Dim; j++ {
		for i := 0; i < transformed.Len(); i++ {
			column[i] = transformed.X[i*transformed.Dim+j]
		}
		require.InDelta(t, 0.0, stat.Mean(column, nil), 1e-9)
		require.InDelta(t, 1.0, stat.StdDev(column, nil), 1e-9)
	}
}

func TestStandardScalerErrors(t *testing.T) {
	scaler := &StandardScaler{}
	_, err := scaler.Transform(&Dataset{Dim: 2, X: []float64{1, 2}})
	require.Error(t, err)

	require.NoError(t, scaler.Fit(&Dataset{Dim: 2, X: []float64{1, 2, 3, 4}}))
	_, err = scaler.Transform(&Dataset{Dim: 3, X: []float64{1, 2, 3}})
	require.Error(t, err)

	require.Error(t, scaler.Fit(&Dataset{Dim: 2}))
}

func TestMinMaxScaler(t *testing.T) {
	ds := &Dataset{
		Name:       "tiny",
		Dim:        2,
		NumClasses: 2,
		X:          []float64{-1, 5, 1, 5, 3, 5},
		Labels:     []int{0, 1, 0},
	}
	scaler := &MinMaxScaler{}
	transformed, err := scaler.FitTransform(ds)
	require.NoError(t, err)
	require.Equal(t, []float64{-1, 5}, scaler.Min)
	require.Equal(t, []float64{3, 5}, scaler.Max)
	require.InDelta(t, 0.0, transformed.X[0], 1e-12)
	require.InDelta(t, 0.5, transformed.X[2], 1e-12)
	require.InDelta(t, 1.0, transformed.X[4], 1e-12)
	// Constant column maps to zero
	for i := 0; i < transformed.Len(); i++ {
		require.InDelta(t, 0.0, transformed.X[i*2+1], 1e-12)
	}

	_, err = (&MinMaxScaler{}).Transform(ds)
	require.Error(t, err)
}

func TestOneHotEncode(t *testing.T) {
	encoded, err := OneHotEncode([]int{0, 2, 1}, 3)
	require.NoError(t, err)
	require.Equal(t, []int{3, 3}, []int(encoded.Shape()))
	require.Equal(t, []float64{
		1, 0, 0,
		0, 0, 1,
		0, 1, 0,
	}, encoded.Data().([]float64))

	_, err = OneHotEncode([]int{0, 3}, 3)
	require.Error(t, err)
	_, err = OneHotEncode([]int{0, -1}, 3)
	require.Error(t, err)
	_, err = OneHotEncode([]int{0}, 1)
	require.Error(t, err)
}

func TestBinaryTargets(t *testing.T) {
	targets, err := BinaryTargets([]int{0, 1, 1})
	require.NoError(t, err)
	require.Equal(t, []int{3, 1}, []int(targets.Shape()))
	require.Equal(t, []float64{0, 1, 1}, targets.Data().([]float64))

	_, err = BinaryTargets([]int{0, 2})
	require.Error(t, err)
}
