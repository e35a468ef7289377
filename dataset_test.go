package mlp_go

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMoons(t *testing.T) {
	rand.Seed(42)
	ds, err := Moons(200, 0.05)
	require.NoError(t, err)
	require.Equal(t, 200, ds.Len())
	require.Equal(t, 2, ds.Dim)
	require.Equal(t, 2, ds.NumClasses)
	require.Equal(t, []int{100, 100}, ds.ClassCounts())

	_, err = Moons(0, 0.05)
	require.Error(t, err)
	_, err = Moons(101, 0.05)
	require.Error(t, err)
}

func TestCirclesRadii(t *testing.T) {
	rand.Seed(42)
	ds, err := Circles(100, 0.0, 0.5)
	require.NoError(t, err)
	for i := 0; i < ds.Len(); i++ {
		row := ds.Row(i)
		radius := math.Hypot(row[0], row[1])
		if ds.Labels[i] == 0 {
			require.InDelta(t, 1.0, radius, 1e-9)
		} else {
			require.InDelta(t, 0.5, radius, 1e-9)
		}
	}

	_, err = Circles(100, 0.0, 1.5)
	require.Error(t, err)
}

func TestXORSquaresLabeling(t *testing.T) {
	rand.Seed(42)
	ds, err := XORSquares(200, 0.0)
	require.NoError(t, err)
	require.Equal(t, []int{100, 100}, ds.ClassCounts())
	for i := 0; i < ds.Len(); i++ {
		row := ds.Row(i)
		expected := 0
		if row[0]*row[1] < 0 {
			expected = 1
		}
		require.Equal(t, expected, ds.Labels[i], "sample #%d at (%f;%f)", i, row[0], row[1])
	}

	_, err = XORSquares(10, 0.0)
	require.Error(t, err)
}

func TestSpirals(t *testing.T) {
	rand.Seed(42)
	ds, err := Spirals(300, 0.01)
	require.NoError(t, err)
	require.Equal(t, 300, ds.Len())
	require.Equal(t, []int{150, 150}, ds.ClassCounts())
}

func TestBlobs(t *testing.T) {
	rand.Seed(42)
	centers := [][]float64{{-5, 0}, {5, 0}, {0, 5}}
	ds, err := Blobs(300, centers, 0.1)
	require.NoError(t, err)
	require.Equal(t, 3, ds.NumClasses)
	require.Equal(t, []int{100, 100, 100}, ds.ClassCounts())
	// Tight clusters must stay near their centers
	for i := 0; i < ds.Len(); i++ {
		row := ds.Row(i)
		center := centers[ds.Labels[i]]
		require.InDelta(t, center[0], row[0], 1.0)
		require.InDelta(t, center[1], row[1], 1.0)
	}

	_, err = Blobs(301, centers, 0.1)
	require.Error(t, err)
	_, err = Blobs(300, [][]float64{{0, 0}}, 0.1)
	require.Error(t, err)
	_, err = Blobs(300, [][]float64{{0, 0}, {1}}, 0.1)
	require.Error(t, err)
}

func TestSplit(t *testing.T) {
	rand.Seed(42)
	ds, err := Moons(200, 0.05)
	require.NoError(t, err)

	train, test, err := ds.Split(0.75)
	require.NoError(t, err)
	require.Equal(t, 150, train.Len())
	require.Equal(t, 50, test.Len())
	require.Equal(t, ds.NumClasses, train.NumClasses)
	require.Equal(t, ds.NumClasses, test.NumClasses)

	// Split must preserve every sample
	combined := make([]int, ds.NumClasses)
	for class, count := range train.ClassCounts() {
		combined[class] += count
	}
	for class, count := range test.ClassCounts() {
		combined[class] += count
	}
	require.Equal(t, ds.ClassCounts(), combined)

	_, _, err = ds.Split(0.0)
	require.Error(t, err)
	_, _, err = ds.Split(1.0)
	require.Error(t, err)
}

func TestFeaturesTensor(t *testing.T) {
	rand.Seed(42)
	ds, err := Moons(50, 0.05)
	require.NoError(t, err)
	features := ds.FeaturesTensor()
	require.Equal(t, []int{50, 2}, []int(features.Shape()))
	require.Equal(t, ds.X, features.Data().([]float64))
}
