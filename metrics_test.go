package mlp_go

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func TestAccuracyBinary(t *testing.T) {
	probs := tensor.New(tensor.WithShape(4, 1), tensor.WithBacking([]float64{0.9, 0.5, 0.2, 0.51}))
	// Probability of exactly 0.5 counts as negative class
	accuracy, err := AccuracyBinary(probs, []int{1, 0, 0, 1})
	require.NoError(t, err)
	require.InDelta(t, 1.0, accuracy, 1e-12)

	accuracy, err = AccuracyBinary(probs, []int{0, 1, 0, 1})
	require.NoError(t, err)
	require.InDelta(t, 0.5, accuracy, 1e-12)

	_, err = AccuracyBinary(probs, []int{1, 0})
	require.Error(t, err)
}

func TestAccuracyMulticlass(t *testing.T) {
	probs := tensor.New(tensor.WithShape(3, 3), tensor.WithBacking([]float64{
		0.7, 0.2, 0.1,
		0.1, 0.3, 0.6,
		0.2, 0.5, 0.3,
	}))
	accuracy, err := AccuracyMulticlass(probs, []int{0, 2, 1})
	require.NoError(t, err)
	require.InDelta(t, 1.0, accuracy, 1e-12)

	accuracy, err = AccuracyMulticlass(probs, []int{0, 2, 2})
	require.NoError(t, err)
	require.InDelta(t, 2.0/3.0, accuracy, 1e-12)

	_, err = AccuracyMulticlass(probs, []int{0})
	require.Error(t, err)
}

func TestPredictedClasses(t *testing.T) {
	binary := tensor.New(tensor.WithShape(4, 1), tensor.WithBacking([]float64{0.9, 0.5, 0.2, 0.51}))
	classes, err := PredictedClassesBinary(binary, 4)
	require.NoError(t, err)
	require.Equal(t, []int{1, 0, 0, 1}, classes)

	_, err = PredictedClassesBinary(binary, 2)
	require.Error(t, err)

	multiclass := tensor.New(tensor.WithShape(3, 3), tensor.WithBacking([]float64{
		0.7, 0.2, 0.1,
		0.1, 0.3, 0.6,
		0.2, 0.5, 0.3,
	}))
	classes, err = PredictedClassesMulticlass(multiclass, 3)
	require.NoError(t, err)
	require.Equal(t, []int{0, 2, 1}, classes)

	_, err = PredictedClassesMulticlass(multiclass, 2)
	require.Error(t, err)
}

func TestConfusionMatrix(t *testing.T) {
	matrix, err := NewConfusionMatrix([]int{0, 0, 1, 1, 2}, []int{0, 1, 1, 1, 2}, 3)
	require.NoError(t, err)
	require.Equal(t, [][]int{
		{1, 1, 0},
		{0, 2, 0},
		{0, 0, 1},
	}, matrix.Counts)
	require.InDelta(t, 0.8, matrix.Accuracy(), 1e-12)
	require.Contains(t, matrix.String(), "true\\pred")

	_, err = NewConfusionMatrix([]int{0}, []int{0, 1}, 2)
	require.Error(t, err)
	_, err = NewConfusionMatrix([]int{5}, []int{0}, 2)
	require.Error(t, err)
	_, err = NewConfusionMatrix([]int{0}, []int{5}, 2)
	require.Error(t, err)
}
