package mlp_go

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

func evalLoss(t *testing.T, loss LossFunc, aBacking, bBacking []float64, rows, cols int, reduction ...LossReduction) float64 {
	t.Helper()
	g := gorgonia.NewGraph()
	aT := tensor.New(tensor.WithShape(rows, cols), tensor.WithBacking(aBacking))
	bT := tensor.New(tensor.WithShape(rows, cols), tensor.WithBacking(bBacking))
	a := gorgonia.NewMatrix(g, gorgonia.Float64, gorgonia.WithShape(rows, cols), gorgonia.WithName("a"), gorgonia.WithValue(aT))
	b := gorgonia.NewMatrix(g, gorgonia.Float64, gorgonia.WithShape(rows, cols), gorgonia.WithName("b"), gorgonia.WithValue(bT))

	lossNode, err := loss(a, b, reduction...)
	require.NoError(t, err)

	vm := gorgonia.NewTapeMachine(g)
	defer vm.Close()
	require.NoError(t, vm.RunAll())

	value, err := scalarFloat(lossNode.Value())
	require.NoError(t, err)
	return value
}

func TestMSELoss(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	b := []float64{1, 1, 1, 1}
	// mean((a-b)^2) = (0 + 1 + 4 + 9) / 4
	got := evalLoss(t, MSELoss, a, b, 2, 2)
	require.InDelta(t, 3.5, got, 1e-9)

	got = evalLoss(t, MSELoss, a, b, 2, 2, LossReductionSum)
	require.InDelta(t, 14.0, got, 1e-9)
}

func TestCrossEntropyLoss(t *testing.T) {
	a := []float64{0.9, 0.1, 0.2, 0.8}
	b := []float64{1, 0, 0, 1}
	expected := (-math.Log(0.9+logEpsilon) - math.Log(0.8+logEpsilon)) / 4
	got := evalLoss(t, CrossEntropyLoss, a, b, 2, 2)
	require.InDelta(t, expected, got, 1e-9)
}

func TestBinaryCrossEntropyLoss(t *testing.T) {
	a := []float64{0.9, 0.2}
	b := []float64{1, 0}
	expected := (-math.Log(0.9+logEpsilon) - math.Log(0.8+logEpsilon)) / 2
	got := evalLoss(t, BinaryCrossEntropyLoss, a, b, 2, 1)
	require.InDelta(t, expected, got, 1e-9)
}

func TestBinaryCrossEntropySaturated(t *testing.T) {
	// Fully saturated predictions must produce finite loss
	a := []float64{1.0, 0.0}
	b := []float64{0, 1}
	got := evalLoss(t, BinaryCrossEntropyLoss, a, b, 2, 1)
	require.False(t, math.IsNaN(got))
	require.False(t, math.IsInf(got, 0))
}
