package mlp_go

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorgonia.org/gorgonia"
)

func TestNetworkFwdErrors(t *testing.T) {
	g := gorgonia.NewGraph()
	input := gorgonia.NewMatrix(g, gorgonia.Float64, gorgonia.WithShape(4, 2), gorgonia.WithName("input"))

	empty := &Network{Name: "empty"}
	require.Error(t, empty.Fwd(input, 4))

	withNilLayer := &Network{Name: "nil_layer", Layers: []*Layer{nil}}
	require.Error(t, withNilLayer.Fwd(input, 4))

	withNilWeights := &Network{Name: "nil_weights", Layers: []*Layer{{Type: LayerLinear, Activation: Rectify}}}
	require.Error(t, withNilWeights.Fwd(input, 4))
}

func TestNetworkLearnables(t *testing.T) {
	g := gorgonia.NewGraph()
	w := gorgonia.NewMatrix(g, gorgonia.Float64, gorgonia.WithShape(4, 2), gorgonia.WithName("w"), gorgonia.WithInit(gorgonia.GlorotN(1.0)))
	b := gorgonia.NewMatrix(g, gorgonia.Float64, gorgonia.WithShape(1, 4), gorgonia.WithName("b"), gorgonia.WithInit(gorgonia.GlorotN(1.0)))
	net := &Network{
		Name: "single",
		Layers: []*Layer{
			{WeightNode: w, BiasNode: b, Type: LayerLinear, Activation: Rectify},
			{Type: LayerDropout, Probability: 0.5, Activation: NoActivation},
		},
	}
	learnables := net.Learnables()
	require.Len(t, learnables, 2)
	require.Contains(t, learnables, w)
	require.Contains(t, learnables, b)
}
