package mlp_go

import (
	"fmt"

	"github.com/pkg/errors"
	"gorgonia.org/gorgonia"
)

// Layer Just an alias to Weight+Bias+ActivationFunc combo
type Layer struct {
	WeightNode *gorgonia.Node
	BiasNode   *gorgonia.Node
	Activation ActivationFunc
	Type       LayerType

	// Probability Keep probability complement for LayerDropout. Ignored by other layer types.
	Probability float64
}

type LayerType uint16

const (
	LayerLinear = LayerType(iota)
	LayerDropout
)

var (
	allowedNoWeights = []LayerType{LayerDropout}
)

func noWeightsAllowed(checkType LayerType) bool {
	return checkLayerType(checkType, allowedNoWeights...)
}

func checkLayerType(checkType LayerType, t ...LayerType) bool {
	for _, typeOf := range t {
		if checkType == typeOf {
			return true
		}
	}
	return false
}

// Fwd Feedforwards input through the layer (activation function is not applied)
//
// batchSize - batch size. If it's >= 2 then broadcast function will be applied for bias
// input - Input node
//
func (layer *Layer) Fwd(batchSize int, input *gorgonia.Node) (*gorgonia.Node, error) {
	switch layer.Type {
	case LayerLinear:
		tOp, err := gorgonia.Transpose(layer.WeightNode)
		if err != nil {
			return nil, errors.Wrap(err, "Can't transpose weights")
		}
		nonActivated, err := gorgonia.Mul(input, tOp)
		if err != nil {
			return nil, errors.Wrap(err, "Can't multiply input and weights")
		}
		if layer.BiasNode == nil {
			return nonActivated, nil
		}
		if batchSize < 2 {
			nonActivated, err = gorgonia.Add(nonActivated, layer.BiasNode)
			if err != nil {
				return nil, errors.Wrap(err, "Can't add bias to non-activated output")
			}
		} else {
			nonActivated, err = gorgonia.BroadcastAdd(nonActivated, layer.BiasNode, nil, []byte{0})
			if err != nil {
				return nil, errors.Wrap(err, fmt.Sprintf("Can't add bias [in broadcast term with batch_size = %d] to non-activated output", batchSize))
			}
		}
		return nonActivated, nil
	case LayerDropout:
		nonActivated, err := gorgonia.Dropout(input, layer.Probability)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("Can't apply dropout with probability %f", layer.Probability))
		}
		return nonActivated, nil
	default:
		return nil, fmt.Errorf("Layer type '%d' (uint16) is not handled", layer.Type)
	}
}
