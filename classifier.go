package mlp_go

import (
	"fmt"

	"github.com/pkg/errors"
	"gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// ClassificationMode Way of encoding targets and reading predictions
type ClassificationMode uint16

const (
	// ModeBinary Single sigmoid output unit, 0/1 targets, 0.5 decision threshold
	ModeBinary = ClassificationMode(iota)
	// ModeMulticlass Softmax output layer with one unit per class, one-hot targets, argmax decision
	ModeMulticlass
)

// ClassifierConfig Full description of feedforward classifier
//
// Name - prefix for graph nodes names
// HiddenSizes - sizes of hidden layers in order
// DropoutRate - if positive, dropout layer with that rate is placed after each hidden layer
// Loss - optional loss override. Default is BinaryCrossEntropyLoss for ModeBinary and CrossEntropyLoss for ModeMulticlass.
// BatchSize - fixed batch size of evaluation graph
//
type ClassifierConfig struct {
	Name             string
	InputDim         int
	HiddenSizes      []int
	HiddenActivation ActivationFunc
	DropoutRate      float64
	NumClasses       int
	Mode             ClassificationMode
	Loss             LossFunc
	BatchSize        int
}

func (cfg *ClassifierConfig) validate() error {
	if cfg.InputDim < 1 {
		return fmt.Errorf("Input dimension must be positive, but got %d", cfg.InputDim)
	}
	if cfg.NumClasses < 2 {
		return fmt.Errorf("Classifier needs two classes atleast, but got %d", cfg.NumClasses)
	}
	if cfg.Mode == ModeBinary && cfg.NumClasses != 2 {
		return fmt.Errorf("Binary mode allows exactly 2 classes, but got %d", cfg.NumClasses)
	}
	if cfg.BatchSize < 1 {
		return fmt.Errorf("Batch size must be positive, but got %d", cfg.BatchSize)
	}
	if len(cfg.HiddenSizes) == 0 {
		return fmt.Errorf("Classifier must have one hidden layer atleast")
	}
	for i, size := range cfg.HiddenSizes {
		if size < 1 {
			return fmt.Errorf("Hidden layer #%d size must be positive, but got %d", i, size)
		}
	}
	if cfg.DropoutRate < 0 || cfg.DropoutRate >= 1 {
		return fmt.Errorf("Dropout rate must be in [0;1), but got %f", cfg.DropoutRate)
	}
	if cfg.HiddenActivation == nil {
		return fmt.Errorf("Hidden activation function is not provided")
	}
	return nil
}

func (cfg *ClassifierConfig) outputUnits() int {
	if cfg.Mode == ModeBinary {
		return 1
	}
	return cfg.NumClasses
}

func (cfg *ClassifierConfig) lossFunc() LossFunc {
	if cfg.Loss != nil {
		return cfg.Loss
	}
	if cfg.Mode == ModeBinary {
		return BinaryCrossEntropyLoss
	}
	return CrossEntropyLoss
}

// weightPair Training node and its counterpart on the inference graph
type weightPair struct {
	train *gorgonia.Node
	infer *gorgonia.Node
}

// Classifier Feedforward neural network with two evaluation graphs: one carries
// loss and gradients for training, the other one is a plain feedforward copy used
// for inference. Weights of the copy are synchronized from the training graph
// before every prediction run, so gradient state bound to the training machine is
// never touched by evaluation.
type Classifier struct {
	cfg ClassifierConfig

	g      *gorgonia.ExprGraph
	net    *Network
	input  *gorgonia.Node
	target *gorgonia.Node
	cost   *gorgonia.Node

	costVal gorgonia.Value

	vm gorgonia.VM

	inferG      *gorgonia.ExprGraph
	inferNet    *Network
	inferInput  *gorgonia.Node
	inferOutVal gorgonia.Value
	inferVM     gorgonia.VM
	weightPairs []weightPair
}

// NewClassifier Builds evaluation graphs for provided config: dense stack with
// Glorot-initialized weights, loss against target node, gradients and machine
// bound to learnables for training, plus gradient-free inference copy.
func NewClassifier(cfg ClassifierConfig) (*Classifier, error) {
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "Bad classifier config")
	}
	name := cfg.Name
	if name == "" {
		name = "classifier"
	}

	c := &Classifier{cfg: cfg, g: gorgonia.NewGraph()}

	layers := make([]*Layer, 0, 2*len(cfg.HiddenSizes)+1)
	prevDim := cfg.InputDim
	for i, size := range cfg.HiddenSizes {
		w := gorgonia.NewMatrix(c.g, gorgonia.Float64, gorgonia.WithShape(size, prevDim), gorgonia.WithName(fmt.Sprintf("%s_w%d", name, i)), gorgonia.WithInit(gorgonia.GlorotN(1.0)))
		b := gorgonia.NewMatrix(c.g, gorgonia.Float64, gorgonia.WithShape(1, size), gorgonia.WithName(fmt.Sprintf("%s_b%d", name, i)), gorgonia.WithInit(gorgonia.GlorotN(1.0)))
		layers = append(layers, &Layer{
			WeightNode: w,
			BiasNode:   b,
			Type:       LayerLinear,
			Activation: cfg.HiddenActivation,
		})
		if cfg.DropoutRate > 0 {
			layers = append(layers, &Layer{
				Type:        LayerDropout,
				Probability: cfg.DropoutRate,
				Activation:  NoActivation,
			})
		}
		prevDim = size
	}
	outUnits := cfg.outputUnits()
	outActivation := Sigmoid
	if cfg.Mode == ModeMulticlass {
		outActivation = Softmax
	}
	wOut := gorgonia.NewMatrix(c.g, gorgonia.Float64, gorgonia.WithShape(outUnits, prevDim), gorgonia.WithName(fmt.Sprintf("%s_w_out", name)), gorgonia.WithInit(gorgonia.GlorotN(1.0)))
	bOut := gorgonia.NewMatrix(c.g, gorgonia.Float64, gorgonia.WithShape(1, outUnits), gorgonia.WithName(fmt.Sprintf("%s_b_out", name)), gorgonia.WithInit(gorgonia.GlorotN(1.0)))
	layers = append(layers, &Layer{
		WeightNode: wOut,
		BiasNode:   bOut,
		Type:       LayerLinear,
		Activation: outActivation,
	})

	c.net = &Network{Name: name, Layers: layers}
	c.input = gorgonia.NewMatrix(c.g, gorgonia.Float64, gorgonia.WithShape(cfg.BatchSize, cfg.InputDim), gorgonia.WithName(name+"_input"))
	if err := c.net.Fwd(c.input, cfg.BatchSize); err != nil {
		return nil, errors.Wrap(err, "Can't initialize feedforward")
	}

	c.target = gorgonia.NewMatrix(c.g, gorgonia.Float64, gorgonia.WithShape(cfg.BatchSize, outUnits), gorgonia.WithName(name+"_target"))
	cost, err := cfg.lossFunc()(c.net.Out(), c.target)
	if err != nil {
		return nil, errors.Wrap(err, "Can't build loss")
	}
	gorgonia.WithName(name + "_cost")(cost)
	c.cost = cost

	if _, err := gorgonia.Grad(c.cost, c.net.Learnables()...); err != nil {
		return nil, errors.Wrap(err, "Can't define gradients")
	}

	gorgonia.Read(c.cost, &c.costVal)

	if err := c.buildInference(name); err != nil {
		return nil, errors.Wrap(err, "Can't build inference copy")
	}

	c.vm = gorgonia.NewTapeMachine(c.g, gorgonia.BindDualValues(c.net.Learnables()...))
	c.inferVM = gorgonia.NewTapeMachine(c.inferG)
	return c, nil
}

// buildInference Mirrors trained layers onto a separate graph carrying no loss,
// no gradients and no dropout (dropout is a train-time regularizer only).
// Weight nodes of the copy start from values of their training counterparts.
func (c *Classifier) buildInference(name string) error {
	c.inferG = gorgonia.NewGraph()
	inferLayers := make([]*Layer, 0, len(c.net.Layers))
	for _, l := range c.net.Layers {
		if l.Type == LayerDropout {
			continue
		}
		w := gorgonia.NewMatrix(c.inferG, gorgonia.Float64, gorgonia.WithShape(l.WeightNode.Shape()...), gorgonia.WithName(l.WeightNode.Name()+"_infer"), gorgonia.WithValue(l.WeightNode.Value()))
		b := gorgonia.NewMatrix(c.inferG, gorgonia.Float64, gorgonia.WithShape(l.BiasNode.Shape()...), gorgonia.WithName(l.BiasNode.Name()+"_infer"), gorgonia.WithValue(l.BiasNode.Value()))
		c.weightPairs = append(c.weightPairs,
			weightPair{train: l.WeightNode, infer: w},
			weightPair{train: l.BiasNode, infer: b},
		)
		inferLayers = append(inferLayers, &Layer{
			WeightNode: w,
			BiasNode:   b,
			Type:       l.Type,
			Activation: l.Activation,
		})
	}
	c.inferNet = &Network{Name: name + "_infer", Layers: inferLayers}
	c.inferInput = gorgonia.NewMatrix(c.inferG, gorgonia.Float64, gorgonia.WithShape(c.cfg.BatchSize, c.cfg.InputDim), gorgonia.WithName(name+"_infer_input"))
	if err := c.inferNet.Fwd(c.inferInput, c.cfg.BatchSize); err != nil {
		return errors.Wrap(err, "Can't initialize inference feedforward")
	}
	gorgonia.Read(c.inferNet.Out(), &c.inferOutVal)
	return nil
}

// syncInferenceWeights Rebinds inference nodes to current values of training weights
func (c *Classifier) syncInferenceWeights() error {
	for _, pair := range c.weightPairs {
		if err := gorgonia.Let(pair.infer, pair.train.Value()); err != nil {
			return errors.Wrap(err, fmt.Sprintf("Can't sync weights of node '%s'", pair.infer.Name()))
		}
	}
	return nil
}

// Learnables Returns learnables nodes
func (c *Classifier) Learnables() gorgonia.Nodes {
	return c.net.Learnables()
}

// Out Returns reference to output node of training graph
func (c *Classifier) Out() *gorgonia.Node {
	return c.net.Out()
}

// Close Releases underlying machines
func (c *Classifier) Close() error {
	trainErr := c.vm.Close()
	inferErr := c.inferVM.Close()
	if trainErr != nil {
		return trainErr
	}
	return inferErr
}

// encodeTargets Encodes class indices accordingly to classification mode
func (c *Classifier) encodeTargets(labels []int) (*tensor.Dense, error) {
	if c.cfg.Mode == ModeBinary {
		return BinaryTargets(labels)
	}
	return OneHotEncode(labels, c.cfg.NumClasses)
}

// trainBatch Runs training graph for single batch. Weights are updated by the
// caller through solver step.
func (c *Classifier) trainBatch(batchX, batchY *tensor.Dense) error {
	if err := gorgonia.Let(c.input, batchX); err != nil {
		return errors.Wrap(err, "Can't init input value")
	}
	if err := gorgonia.Let(c.target, batchY); err != nil {
		return errors.Wrap(err, "Can't init target value")
	}
	if err := c.vm.RunAll(); err != nil {
		return errors.Wrap(err, "Can't run machine")
	}
	c.vm.Reset()
	return nil
}

// inferBatch Runs inference graph for single batch
func (c *Classifier) inferBatch(batchX *tensor.Dense) (*tensor.Dense, error) {
	if err := gorgonia.Let(c.inferInput, batchX); err != nil {
		return nil, errors.Wrap(err, "Can't init input value")
	}
	if err := c.inferVM.RunAll(); err != nil {
		return nil, errors.Wrap(err, "Can't run machine")
	}
	c.inferVM.Reset()
	probs, ok := c.inferOutVal.(*tensor.Dense)
	if !ok {
		return nil, fmt.Errorf("Network output is %T, not a dense tensor", c.inferOutVal)
	}
	return probs, nil
}

// predictProbs Feedforwards every feature vector through the inference copy and
// stacks outputs into single (n, outputUnits) tensor.
//
// Trailing partial batch is padded with zero rows and its extra outputs are dropped.
//
func (c *Classifier) predictProbs(features []float64) (*tensor.Dense, error) {
	if len(features) == 0 || len(features)%c.cfg.InputDim != 0 {
		return nil, fmt.Errorf("Features length %d is not positive multiple of input dimension %d", len(features), c.cfg.InputDim)
	}
	if err := c.syncInferenceWeights(); err != nil {
		return nil, err
	}
	n := len(features) / c.cfg.InputDim
	bs := c.cfg.BatchSize
	outUnits := c.cfg.outputUnits()

	stacked := make([]float64, n*outUnits)
	for start := 0; start < n; start += bs {
		rows := bs
		if start+rows > n {
			rows = n - start
		}
		backing := make([]float64, bs*c.cfg.InputDim)
		copy(backing, features[start*c.cfg.InputDim:(start+rows)*c.cfg.InputDim])
		batchX := tensor.New(tensor.WithShape(bs, c.cfg.InputDim), tensor.WithBacking(backing))

		probs, err := c.inferBatch(batchX)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("Can't feedforward batch starting at sample #%d", start))
		}
		data, ok := probs.Data().([]float64)
		if !ok {
			return nil, fmt.Errorf("Network output must be backed by []float64, but got %T", probs.Data())
		}
		copy(stacked[start*outUnits:(start+rows)*outUnits], data[:rows*outUnits])
	}
	return tensor.New(tensor.WithShape(n, outUnits), tensor.WithBacking(stacked)), nil
}

// Predict Returns predicted class index for each feature vector.
//
// features - row-major feature matrix with InputDim columns
//
func (c *Classifier) Predict(features []float64) ([]int, error) {
	probs, err := c.predictProbs(features)
	if err != nil {
		return nil, err
	}
	n := probs.Shape()[0]
	if c.cfg.Mode == ModeBinary {
		return PredictedClassesBinary(probs, n)
	}
	return PredictedClassesMulticlass(probs, n)
}

// PredictDataset Shortcut for Predict on dataset features
func (c *Classifier) PredictDataset(ds *Dataset) ([]int, error) {
	if ds.Dim != c.cfg.InputDim {
		return nil, fmt.Errorf("Dataset has %d columns, but classifier expects %d", ds.Dim, c.cfg.InputDim)
	}
	return c.Predict(ds.X)
}
