package mlp_go

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

type OptimizerType uint16

const (
	OptimizerRMSProp = OptimizerType(iota)
	OptimizerAdam
	OptimizerVanilla
)

// TrainingParams Knobs of the training loop
//
// LogEvery - if positive, epoch summary is printed every LogEvery epochs
//
type TrainingParams struct {
	Epochs    int
	LearnRate float64
	Optimizer OptimizerType
	LogEvery  int
}

func (params *TrainingParams) validate() error {
	if params.Epochs < 1 {
		return fmt.Errorf("Number of epochs must be positive, but got %d", params.Epochs)
	}
	if params.LearnRate <= 0 {
		return fmt.Errorf("Learning rate must be positive, but got %f", params.LearnRate)
	}
	return nil
}

func (params *TrainingParams) solver(batchSize int) (gorgonia.Solver, error) {
	switch params.Optimizer {
	case OptimizerRMSProp:
		return gorgonia.NewRMSPropSolver(gorgonia.WithBatchSize(float64(batchSize)), gorgonia.WithLearnRate(params.LearnRate)), nil
	case OptimizerAdam:
		return gorgonia.NewAdamSolver(gorgonia.WithBatchSize(float64(batchSize)), gorgonia.WithLearnRate(params.LearnRate)), nil
	case OptimizerVanilla:
		return gorgonia.NewVanillaSolver(gorgonia.WithBatchSize(float64(batchSize)), gorgonia.WithLearnRate(params.LearnRate)), nil
	default:
		return nil, fmt.Errorf("Optimizer type '%d' (uint16) is not handled", params.Optimizer)
	}
}

// EpochStats Loss and accuracies observed after single epoch
type EpochStats struct {
	Epoch         int
	Loss          float64
	TrainAccuracy float64
	TestAccuracy  float64
}

// History Per-epoch training statistics in epoch order
type History []EpochStats

// Last Returns stats of the final epoch
func (h History) Last() EpochStats {
	if len(h) == 0 {
		return EpochStats{}
	}
	return h[len(h)-1]
}

// Best Returns stats of the epoch with highest test accuracy
func (h History) Best() EpochStats {
	best := EpochStats{TestAccuracy: math.Inf(-1)}
	for _, stats := range h {
		if stats.TestAccuracy > best.TestAccuracy {
			best = stats
		}
	}
	return best
}

// Train Runs mini-batch gradient descent over the train part and evaluates accuracy
// on both parts after every epoch.
//
// Samples are reshuffled each epoch. Trailing batch smaller than the configured
// batch size is skipped during weight updates (evaluation still covers every sample).
//
func (c *Classifier) Train(train, test *Dataset, params TrainingParams) (History, error) {
	if err := params.validate(); err != nil {
		return nil, errors.Wrap(err, "Bad training params")
	}
	if train == nil || test == nil {
		return nil, fmt.Errorf("Both train and test parts must be provided")
	}
	for _, part := range []*Dataset{train, test} {
		if part.Dim != c.cfg.InputDim {
			return nil, fmt.Errorf("Dataset '%s' has %d columns, but classifier expects %d", part.Name, part.Dim, c.cfg.InputDim)
		}
		if part.NumClasses != c.cfg.NumClasses {
			return nil, fmt.Errorf("Dataset '%s' has %d classes, but classifier expects %d", part.Name, part.NumClasses, c.cfg.NumClasses)
		}
	}
	bs := c.cfg.BatchSize
	if train.Len() < bs {
		return nil, fmt.Errorf("Train part holds %d samples which is less than batch size %d", train.Len(), bs)
	}

	solver, err := params.solver(bs)
	if err != nil {
		return nil, errors.Wrap(err, "Can't init solver")
	}

	batches := train.Len() / bs
	indices := rand.Perm(train.Len())
	history := make(History, 0, params.Epochs)

	for epoch := 0; epoch < params.Epochs; epoch++ {
		rand.Shuffle(len(indices), func(i, j int) { indices[i], indices[j] = indices[j], indices[i] })

		epochLoss := 0.0
		for b := 0; b < batches; b++ {
			batchX, batchY, err := c.gatherBatch(train, indices[b*bs:(b+1)*bs])
			if err != nil {
				return nil, errors.Wrap(err, fmt.Sprintf("Can't gather batch #%d of epoch #%d", b, epoch))
			}
			if err := c.trainBatch(batchX, batchY); err != nil {
				return nil, errors.Wrap(err, fmt.Sprintf("Can't run batch #%d of epoch #%d", b, epoch))
			}
			if err := solver.Step(gorgonia.NodesToValueGrads(c.net.Learnables())); err != nil {
				return nil, errors.Wrap(err, fmt.Sprintf("Can't do solver step on batch #%d of epoch #%d", b, epoch))
			}
			batchLoss, err := scalarFloat(c.costVal)
			if err != nil {
				return nil, errors.Wrap(err, "Can't read cost value")
			}
			epochLoss += batchLoss
		}
		epochLoss /= float64(batches)
		if math.IsNaN(epochLoss) || math.IsInf(epochLoss, 0) {
			return history, fmt.Errorf("Training diverged on epoch #%d: cost is %f", epoch, epochLoss)
		}

		trainAccuracy, err := c.EvaluateAccuracy(train)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("Can't evaluate train part on epoch #%d", epoch))
		}
		testAccuracy, err := c.EvaluateAccuracy(test)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("Can't evaluate test part on epoch #%d", epoch))
		}
		history = append(history, EpochStats{
			Epoch:         epoch,
			Loss:          epochLoss,
			TrainAccuracy: trainAccuracy,
			TestAccuracy:  testAccuracy,
		})

		if params.LogEvery > 0 && (epoch+1)%params.LogEvery == 0 {
			fmt.Printf("[%s] epoch %d/%d: loss = %.4f, train accuracy = %.4f, test accuracy = %.4f\n", c.net.Name, epoch+1, params.Epochs, epochLoss, trainAccuracy, testAccuracy)
		}
	}
	return history, nil
}

// EvaluateAccuracy Fraction of correctly classified samples of provided dataset.
// Runs the inference copy of the network, so gradient state of the training
// machine stays untouched.
func (c *Classifier) EvaluateAccuracy(ds *Dataset) (float64, error) {
	if ds.Dim != c.cfg.InputDim {
		return 0, fmt.Errorf("Dataset has %d columns, but classifier expects %d", ds.Dim, c.cfg.InputDim)
	}
	probs, err := c.predictProbs(ds.X)
	if err != nil {
		return 0, err
	}
	if c.cfg.Mode == ModeBinary {
		return AccuracyBinary(probs, ds.Labels)
	}
	return AccuracyMulticlass(probs, ds.Labels)
}

// gatherBatch Copies selected samples into fresh feature/target tensors of batch shape
func (c *Classifier) gatherBatch(ds *Dataset, indices []int) (*tensor.Dense, *tensor.Dense, error) {
	backing := make([]float64, 0, len(indices)*ds.Dim)
	labels := make([]int, 0, len(indices))
	for _, idx := range indices {
		backing = append(backing, ds.Row(idx)...)
		labels = append(labels, ds.Labels[idx])
	}
	batchX := tensor.New(tensor.WithShape(len(indices), ds.Dim), tensor.WithBacking(backing))
	batchY, err := c.encodeTargets(labels)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Can't encode targets")
	}
	return batchX, batchY, nil
}

func scalarFloat(v gorgonia.Value) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("Value has not been evaluated yet")
	}
	switch data := v.Data().(type) {
	case float64:
		return data, nil
	case []float64:
		if len(data) == 1 {
			return data[0], nil
		}
		return 0, fmt.Errorf("Expected single value, but got %d of them", len(data))
	default:
		return 0, fmt.Errorf("Expected float64 scalar, but got %T", data)
	}
}
