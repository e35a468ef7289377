package main

import (
	"fmt"
	"math/rand"
	"os"

	mlp "github.com/planar-ml/mlp-go"
)

var (
	outputFolder = "./output"
	numSamples   = 1024
	noise        = 0.1
	trainRatio   = 0.75
	batchSize    = 32
	hiddenSizes  = []int{32, 16}
	numEpoches   = 60
	learnRate    = 0.01
	evalPrint    = 10
)

func main() {
	// Initialize seed with constant value to reproduce results
	rand.Seed(1337)

	if err := os.MkdirAll(outputFolder, 0755); err != nil {
		panic(err)
	}

	for _, ds := range prepareDatasets() {
		err := mlp.PlotDataset(ds, fmt.Sprintf("%s/%s_data.png", outputFolder, ds.Name))
		if err != nil {
			panic(err)
		}
		modes := []mlp.ClassificationMode{mlp.ModeMulticlass}
		if ds.NumClasses == 2 {
			modes = append(modes, mlp.ModeBinary)
		}
		for _, mode := range modes {
			runExperiment(ds, mode)
		}
	}
}

func prepareDatasets() []*mlp.Dataset {
	moons, err := mlp.Moons(numSamples, noise)
	if err != nil {
		panic(err)
	}
	circles, err := mlp.Circles(numSamples, noise/2, 0.5)
	if err != nil {
		panic(err)
	}
	xor, err := mlp.XORSquares(numSamples, noise/2)
	if err != nil {
		panic(err)
	}
	spirals, err := mlp.Spirals(numSamples, noise/4)
	if err != nil {
		panic(err)
	}
	blobs, err := mlp.Blobs(numSamples+2, [][]float64{{-2, 0}, {2, 0}, {0, 3}}, 0.6)
	if err != nil {
		panic(err)
	}
	return []*mlp.Dataset{moons, circles, xor, spirals, blobs}
}

func runExperiment(ds *mlp.Dataset, mode mlp.ClassificationMode) {
	name := fmt.Sprintf("%s_%s", ds.Name, modeName(mode))
	fmt.Printf("=== %s ===\n", name)

	train, test, err := ds.Split(trainRatio)
	if err != nil {
		panic(err)
	}

	// Scaler is fitted on train part only and then applied to both parts
	scaler := &mlp.StandardScaler{}
	train, err = scaler.FitTransform(train)
	if err != nil {
		panic(err)
	}
	test, err = scaler.Transform(test)
	if err != nil {
		panic(err)
	}

	classifier, err := mlp.NewClassifier(mlp.ClassifierConfig{
		Name:             name,
		InputDim:         ds.Dim,
		HiddenSizes:      hiddenSizes,
		HiddenActivation: mlp.Rectify,
		NumClasses:       ds.NumClasses,
		Mode:             mode,
		BatchSize:        batchSize,
	})
	if err != nil {
		panic(err)
	}
	defer classifier.Close()

	history, err := classifier.Train(train, test, mlp.TrainingParams{
		Epochs:    numEpoches,
		LearnRate: learnRate,
		Optimizer: mlp.OptimizerAdam,
		LogEvery:  evalPrint,
	})
	if err != nil {
		panic(err)
	}

	final := history.Last()
	best := history.Best()
	fmt.Printf("final: loss = %.4f, train accuracy = %.4f, test accuracy = %.4f\n", final.Loss, final.TrainAccuracy, final.TestAccuracy)
	fmt.Printf("best test accuracy %.4f on epoch %d\n", best.TestAccuracy, best.Epoch)

	err = mlp.PlotAccuracyCurves(name, history, fmt.Sprintf("%s/%s_accuracy.png", outputFolder, name))
	if err != nil {
		panic(err)
	}
}

func modeName(mode mlp.ClassificationMode) string {
	if mode == mlp.ModeBinary {
		return "binary"
	}
	return "multiclass"
}
