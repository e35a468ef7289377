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
	noise        = 0.15
	trainRatio   = 0.75
	batchSize    = 32
	numEpoches   = 80
	learnRate    = 0.001
	evalPrint    = 20
	gridSteps    = 128
)

func main() {
	// Initialize seed with constant value to reproduce results
	rand.Seed(1337)

	if err := os.MkdirAll(outputFolder, 0755); err != nil {
		panic(err)
	}

	moons, err := mlp.Moons(numSamples, noise)
	if err != nil {
		panic(err)
	}
	err = mlp.PlotDataset(moons, fmt.Sprintf("%s/moons_data.png", outputFolder))
	if err != nil {
		panic(err)
	}

	train, test, err := moons.Split(trainRatio)
	if err != nil {
		panic(err)
	}
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
		Name:             "moons",
		InputDim:         moons.Dim,
		HiddenSizes:      []int{16, 8},
		HiddenActivation: mlp.Tanh,
		NumClasses:       moons.NumClasses,
		Mode:             mlp.ModeBinary,
		BatchSize:        batchSize,
	})
	if err != nil {
		panic(err)
	}
	defer classifier.Close()

	history, err := classifier.Train(train, test, mlp.TrainingParams{
		Epochs:    numEpoches,
		LearnRate: learnRate,
		Optimizer: mlp.OptimizerRMSProp,
		LogEvery:  evalPrint,
	})
	if err != nil {
		panic(err)
	}
	final := history.Last()
	fmt.Printf("final: loss = %.4f, train accuracy = %.4f, test accuracy = %.4f\n", final.Loss, final.TrainAccuracy, final.TestAccuracy)

	err = mlp.PlotAccuracyCurves("moons", history, fmt.Sprintf("%s/moons_accuracy.png", outputFolder))
	if err != nil {
		panic(err)
	}
	// Boundary is drawn in scaled feature space since the classifier was trained there
	err = mlp.PlotDecisionBoundary(classifier, test, gridSteps, fmt.Sprintf("%s/moons_boundary.png", outputFolder))
	if err != nil {
		panic(err)
	}
}
