package main

import (
	"fmt"
	"math/rand"
	"os"

	mlp "github.com/planar-ml/mlp-go"
)

var (
	outputFolder = "./output"
	numSamples   = 999
	stddev       = 0.75
	trainRatio   = 0.7
	batchSize    = 32
	numEpoches   = 40
	learnRate    = 0.01
	evalPrint    = 10
)

func main() {
	// Initialize seed with constant value to reproduce results
	rand.Seed(1337)

	if err := os.MkdirAll(outputFolder, 0755); err != nil {
		panic(err)
	}

	blobs, err := mlp.Blobs(numSamples, [][]float64{{-2.5, 0}, {2.5, 0}, {0, 4}}, stddev)
	if err != nil {
		panic(err)
	}
	err = mlp.PlotDataset(blobs, fmt.Sprintf("%s/blobs_data.png", outputFolder))
	if err != nil {
		panic(err)
	}

	train, test, err := blobs.Split(trainRatio)
	if err != nil {
		panic(err)
	}
	scaler := &mlp.MinMaxScaler{}
	train, err = scaler.FitTransform(train)
	if err != nil {
		panic(err)
	}
	test, err = scaler.Transform(test)
	if err != nil {
		panic(err)
	}

	classifier, err := mlp.NewClassifier(mlp.ClassifierConfig{
		Name:             "blobs",
		InputDim:         blobs.Dim,
		HiddenSizes:      []int{16},
		HiddenActivation: mlp.Rectify,
		NumClasses:       blobs.NumClasses,
		Mode:             mlp.ModeMulticlass,
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
	fmt.Printf("final: loss = %.4f, train accuracy = %.4f, test accuracy = %.4f\n", final.Loss, final.TrainAccuracy, final.TestAccuracy)

	predicted, err := classifier.PredictDataset(test)
	if err != nil {
		panic(err)
	}
	matrix, err := mlp.NewConfusionMatrix(test.Labels, predicted, test.NumClasses)
	if err != nil {
		panic(err)
	}
	fmt.Printf("confusion matrix on test part:\n%s", matrix)

	err = mlp.PlotAccuracyCurves("blobs", history, fmt.Sprintf("%s/blobs_accuracy.png", outputFolder))
	if err != nil {
		panic(err)
	}
}
