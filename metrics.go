package mlp_go

import (
	"fmt"
	"strings"

	"gorgonia.org/tensor"
)

// AccuracyBinary Fraction of correct predictions for sigmoid outputs of shape (n, 1).
// Probability of exactly 0.5 counts as negative class.
func AccuracyBinary(probs *tensor.Dense, labels []int) (float64, error) {
	correct, err := countCorrectBinary(probs, labels)
	if err != nil {
		return 0, err
	}
	return float64(correct) / float64(len(labels)), nil
}

// AccuracyMulticlass Fraction of correct predictions for softmax outputs of shape (n, numClasses).
// Prediction is the argmax of each row.
func AccuracyMulticlass(probs *tensor.Dense, labels []int) (float64, error) {
	correct, err := countCorrectMulticlass(probs, labels)
	if err != nil {
		return 0, err
	}
	return float64(correct) / float64(len(labels)), nil
}

// PredictedClassesBinary Decodes sigmoid outputs of shape (n, 1) into class indices.
// Probability of exactly 0.5 counts as negative class.
func PredictedClassesBinary(probs *tensor.Dense, n int) ([]int, error) {
	data, err := denseRows(probs, n, 1)
	if err != nil {
		return nil, err
	}
	classes := make([]int, n)
	for i := range classes {
		if data[i] > 0.5 {
			classes[i] = 1
		}
	}
	return classes, nil
}

// PredictedClassesMulticlass Decodes softmax outputs of shape (n, numClasses) into
// class indices via per-row argmax
func PredictedClassesMulticlass(probs *tensor.Dense, n int) ([]int, error) {
	if probs.Dims() != 2 {
		return nil, fmt.Errorf("Predictions must have two dimensions, but got %d", probs.Dims())
	}
	numClasses := probs.Shape()[1]
	data, err := denseRows(probs, n, numClasses)
	if err != nil {
		return nil, err
	}
	classes := make([]int, n)
	for i := range classes {
		classes[i] = argmax(data[i*numClasses : (i+1)*numClasses])
	}
	return classes, nil
}

func countCorrectBinary(probs *tensor.Dense, labels []int) (int, error) {
	predicted, err := PredictedClassesBinary(probs, len(labels))
	if err != nil {
		return 0, err
	}
	return countMatches(predicted, labels), nil
}

func countCorrectMulticlass(probs *tensor.Dense, labels []int) (int, error) {
	predicted, err := PredictedClassesMulticlass(probs, len(labels))
	if err != nil {
		return 0, err
	}
	return countMatches(predicted, labels), nil
}

func countMatches(predicted, labels []int) int {
	correct := 0
	for i, label := range labels {
		if predicted[i] == label {
			correct++
		}
	}
	return correct
}

func denseRows(probs *tensor.Dense, rows, cols int) ([]float64, error) {
	data, ok := probs.Data().([]float64)
	if !ok {
		return nil, fmt.Errorf("Predictions must be backed by []float64, but got %T", probs.Data())
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("Predictions hold %d values, but %d labels with %d columns were provided", len(data), rows, cols)
	}
	return data, nil
}

func argmax(row []float64) int {
	best := 0
	for i := 1; i < len(row); i++ {
		if row[i] > row[best] {
			best = i
		}
	}
	return best
}

// ConfusionMatrix Counts[i][j] is number of samples of true class i predicted as class j
type ConfusionMatrix struct {
	NumClasses int
	Counts     [][]int
}

// NewConfusionMatrix Builds confusion matrix for provided true/predicted class indices
func NewConfusionMatrix(trueLabels, predictedLabels []int, numClasses int) (*ConfusionMatrix, error) {
	if len(trueLabels) != len(predictedLabels) {
		return nil, fmt.Errorf("True and predicted labels must have same length, but got %d and %d", len(trueLabels), len(predictedLabels))
	}
	m := &ConfusionMatrix{
		NumClasses: numClasses,
		Counts:     make([][]int, numClasses),
	}
	for i := range m.Counts {
		m.Counts[i] = make([]int, numClasses)
	}
	for i := range trueLabels {
		if trueLabels[i] < 0 || trueLabels[i] >= numClasses {
			return nil, fmt.Errorf("True label #%d is %d which is out of range [0;%d)", i, trueLabels[i], numClasses)
		}
		if predictedLabels[i] < 0 || predictedLabels[i] >= numClasses {
			return nil, fmt.Errorf("Predicted label #%d is %d which is out of range [0;%d)", i, predictedLabels[i], numClasses)
		}
		m.Counts[trueLabels[i]][predictedLabels[i]]++
	}
	return m, nil
}

// Accuracy Fraction of diagonal elements
func (m *ConfusionMatrix) Accuracy() float64 {
	total := 0
	diagonal := 0
	for i := range m.Counts {
		for j := range m.Counts[i] {
			total += m.Counts[i][j]
			if i == j {
				diagonal += m.Counts[i][j]
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(diagonal) / float64(total)
}

func (m *ConfusionMatrix) String() string {
	var sb strings.Builder
	sb.WriteString("true\\pred")
	for j := 0; j < m.NumClasses; j++ {
		sb.WriteString(fmt.Sprintf("\t%d", j))
	}
	sb.WriteString("\n")
	for i := 0; i < m.NumClasses; i++ {
		sb.WriteString(fmt.Sprintf("%d", i))
		for j := 0; j < m.NumClasses; j++ {
			sb.WriteString(fmt.Sprintf("\t%d", m.Counts[i][j]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
