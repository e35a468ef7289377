package mlp_go

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gorgonia.org/tensor"
)

// Transformer Interface for feature transformation in 'fit on train, apply everywhere' manner
type Transformer interface {
	Fit(ds *Dataset) error
	Transform(ds *Dataset) (*Dataset, error)
	FitTransform(ds *Dataset) (*Dataset, error)
}

// StandardScaler Per-column standardization: (x - mean) / stddev
type StandardScaler struct {
	Mean  []float64
	Scale []float64
}

// Fit Learns per-column mean and standard deviation
func (s *StandardScaler) Fit(ds *Dataset) error {
	if ds.Len() == 0 {
		return fmt.Errorf("Can't fit scaler on empty dataset")
	}
	s.Mean = make([]float64, ds.Dim)
	s.Scale = make([]float64, ds.Dim)
	column := make([]float64, ds.Len())
	for j := 0; j < ds.Dim; j++ {
		for i := 0; i < ds.Len(); i++ {
			column[i] = ds.X[i*ds.Dim+j]
		}
		s.Mean[j] = stat.Mean(column, nil)
		s.Scale[j] = stat.StdDev(column, nil)
		// Constant column is left as is (after mean shift)
		if s.Scale[j] == 0 || math.IsNaN(s.Scale[j]) {
			s.Scale[j] = 1
		}
	}
	return nil
}

// Transform Applies learned standardization. Returns transformed copy of dataset.
func (s *StandardScaler) Transform(ds *Dataset) (*Dataset, error) {
	if len(s.Mean) == 0 {
		return nil, fmt.Errorf("Scaler must be fitted before transform")
	}
	if len(s.Mean) != ds.Dim {
		return nil, fmt.Errorf("Scaler was fitted on %d columns, but dataset has %d", len(s.Mean), ds.Dim)
	}
	transformed := ds.Clone()
	for i := 0; i < transformed.Len(); i++ {
		for j := 0; j < transformed.Dim; j++ {
			transformed.X[i*transformed.Dim+j] = (transformed.X[i*transformed.Dim+j] - s.Mean[j]) / s.Scale[j]
		}
	}
	return transformed, nil
}

// FitTransform Fit and Transform in a single call
func (s *StandardScaler) FitTransform(ds *Dataset) (*Dataset, error) {
	if err := s.Fit(ds); err != nil {
		return nil, err
	}
	return s.Transform(ds)
}

// MinMaxScaler Per-column rescaling into [0;1]
type MinMaxScaler struct {
	Min []float64
	Max []float64
}

// Fit Learns per-column minimum and maximum
func (s *MinMaxScaler) Fit(ds *Dataset) error {
	if ds.Len() == 0 {
		return fmt.Errorf("Can't fit scaler on empty dataset")
	}
	s.Min = make([]float64, ds.Dim)
	s.Max = make([]float64, ds.Dim)
	for j := 0; j < ds.Dim; j++ {
		s.Min[j] = math.Inf(1)
		s.Max[j] = math.Inf(-1)
		for i := 0; i < ds.Len(); i++ {
			v := ds.X[i*ds.Dim+j]
			if v < s.Min[j] {
				s.Min[j] = v
			}
			if v > s.Max[j] {
				s.Max[j] = v
			}
		}
	}
	return nil
}

// Transform Applies learned rescaling. Returns transformed copy of dataset.
func (s *MinMaxScaler) Transform(ds *Dataset) (*Dataset, error) {
	if len(s.Min) == 0 {
		return nil, fmt.Errorf("Scaler must be fitted before transform")
	}
	if len(s.Min) != ds.Dim {
		return nil, fmt.Errorf("Scaler was fitted on %d columns, but dataset has %d", len(s.Min), ds.Dim)
	}
	transformed := ds.Clone()
	for j := 0; j < transformed.Dim; j++ {
		spread := s.Max[j] - s.Min[j]
		// Constant column maps to zero
		if spread == 0 {
			spread = 1
		}
		for i := 0; i < transformed.Len(); i++ {
			transformed.X[i*transformed.Dim+j] = (transformed.X[i*transformed.Dim+j] - s.Min[j]) / spread
		}
	}
	return transformed, nil
}

// FitTransform Fit and Transform in a single call
func (s *MinMaxScaler) FitTransform(ds *Dataset) (*Dataset, error) {
	if err := s.Fit(ds); err != nil {
		return nil, err
	}
	return s.Transform(ds)
}

// OneHotEncode Encodes class indices into one-hot matrix of shape (len(labels), numClasses)
func OneHotEncode(labels []int, numClasses int) (*tensor.Dense, error) {
	if numClasses < 2 {
		return nil, fmt.Errorf("One-hot encoding needs two classes atleast, but got %d", numClasses)
	}
	backing := make([]float64, len(labels)*numClasses)
	for i, label := range labels {
		if label < 0 || label >= numClasses {
			return nil, fmt.Errorf("Label #%d is %d which is out of range [0;%d)", i, label, numClasses)
		}
		backing[i*numClasses+label] = 1.0
	}
	return tensor.New(tensor.WithShape(len(labels), numClasses), tensor.WithBacking(backing)), nil
}

// BinaryTargets Encodes 0/1 class indices into target column of shape (len(labels), 1)
func BinaryTargets(labels []int) (*tensor.Dense, error) {
	backing := make([]float64, len(labels))
	for i, label := range labels {
		if label != 0 && label != 1 {
			return nil, fmt.Errorf("Label #%d is %d, but binary targets allow 0 and 1 only", i, label)
		}
		backing[i] = float64(label)
	}
	return tensor.New(tensor.WithShape(len(labels), 1), tensor.WithBacking(backing)), nil
}
