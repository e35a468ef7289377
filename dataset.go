package mlp_go

import (
	"fmt"
	"math"
	"math/rand"

	"gorgonia.org/tensor"
)

// Dataset Toy 2-D classification dataset.
//
// X - feature matrix in row-major order (Len()*Dim elements)
// Labels - class index per sample, each one in [0;NumClasses)
//
type Dataset struct {
	Name       string
	Dim        int
	NumClasses int
	X          []float64
	Labels     []int
}

// Len Returns number of samples
func (ds *Dataset) Len() int {
	if ds.Dim == 0 {
		return 0
	}
	return len(ds.X) / ds.Dim
}

// Row Returns feature vector of i-th sample. It's a view, not a copy.
func (ds *Dataset) Row(i int) []float64 {
	return ds.X[i*ds.Dim : (i+1)*ds.Dim]
}

// Clone Returns deep copy of dataset
func (ds *Dataset) Clone() *Dataset {
	copied := &Dataset{
		Name:       ds.Name,
		Dim:        ds.Dim,
		NumClasses: ds.NumClasses,
		X:          make([]float64, len(ds.X)),
		Labels:     make([]int, len(ds.Labels)),
	}
	copy(copied.X, ds.X)
	copy(copied.Labels, ds.Labels)
	return copied
}

// ClassCounts Returns number of samples per class
func (ds *Dataset) ClassCounts() []int {
	counts := make([]int, ds.NumClasses)
	for _, label := range ds.Labels {
		counts[label]++
	}
	return counts
}

// FeaturesTensor Returns feature matrix as tensor of shape (Len(), Dim)
func (ds *Dataset) FeaturesTensor() *tensor.Dense {
	backing := make([]float64, len(ds.X))
	copy(backing, ds.X)
	return tensor.New(tensor.WithShape(ds.Len(), ds.Dim), tensor.WithBacking(backing))
}

// Split Shuffles samples and splits them into train/test parts.
//
// trainRatio - fraction of samples going to the train part, must be in (0;1)
//
func (ds *Dataset) Split(trainRatio float64) (*Dataset, *Dataset, error) {
	if trainRatio <= 0 || trainRatio >= 1 {
		return nil, nil, fmt.Errorf("Train ratio must be in (0;1), but got %f", trainRatio)
	}
	n := ds.Len()
	trainLen := int(float64(n) * trainRatio)
	if trainLen == 0 || trainLen == n {
		return nil, nil, fmt.Errorf("Split of %d samples with ratio %f leaves one part empty", n, trainRatio)
	}
	perm := rand.Perm(n)
	train := &Dataset{Name: ds.Name, Dim: ds.Dim, NumClasses: ds.NumClasses}
	test := &Dataset{Name: ds.Name, Dim: ds.Dim, NumClasses: ds.NumClasses}
	train.X = make([]float64, 0, trainLen*ds.Dim)
	train.Labels = make([]int, 0, trainLen)
	test.X = make([]float64, 0, (n-trainLen)*ds.Dim)
	test.Labels = make([]int, 0, n-trainLen)
	for i, idx := range perm {
		if i < trainLen {
			train.X = append(train.X, ds.Row(idx)...)
			train.Labels = append(train.Labels, ds.Labels[idx])
		} else {
			test.X = append(test.X, ds.Row(idx)...)
			test.Labels = append(test.Labels, ds.Labels[idx])
		}
	}
	return train, test, nil
}

// Moons Two interleaved half circles ('make_moons' of scikit-learn).
//
// n - total number of samples (must be even)
// noise - standard deviation of gaussian noise added to the points
//
func Moons(n int, noise float64) (*Dataset, error) {
	if n < 2 || n%2 != 0 {
		return nil, fmt.Errorf("Number of samples must be positive and even, but got %d", n)
	}
	ds := &Dataset{
		Name:       "moons",
		Dim:        2,
		NumClasses: 2,
		X:          make([]float64, 0, n*2),
		Labels:     make([]int, 0, n),
	}
	half := n / 2
	for i := 0; i < half; i++ {
		angle := math.Pi * rand.Float64()
		// Outer moon
		ds.X = append(ds.X, math.Cos(angle)+noise*rand.NormFloat64(), math.Sin(angle)+noise*rand.NormFloat64())
		ds.Labels = append(ds.Labels, 0)
		// Inner moon is outer one mirrored and shifted down by half of radius
		angle = math.Pi * rand.Float64()
		ds.X = append(ds.X, 1.0-math.Cos(angle)+noise*rand.NormFloat64(), 0.5-math.Sin(angle)+noise*rand.NormFloat64())
		ds.Labels = append(ds.Labels, 1)
	}
	return ds, nil
}

// Circles Two concentric circles ('make_circles' of scikit-learn).
//
// n - total number of samples (must be even)
// noise - standard deviation of gaussian noise added to the points
// factor - radius of inner circle relative to outer one, must be in (0;1)
//
func Circles(n int, noise, factor float64) (*Dataset, error) {
	if n < 2 || n%2 != 0 {
		return nil, fmt.Errorf("Number of samples must be positive and even, but got %d", n)
	}
	if factor <= 0 || factor >= 1 {
		return nil, fmt.Errorf("Inner circle factor must be in (0;1), but got %f", factor)
	}
	ds := &Dataset{
		Name:       "circles",
		Dim:        2,
		NumClasses: 2,
		X:          make([]float64, 0, n*2),
		Labels:     make([]int, 0, n),
	}
	half := n / 2
	for i := 0; i < half; i++ {
		angle := 2 * math.Pi * rand.Float64()
		ds.X = append(ds.X, math.Cos(angle)+noise*rand.NormFloat64(), math.Sin(angle)+noise*rand.NormFloat64())
		ds.Labels = append(ds.Labels, 0)
		angle = 2 * math.Pi * rand.Float64()
		ds.X = append(ds.X, factor*math.Cos(angle)+noise*rand.NormFloat64(), factor*math.Sin(angle)+noise*rand.NormFloat64())
		ds.Labels = append(ds.Labels, 1)
	}
	return ds, nil
}

// Blobs Isotropic gaussian clusters, one class per center ('make_blobs' of scikit-learn).
//
// n - total number of samples (must be multiple of number of centers)
// centers - cluster centers, each one defines a class
// stddev - standard deviation of clusters
//
func Blobs(n int, centers [][]float64, stddev float64) (*Dataset, error) {
	if len(centers) < 2 {
		return nil, fmt.Errorf("Blobs must have two centers atleast, but got %d", len(centers))
	}
	dim := len(centers[0])
	for i, c := range centers {
		if len(c) != dim {
			return nil, fmt.Errorf("Center #%d has %d coordinates, but center #0 has %d", i, len(c), dim)
		}
	}
	if n < len(centers) || n%len(centers) != 0 {
		return nil, fmt.Errorf("Number of samples must be multiple of number of centers, but got %d samples for %d centers", n, len(centers))
	}
	ds := &Dataset{
		Name:       "blobs",
		Dim:        dim,
		NumClasses: len(centers),
		X:          make([]float64, 0, n*dim),
		Labels:     make([]int, 0, n),
	}
	perCenter := n / len(centers)
	for i := 0; i < perCenter; i++ {
		for label, center := range centers {
			for _, coord := range center {
				ds.X = append(ds.X, coord+stddev*rand.NormFloat64())
			}
			ds.Labels = append(ds.Labels, label)
		}
	}
	return ds, nil
}

// XORSquares Four quadrants of [-1;1]^2 with XOR labeling: quadrants I and III belong to one class, II and IV to another.
//
// n - total number of samples (must be multiple of 4)
// noise - standard deviation of gaussian jitter applied to the points
//
func XORSquares(n int, noise float64) (*Dataset, error) {
	if n < 4 || n%4 != 0 {
		return nil, fmt.Errorf("Number of samples must be positive and multiple of 4, but got %d", n)
	}
	ds := &Dataset{
		Name:       "xor",
		Dim:        2,
		NumClasses: 2,
		X:          make([]float64, 0, n*2),
		Labels:     make([]int, 0, n),
	}
	signs := [4][2]float64{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}}
	for i := 0; i < n; i++ {
		quadrant := i % 4
		x := signs[quadrant][0]*rand.Float64() + noise*rand.NormFloat64()
		y := signs[quadrant][1]*rand.Float64() + noise*rand.NormFloat64()
		ds.X = append(ds.X, x, y)
		// Quadrants with positive coordinate product share the class
		if quadrant%2 == 0 {
			ds.Labels = append(ds.Labels, 0)
		} else {
			ds.Labels = append(ds.Labels, 1)
		}
	}
	return ds, nil
}

// Spirals Two interleaved Archimedean spirals.
//
// n - total number of samples (must be even)
// noise - standard deviation of gaussian noise added to the points
//
func Spirals(n int, noise float64) (*Dataset, error) {
	if n < 2 || n%2 != 0 {
		return nil, fmt.Errorf("Number of samples must be positive and even, but got %d", n)
	}
	ds := &Dataset{
		Name:       "spirals",
		Dim:        2,
		NumClasses: 2,
		X:          make([]float64, 0, n*2),
		Labels:     make([]int, 0, n),
	}
	half := n / 2
	for i := 0; i < half; i++ {
		t := 3 * math.Pi * rand.Float64()
		r := t / (3 * math.Pi)
		ds.X = append(ds.X, r*math.Sin(t)+noise*rand.NormFloat64(), r*math.Cos(t)+noise*rand.NormFloat64())
		ds.Labels = append(ds.Labels, 0)
		t = 3 * math.Pi * rand.Float64()
		r = t / (3 * math.Pi)
		ds.X = append(ds.X, -r*math.Sin(t)+noise*rand.NormFloat64(), -r*math.Cos(t)+noise*rand.NormFloat64())
		ds.Labels = append(ds.Labels, 1)
	}
	return ds, nil
}
