package mlp_go

import (
	"fmt"
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	classPalette = []color.RGBA{
		{R: 255, B: 128, A: 255},
		{B: 255, G: 128, A: 255},
		{G: 180, A: 255},
		{R: 255, G: 165, A: 255},
		{R: 128, B: 255, A: 255},
		{R: 64, G: 64, B: 64, A: 255},
	}
	// Same palette but washed out. Used for decision regions underlay.
	classPaletteLight = []color.RGBA{
		{R: 100, G: 60, B: 90, A: 100},
		{R: 60, B: 100, G: 85, A: 100},
		{R: 60, G: 100, B: 60, A: 100},
		{R: 100, G: 90, B: 40, A: 100},
		{R: 85, G: 60, B: 100, A: 100},
		{R: 75, G: 75, B: 75, A: 100},
	}
)

// PlotDataset Plot scatter chart of 2-D dataset with per-class colors
func PlotDataset(ds *Dataset, fname string) error {
	if ds.Dim != 2 {
		return fmt.Errorf("Dataset must have two columns to be plotted, but got %d", ds.Dim)
	}
	if ds.NumClasses > len(classPalette) {
		return fmt.Errorf("Palette covers %d classes, but dataset has %d", len(classPalette), ds.NumClasses)
	}
	p := plot.New()
	p.Title.Text = ds.Name
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	p.Add(plotter.NewGrid())
	if err := addClassScatters(p, ds, classPalette, true); err != nil {
		return err
	}
	if err := p.Save(4*vg.Inch, 4*vg.Inch, fname); err != nil {
		return errors.Wrap(err, "Can't save plot")
	}
	return nil
}

// PlotAccuracyCurves Plot train/test accuracy against epoch number
func PlotAccuracyCurves(title string, history History, fname string) error {
	if len(history) == 0 {
		return fmt.Errorf("History is empty, nothing to plot")
	}
	trainXYs := make(plotter.XYs, len(history))
	testXYs := make(plotter.XYs, len(history))
	for i, stats := range history {
		trainXYs[i].X = float64(stats.Epoch)
		trainXYs[i].Y = stats.TrainAccuracy
		testXYs[i].X = float64(stats.Epoch)
		testXYs[i].Y = stats.TestAccuracy
	}
	trainLine, err := plotter.NewLine(trainXYs)
	if err != nil {
		return errors.Wrap(err, "Can't init line for train accuracy")
	}
	trainLine.LineStyle.Color = classPalette[0]
	trainLine.LineStyle.Width = vg.Points(1.5)
	testLine, err := plotter.NewLine(testXYs)
	if err != nil {
		return errors.Wrap(err, "Can't init line for test accuracy")
	}
	testLine.LineStyle.Color = classPalette[1]
	testLine.LineStyle.Width = vg.Points(1.5)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "Accuracy"
	p.Add(plotter.NewGrid())
	p.Add(trainLine)
	p.Add(testLine)
	p.Y.Max = 1.0
	p.Legend.Add("train", trainLine)
	p.Legend.Add("test", testLine)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, fname); err != nil {
		return errors.Wrap(err, "Can't save plot")
	}
	return nil
}

// PlotDecisionBoundary Classify dense grid covering the dataset and draw predicted
// regions under the data points.
//
// gridSteps - number of grid cells along each axis
//
func PlotDecisionBoundary(c *Classifier, ds *Dataset, gridSteps int, fname string) error {
	if ds.Dim != 2 {
		return fmt.Errorf("Dataset must have two columns to be plotted, but got %d", ds.Dim)
	}
	if gridSteps < 2 {
		return fmt.Errorf("Grid must have two steps per axis atleast, but got %d", gridSteps)
	}
	if ds.NumClasses > len(classPalette) {
		return fmt.Errorf("Palette covers %d classes, but dataset has %d", len(classPalette), ds.NumClasses)
	}

	minX, maxX := ds.X[0], ds.X[0]
	minY, maxY := ds.X[1], ds.X[1]
	for i := 0; i < ds.Len(); i++ {
		row := ds.Row(i)
		if row[0] < minX {
			minX = row[0]
		}
		if row[0] > maxX {
			maxX = row[0]
		}
		if row[1] < minY {
			minY = row[1]
		}
		if row[1] > maxY {
			maxY = row[1]
		}
	}
	marginX := 0.1 * (maxX - minX)
	marginY := 0.1 * (maxY - minY)
	minX, maxX = minX-marginX, maxX+marginX
	minY, maxY = minY-marginY, maxY+marginY

	gridFeatures := make([]float64, 0, gridSteps*gridSteps*2)
	stepX := (maxX - minX) / float64(gridSteps-1)
	stepY := (maxY - minY) / float64(gridSteps-1)
	for i := 0; i < gridSteps; i++ {
		for j := 0; j < gridSteps; j++ {
			gridFeatures = append(gridFeatures, minX+float64(i)*stepX, minY+float64(j)*stepY)
		}
	}
	gridClasses, err := c.Predict(gridFeatures)
	if err != nil {
		return errors.Wrap(err, "Can't classify grid")
	}
	grid := &Dataset{
		Name:       ds.Name + "_grid",
		Dim:        2,
		NumClasses: ds.NumClasses,
		X:          gridFeatures,
		Labels:     gridClasses,
	}

	p := plot.New()
	p.Title.Text = ds.Name + " decision boundary"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	if err := addClassScatters(p, grid, classPaletteLight, false); err != nil {
		return err
	}
	if err := addClassScatters(p, ds, classPalette, true); err != nil {
		return err
	}
	if err := p.Save(4*vg.Inch, 4*vg.Inch, fname); err != nil {
		return errors.Wrap(err, "Can't save plot")
	}
	return nil
}

func addClassScatters(p *plot.Plot, ds *Dataset, palette []color.RGBA, legend bool) error {
	for class := 0; class < ds.NumClasses; class++ {
		scatterData := make(plotter.XYs, 0, ds.Len())
		for i := 0; i < ds.Len(); i++ {
			if ds.Labels[i] != class {
				continue
			}
			row := ds.Row(i)
			scatterData = append(scatterData, plotter.XY{X: row[0], Y: row[1]})
		}
		if len(scatterData) == 0 {
			continue
		}
		scatter, err := plotter.NewScatter(scatterData)
		if err != nil {
			return errors.Wrap(err, fmt.Sprintf("Can't init scatter for class %d", class))
		}
		scatter.GlyphStyle.Color = palette[class]
		scatter.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(scatter)
		if legend {
			p.Legend.Add(fmt.Sprintf("class %d", class), scatter)
		}
	}
	return nil
}
