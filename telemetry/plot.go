package telemetry

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pthm-cable/feeders/genetics"
)

// PlotFitness draws highest and average fitness per generation and saves the
// chart to path. The image format follows the file extension.
func PlotFitness(records []genetics.GenerationRecord, path string) error {
	p := plot.New()
	p.Title.Text = "Fitness by generation"
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Food eaten"

	best := make(plotter.XYs, len(records))
	avg := make(plotter.XYs, len(records))
	for i, r := range records {
		best[i].X = float64(r.Generation)
		best[i].Y = r.HighestFitness
		avg[i].X = float64(r.Generation)
		avg[i].Y = r.AverageFitness
	}

	bestLine, err := plotter.NewLine(best)
	if err != nil {
		return fmt.Errorf("building highest fitness line: %w", err)
	}
	avgLine, err := plotter.NewLine(avg)
	if err != nil {
		return fmt.Errorf("building average fitness line: %w", err)
	}
	avgLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(bestLine, avgLine)
	p.Legend.Add("highest", bestLine)
	p.Legend.Add("average", avgLine)
	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving fitness plot: %w", err)
	}
	return nil
}
