// Package report renders diagnostics for a feature run: PNG plots of a
// conditioned window and HTML charts of feature columns across windows.
package report

import (
	"fmt"
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/motion.report/internal/motion"
	"github.com/banshee-data/motion.report/internal/motion/pipeline"
)

var axisColors = [3]color.Color{
	color.RGBA{R: 214, G: 39, B: 40, A: 255},
	color.RGBA{R: 44, G: 160, B: 44, A: 255},
	color.RGBA{R: 31, G: 119, B: 180, A: 255},
}

// PlotConditioned writes one PNG per component (body, gravity, jerk) of a
// conditioned sensor window into dir, named <name>_<component>.png, and
// returns the paths written. name is reduced to file-name-safe characters.
func PlotConditioned(dir, name string, s pipeline.SensorSignal, rateHz float64) ([]string, error) {
	name = plotName(name)
	components := []struct {
		label string
		axes  motion.Triple
	}{
		{"body", s.Body},
		{"gravity", s.Gravity},
		{"jerk", s.Jerk},
	}

	var paths []string
	for _, c := range components {
		p, err := tripleplot(fmt.Sprintf("%s %s", name, c.label), c.axes, rateHz)
		if err != nil {
			return paths, fmt.Errorf("%s: %w", c.label, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", name, c.label))
		if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
			return paths, fmt.Errorf("failed to save %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func tripleplot(title string, t motion.Triple, rateHz float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Value"
	p.Legend.Top = true

	for a, series := range t {
		if len(series) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(series))
		for i, v := range series {
			pts[i] = plotter.XY{X: float64(i) / rateHz, Y: v}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = axisColors[a]
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(motion.Axes[a].String(), line)
	}
	return p, nil
}
