package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/motion.report/internal/motion/features"
)

// DefaultChartKeys is a small overview set: gravity orientation, body
// intensity and the dominant frequency of the body signal.
var DefaultChartKeys = []string{
	"tGravityAcc-mean()-z",
	"tBodyAccMag-mean()",
	"tBodyGyroMag-mean()",
	"fBodyAcc-meanFreq()-z",
}

// RenderFeatureChart writes an HTML line chart with one series per key
// and one point per row. windows labels the x axis; nil numbers rows from 0.
func RenderFeatureChart(w io.Writer, title string, windows []int, rows features.Table, keys []string) error {
	if windows != nil && len(windows) != len(rows) {
		return fmt.Errorf("have %d window indexes for %d rows", len(windows), len(rows))
	}
	cols := make([]int, len(keys))
	for i, k := range keys {
		idx, ok := features.Index(k)
		if !ok {
			return fmt.Errorf("unknown feature key %q", k)
		}
		cols[i] = idx
	}

	labels := make([]string, len(rows))
	for i := range rows {
		n := i
		if windows != nil {
			n = windows[i]
		}
		labels[i] = strconv.Itoa(n)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "100%", Height: "640px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("schema=%s windows=%d", features.SchemaVersion, len(rows))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Window", NameLocation: "middle", NameGap: 25}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	line.SetXAxis(labels)
	for i, k := range keys {
		data := make([]opts.LineData, len(rows))
		for r, row := range rows {
			data[r] = opts.LineData{Value: row[cols[i]]}
		}
		line.AddSeries(k, data)
	}
	return line.Render(w)
}
