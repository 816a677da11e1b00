package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/banshee-data/motion.report/internal/config"
	"github.com/banshee-data/motion.report/internal/db"
	"github.com/banshee-data/motion.report/internal/export"
	"github.com/banshee-data/motion.report/internal/ingest"
	"github.com/banshee-data/motion.report/internal/motion"
	"github.com/banshee-data/motion.report/internal/motion/pipeline"
	"github.com/banshee-data/motion.report/internal/report"
	"github.com/banshee-data/motion.report/internal/version"
)

type extractFlags struct {
	acc, gyro  string
	configPath string
	out        string
	dbPath     string
	plotDir    string
	chartPath  string
	raw        bool
}

func parseExtractFlags(args []string) (extractFlags, error) {
	var f extractFlags
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	fs.StringVar(&f.acc, "acc", "", "accelerometer CSV (timestamp_ms,x,y,z)")
	fs.StringVar(&f.gyro, "gyro", "", "gyroscope CSV (timestamp_ms,x,y,z)")
	fs.StringVar(&f.configPath, "config", "", "pipeline config JSON (defaults when empty)")
	fs.StringVar(&f.out, "out", "-", "feature CSV output path, - for stdout")
	fs.StringVar(&f.dbPath, "db", "", "sqlite database to store the run in")
	fs.StringVar(&f.plotDir, "plot", "", "directory for PNG plots of the first window")
	fs.StringVar(&f.chartPath, "chart", "", "HTML feature chart output path")
	fs.BoolVar(&f.raw, "raw", false, "write raw features instead of normalised ones")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if f.acc == "" || f.gyro == "" {
		return f, fmt.Errorf("-acc and -gyro are required")
	}
	return f, nil
}

func loadParams(path string) (pipeline.Params, error) {
	if path == "" {
		return config.DefaultPipelineConfig().Params(), nil
	}
	cfg, err := config.LoadPipelineConfig(path)
	if err != nil {
		return pipeline.Params{}, err
	}
	return cfg.Params(), nil
}

func runExtract(ctx context.Context, args []string, stdout io.Writer) error {
	f, err := parseExtractFlags(args)
	if err != nil {
		return err
	}
	params, err := loadParams(f.configPath)
	if err != nil {
		return err
	}
	e, err := pipeline.New(params)
	if err != nil {
		return err
	}

	acc, err := ingest.ReadSamplesFile(f.acc)
	if err != nil {
		return err
	}
	gyro, err := ingest.ReadSamplesFile(f.gyro)
	if err != nil {
		return err
	}
	logf("read %d accelerometer and %d gyroscope samples", len(acc), len(gyro))

	res, err := e.Run(ctx, acc, gyro, !f.raw)
	if err != nil {
		return err
	}
	logf("extracted %d windows, dropped %d", len(res.Rows), len(res.Dropped))

	rows := res.Normalized
	if f.raw {
		rows = res.Rows
	}
	if err := writeOutput(f.out, stdout, func(w io.Writer) error {
		return export.WriteFeatureCSV(w, res.Windows, rows)
	}); err != nil {
		return err
	}

	if f.dbPath != "" {
		if err := storeRun(ctx, f, params, res); err != nil {
			return err
		}
	}
	if f.plotDir != "" {
		if err := plotFirstWindow(e, f.plotDir, acc, gyro); err != nil {
			return err
		}
	}
	if f.chartPath != "" {
		title := fmt.Sprintf("%s + %s", f.acc, f.gyro)
		if err := writeOutput(f.chartPath, stdout, func(w io.Writer) error {
			return report.RenderFeatureChart(w, title, res.Windows, rows, report.DefaultChartKeys)
		}); err != nil {
			return err
		}
	}
	return nil
}

func storeRun(ctx context.Context, f extractFlags, params pipeline.Params, res pipeline.Result) error {
	store, err := db.Open(f.dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	r := &db.Run{
		AppVersion: version.Version,
		Source:     strings.Join([]string{f.acc, f.gyro}, ","),
		Params:     params,
	}
	if err := store.SaveResult(ctx, r, res); err != nil {
		return err
	}
	logf("stored run %s in %s", r.ID, f.dbPath)
	return nil
}

func plotFirstWindow(e *pipeline.Extractor, dir string, acc, gyro []motion.Sample) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	accWin, err := e.Windower().Slice(acc, 1)
	if err != nil {
		return err
	}
	gyroWin, err := e.Windower().Slice(gyro, 1)
	if err != nil {
		return err
	}
	c, err := e.Condition(accWin[0], gyroWin[0])
	if err != nil {
		return err
	}
	rate := e.Params().SamplingRateHz
	for name, s := range map[string]pipeline.SensorSignal{"acc": c.Acc, "gyro": c.Gyro} {
		paths, err := report.PlotConditioned(dir, name, s, rate)
		if err != nil {
			return err
		}
		logf("wrote %s", strings.Join(paths, ", "))
	}
	return nil
}

// writeOutput runs write against path, or against stdout when path is "-".
func writeOutput(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "-" {
		return write(stdout)
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
