package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/banshee-data/motion.report/internal/ingest"
	"github.com/banshee-data/motion.report/internal/motion"
)

func runCapture(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("capture", flag.ContinueOnError)
	port := fs.String("port", "/dev/ttyUSB0", "serial device of the IMU")
	baud := fs.Int("baud", ingest.DefaultBaudRate, "baud rate")
	parity := fs.String("parity", "N", "parity: N, E or O")
	samples := fs.Int("samples", 3000, "number of samples to record")
	accOut := fs.String("acc-out", "acc.csv", "accelerometer CSV output path")
	gyroOut := fs.String("gyro-out", "gyro.csv", "gyroscope CSV output path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *accOut == "-" || *gyroOut == "-" {
		return fmt.Errorf("capture writes two files; -acc-out and -gyro-out must be paths")
	}

	p, err := ingest.OpenSerial(*port, ingest.PortOptions{BaudRate: *baud, Parity: *parity})
	if err != nil {
		return err
	}
	defer p.Close()

	logf("capturing %d samples from %s", *samples, *port)
	return capture(ctx, p, *samples, *accOut, *gyroOut)
}

// capture records n samples from r and writes both sensor files. An
// interrupted capture still writes what was read.
func capture(ctx context.Context, r io.Reader, n int, accOut, gyroOut string) error {
	c, err := ingest.CaptureSerial(ctx, r, n)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if len(c.Acc) == 0 {
		return fmt.Errorf("no samples captured")
	}
	logf("captured %d samples, skipped %d lines", len(c.Acc), c.Skipped)

	for path, samples := range map[string][]motion.Sample{accOut: c.Acc, gyroOut: c.Gyro} {
		if err := writeOutput(path, nil, func(w io.Writer) error {
			return ingest.WriteSamplesCSV(w, samples)
		}); err != nil {
			return err
		}
	}
	return nil
}
