package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.bug.st/serial"

	"github.com/banshee-data/motion.report/internal/monitoring"
	"github.com/banshee-data/motion.report/internal/motion"
)

// imuFields is the field count of a capture line:
// timestamp_ms,ax,ay,az,gx,gy,gz.
const imuFields = 7

// Capture holds paired accelerometer and gyroscope samples read from one
// six-axis stream. Acc and Gyro always have the same length and share
// timestamps.
type Capture struct {
	Acc  []motion.Sample
	Gyro []motion.Sample
	// Skipped counts lines that could not be parsed.
	Skipped int
}

// OpenSerial opens the serial device at path.
func OpenSerial(path string, opts PortOptions) (serial.Port, error) {
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, err
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return port, nil
}

// CaptureSerial reads capture lines from r until n samples are collected,
// r is exhausted, or ctx is done. Unparseable lines (boot banners, partial
// lines after connecting mid-stream) are skipped and counted. On
// cancellation the samples read so far are returned along with ctx.Err().
func CaptureSerial(ctx context.Context, r io.Reader, n int) (Capture, error) {
	if n <= 0 {
		return Capture{}, fmt.Errorf("sample count must be positive, got %d", n)
	}
	scan := bufio.NewScanner(r)

	// Stops the reader goroutine once enough samples are in.
	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	lineChan := make(chan string)
	scanErrChan := make(chan error, 1)

	// The scanner blocks on the port, so it runs on its own goroutine and
	// the loop below stays responsive to ctx.
	go func() {
		defer close(lineChan)
		for scan.Scan() {
			select {
			case lineChan <- scan.Text():
			case <-readCtx.Done():
				return
			}
		}
		if err := scan.Err(); err != nil {
			scanErrChan <- err
		}
	}()

	logf := monitoring.Prefixed("capture")
	var c Capture
	for len(c.Acc) < n {
		select {
		case <-ctx.Done():
			return c, ctx.Err()

		case err := <-scanErrChan:
			return c, err

		case line, ok := <-lineChan:
			if !ok {
				// The reader sends its error before closing lineChan.
				select {
				case err := <-scanErrChan:
					return c, err
				default:
					return c, nil
				}
			}
			acc, gyro, err := ParseIMULine(line)
			if err != nil {
				c.Skipped++
				logf("skipping line %q: %v", line, err)
				continue
			}
			c.Acc = append(c.Acc, acc)
			c.Gyro = append(c.Gyro, gyro)
		}
	}
	return c, nil
}

// ParseIMULine splits one timestamp_ms,ax,ay,az,gx,gy,gz line into an
// accelerometer and a gyroscope sample.
func ParseIMULine(line string) (acc, gyro motion.Sample, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return acc, gyro, fmt.Errorf("no data")
	}
	fields := strings.Split(line, ",")
	if len(fields) != imuFields {
		return acc, gyro, fmt.Errorf("have %d fields, want %d", len(fields), imuFields)
	}
	acc, err = parseSample(fields[:4])
	if err != nil {
		return acc, gyro, fmt.Errorf("accelerometer: %w", err)
	}
	gyroFields := append([]string{fields[0]}, fields[4:]...)
	gyro, err = parseSample(gyroFields)
	if err != nil {
		return acc, gyro, fmt.Errorf("gyroscope: %w", err)
	}
	return acc, gyro, nil
}
