// Command motion turns accelerometer and gyroscope recordings into
// 561-column HAR feature tables.
//
//	motion extract -acc acc.csv -gyro gyro.csv -out features.csv
//	motion capture -port /dev/ttyUSB0 -samples 3000 -acc-out acc.csv -gyro-out gyro.csv
//	motion runs -db runs.db
//	motion export -db runs.db -run <id> -out features.csv
//	motion keys
//	motion version
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/motion.report/internal/monitoring"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("motion: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) < 1 {
		printUsage(stdout)
		return fmt.Errorf("missing command")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "extract":
		return runExtract(ctx, rest, stdout)
	case "capture":
		return runCapture(ctx, rest)
	case "runs":
		return runRuns(ctx, rest, stdout)
	case "export":
		return runExport(ctx, rest, stdout)
	case "keys":
		return runKeys(stdout)
	case "version":
		return runVersion(stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		printUsage(stdout)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `usage: motion <command> [flags]

commands:
  extract   window, condition and extract features from two CSV streams
  capture   record six-axis IMU lines from a serial port into CSV
  runs      list runs stored in a database
  export    write a stored run as a feature CSV
  keys      print the canonical feature keys
  version   print build information
`)
}

// logf is the CLI's progress logger.
func logf(format string, v ...interface{}) {
	monitoring.Logf(format, v...)
}
