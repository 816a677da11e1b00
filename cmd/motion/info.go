package main

import (
	"fmt"
	"io"

	"github.com/banshee-data/motion.report/internal/motion/features"
	"github.com/banshee-data/motion.report/internal/version"
)

func runKeys(stdout io.Writer) error {
	for i, k := range features.Keys() {
		if _, err := fmt.Fprintf(stdout, "%d %s\n", i+1, k); err != nil {
			return err
		}
	}
	return nil
}

func runVersion(stdout io.Writer) error {
	_, err := fmt.Fprintf(stdout, "motion %s\nfeature schema %s (%d features)\n",
		version.String(), features.SchemaVersion, features.NumFeatures)
	return err
}
