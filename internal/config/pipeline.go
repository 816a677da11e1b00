// Package config loads the feature pipeline configuration from JSON.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/motion.report/internal/motion/pipeline"
)

// DefaultConfigPath is the path to the canonical pipeline defaults file.
// This is the single source of truth for all default pipeline values.
const DefaultConfigPath = "config/pipeline.defaults.json"

// PipelineConfig is the on-disk form of pipeline.Params. Every field is
// optional; omitted fields fall back to the Get* defaults, so partial
// configs are safe.
type PipelineConfig struct {
	// Sampling
	SamplingRateHz *float64 `json:"sampling_rate_hz,omitempty"`
	WindowSize     *int     `json:"window_size,omitempty"`
	SlideSize      *int     `json:"slide_size,omitempty"`

	// Filters
	ButterworthCutoffHz *float64 `json:"butterworth_cutoff_hz,omitempty"`
	GravityCutoffHz     *float64 `json:"gravity_cutoff_hz,omitempty"`

	// Features. ar_order and frequency_band_count are fixed by the
	// feature schema and only accepted at their schema values.
	AROrder            *int `json:"ar_order,omitempty"`
	HistogramBins      *int `json:"histogram_bins,omitempty"`
	FrequencyBandCount *int `json:"frequency_band_count,omitempty"`

	// Batch
	Workers *int `json:"workers,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }

// DefaultPipelineConfig returns a config with every field set to the
// stock value.
func DefaultPipelineConfig() *PipelineConfig {
	d := pipeline.DefaultParams()
	return &PipelineConfig{
		SamplingRateHz:      ptrFloat64(d.SamplingRateHz),
		WindowSize:          ptrInt(d.WindowSize),
		SlideSize:           ptrInt(d.SlideSize),
		ButterworthCutoffHz: ptrFloat64(d.ButterworthCutoffHz),
		GravityCutoffHz:     ptrFloat64(d.GravityCutoffHz),
		AROrder:             ptrInt(d.AROrder),
		HistogramBins:       ptrInt(d.HistogramBins),
		FrequencyBandCount:  ptrInt(d.FrequencyBandCount),
		Workers:             ptrInt(d.Workers),
	}
}

// LoadPipelineConfig loads a PipelineConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
func LoadPipelineConfig(path string) (*PipelineConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &PipelineConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath from the current
// directory or one of its parents. Panics if the file cannot be loaded,
// intended for test setup.
func MustLoadDefaultConfig() *PipelineConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,          // from cmd/motion/
		"../../" + DefaultConfigPath,       // from internal/config/
		"../../../" + DefaultConfigPath,    // from internal/motion/pipeline/
		"../../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadPipelineConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate resolves the config against the defaults and checks the
// result.
func (c *PipelineConfig) Validate() error {
	return c.Params().Validate()
}

// Params resolves the config into pipeline parameters.
func (c *PipelineConfig) Params() pipeline.Params {
	return pipeline.Params{
		SamplingRateHz:      c.GetSamplingRateHz(),
		WindowSize:          c.GetWindowSize(),
		SlideSize:           c.GetSlideSize(),
		ButterworthCutoffHz: c.GetButterworthCutoffHz(),
		GravityCutoffHz:     c.GetGravityCutoffHz(),
		AROrder:             c.GetAROrder(),
		HistogramBins:       c.GetHistogramBins(),
		FrequencyBandCount:  c.GetFrequencyBandCount(),
		Workers:             c.GetWorkers(),
	}
}

// GetSamplingRateHz returns the sampling_rate_hz value or the default.
func (c *PipelineConfig) GetSamplingRateHz() float64 {
	if c.SamplingRateHz == nil {
		return pipeline.DefaultParams().SamplingRateHz
	}
	return *c.SamplingRateHz
}

// GetWindowSize returns the window_size value or the default.
func (c *PipelineConfig) GetWindowSize() int {
	if c.WindowSize == nil {
		return pipeline.DefaultParams().WindowSize
	}
	return *c.WindowSize
}

// GetSlideSize returns the slide_size value or the default.
func (c *PipelineConfig) GetSlideSize() int {
	if c.SlideSize == nil {
		return pipeline.DefaultParams().SlideSize
	}
	return *c.SlideSize
}

// GetButterworthCutoffHz returns the butterworth_cutoff_hz value or the default.
func (c *PipelineConfig) GetButterworthCutoffHz() float64 {
	if c.ButterworthCutoffHz == nil {
		return pipeline.DefaultParams().ButterworthCutoffHz
	}
	return *c.ButterworthCutoffHz
}

// GetGravityCutoffHz returns the gravity_cutoff_hz value or the default.
func (c *PipelineConfig) GetGravityCutoffHz() float64 {
	if c.GravityCutoffHz == nil {
		return pipeline.DefaultParams().GravityCutoffHz
	}
	return *c.GravityCutoffHz
}

// GetAROrder returns the ar_order value or the default.
func (c *PipelineConfig) GetAROrder() int {
	if c.AROrder == nil {
		return pipeline.DefaultParams().AROrder
	}
	return *c.AROrder
}

// GetHistogramBins returns the histogram_bins value or the default.
func (c *PipelineConfig) GetHistogramBins() int {
	if c.HistogramBins == nil {
		return pipeline.DefaultParams().HistogramBins
	}
	return *c.HistogramBins
}

// GetFrequencyBandCount returns the frequency_band_count value or the default.
func (c *PipelineConfig) GetFrequencyBandCount() int {
	if c.FrequencyBandCount == nil {
		return pipeline.DefaultParams().FrequencyBandCount
	}
	return *c.FrequencyBandCount
}

// GetWorkers returns the workers value or the default (0, one per CPU).
func (c *PipelineConfig) GetWorkers() int {
	if c.Workers == nil {
		return 0
	}
	return *c.Workers
}
