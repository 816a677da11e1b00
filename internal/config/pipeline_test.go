package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/banshee-data/motion.report/internal/motion/pipeline"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestDefaultPipelineConfig(t *testing.T) {
	cfg := DefaultPipelineConfig()

	if cfg.SamplingRateHz == nil || *cfg.SamplingRateHz != 50 {
		t.Errorf("Expected SamplingRateHz 50, got %v", cfg.SamplingRateHz)
	}
	if cfg.WindowSize == nil || *cfg.WindowSize != 128 {
		t.Errorf("Expected WindowSize 128, got %v", cfg.WindowSize)
	}
	if cfg.GravityCutoffHz == nil || *cfg.GravityCutoffHz != 0.3 {
		t.Errorf("Expected GravityCutoffHz 0.3, got %v", cfg.GravityCutoffHz)
	}
	if got := cfg.Params(); got != pipeline.DefaultParams() {
		t.Errorf("Params() = %+v, want %+v", got, pipeline.DefaultParams())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestEmptyConfigResolvesToDefaults(t *testing.T) {
	cfg := &PipelineConfig{}
	if got := cfg.Params(); got != pipeline.DefaultParams() {
		t.Errorf("Params() = %+v, want %+v", got, pipeline.DefaultParams())
	}
}

func TestLoadPipelineConfig(t *testing.T) {
	path := writeConfig(t, "test_config.json", `{
  "sampling_rate_hz": 100,
  "window_size": 256,
  "slide_size": 128,
  "butterworth_cutoff_hz": 30,
  "gravity_cutoff_hz": 0.5,
  "histogram_bins": 20,
  "workers": 2
}`)

	cfg, err := LoadPipelineConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	want := pipeline.Params{
		SamplingRateHz:      100,
		WindowSize:          256,
		SlideSize:           128,
		ButterworthCutoffHz: 30,
		GravityCutoffHz:     0.5,
		AROrder:             4,
		HistogramBins:       20,
		FrequencyBandCount:  14,
		Workers:             2,
	}
	if got := cfg.Params(); got != want {
		t.Errorf("Params() = %+v, want %+v", got, want)
	}
}

func TestLoadPipelineConfigPartial(t *testing.T) {
	// Only override the slide; everything else keeps its default.
	path := writeConfig(t, "partial.json", `{"slide_size": 32}`)

	cfg, err := LoadPipelineConfig(path)
	if err != nil {
		t.Fatalf("Failed to load partial config: %v", err)
	}
	if cfg.GetSlideSize() != 32 {
		t.Errorf("Expected overridden SlideSize 32, got %d", cfg.GetSlideSize())
	}
	if cfg.GetWindowSize() != 128 {
		t.Errorf("Expected default WindowSize 128, got %d", cfg.GetWindowSize())
	}
	if cfg.GetButterworthCutoffHz() != 20 {
		t.Errorf("Expected default ButterworthCutoffHz 20, got %f", cfg.GetButterworthCutoffHz())
	}
	if cfg.GetWorkers() != 0 {
		t.Errorf("Expected default Workers 0, got %d", cfg.GetWorkers())
	}
}

func TestLoadPipelineConfigMissing(t *testing.T) {
	_, err := LoadPipelineConfig("/nonexistent/path/to/config.json")
	if err == nil {
		t.Error("Expected error when loading missing file, got nil")
	}
}

func TestLoadPipelineConfigInvalidJSON(t *testing.T) {
	path := writeConfig(t, "invalid_config.json", `{
  "window_size": "wide"
`)
	_, err := LoadPipelineConfig(path)
	if err == nil {
		t.Error("Expected error when loading invalid JSON, got nil")
	}
}

func TestLoadPipelineConfigRejectsNonJSON(t *testing.T) {
	_, err := LoadPipelineConfig("/some/path/config.yaml")
	if err == nil {
		t.Error("Expected error for non-.json extension, got nil")
	}
}

func TestLoadPipelineConfigRejectsLargeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "large.json")
	if err := os.WriteFile(path, make([]byte, 2*1024*1024), 0644); err != nil {
		t.Fatalf("Failed to write large file: %v", err)
	}
	_, err := LoadPipelineConfig(path)
	if err == nil {
		t.Error("Expected error for file size > 1MB, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"empty", `{}`, false},
		{"slide equals window", `{"slide_size": 128}`, false},
		{"zero rate", `{"sampling_rate_hz": 0}`, true},
		{"negative rate", `{"sampling_rate_hz": -50}`, true},
		{"odd window", `{"window_size": 127}`, true},
		{"slide beyond window", `{"slide_size": 200}`, true},
		{"cutoff above nyquist", `{"butterworth_cutoff_hz": 30}`, true},
		{"gravity above noise", `{"gravity_cutoff_hz": 25}`, true},
		{"ar order fixed by schema", `{"ar_order": 6}`, true},
		{"band count fixed by schema", `{"frequency_band_count": 16}`, true},
		{"one histogram bin", `{"histogram_bins": 1}`, true},
		{"negative workers", `{"workers": -2}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPipelineConfig(writeConfig(t, "c.json", tt.body))
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadPipelineConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaultConfigFile(t *testing.T) {
	cfg, err := LoadPipelineConfig("../../config/pipeline.defaults.json")
	if err != nil {
		t.Fatalf("Failed to load defaults: %v", err)
	}
	// The defaults file and DefaultParams must not drift apart.
	if got := cfg.Params(); got != pipeline.DefaultParams() {
		t.Errorf("defaults file = %+v, DefaultParams = %+v", got, pipeline.DefaultParams())
	}
}

func TestLoadExampleConfigFile(t *testing.T) {
	cfg, err := LoadPipelineConfig("../../config/pipeline.example.json")
	if err != nil {
		t.Fatalf("Failed to load example: %v", err)
	}
	if cfg.GetSamplingRateHz() != 100 {
		t.Errorf("Expected 100, got %f", cfg.GetSamplingRateHz())
	}
	if cfg.GetGravityCutoffHz() != 0.3 {
		t.Errorf("Expected default gravity cutoff 0.3, got %f", cfg.GetGravityCutoffHz())
	}
}

func TestMustLoadDefaultConfig(t *testing.T) {
	cfg := MustLoadDefaultConfig()
	if cfg.GetWindowSize() != 128 {
		t.Errorf("Expected 128, got %d", cfg.GetWindowSize())
	}
}
