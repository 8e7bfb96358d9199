package scan

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the analysis parameters and artifact locations of a run.
type Config struct {
	OutlierThreshold float64 `yaml:"outlierThreshold" json:"outlierThreshold"`
	NeighborWindow   int     `yaml:"neighborWindow" json:"neighborWindow"`
	SectorCount      int     `yaml:"sectorCount" json:"sectorCount"`
	ResultTable      string  `yaml:"resultTable" json:"resultTable"`

	Output OutputConfig `yaml:"output,omitempty" json:"output,omitempty"`
}

// OutputConfig selects the optional visual artifacts written after a run.
type OutputConfig struct {
	Dir     string `yaml:"dir,omitempty" json:"dir,omitempty"`
	Render  string `yaml:"render,omitempty" json:"render,omitempty"` // "none", "raster", "vector" or "both"
	Vector  string `yaml:"vectorFormat,omitempty" json:"vectorFormat,omitempty"`
	Charts  bool   `yaml:"charts,omitempty" json:"charts,omitempty"`
	GeoJSON bool   `yaml:"geojson,omitempty" json:"geojson,omitempty"`
}

// DefaultConfig returns the documented defaults: threshold 3.0, window 10,
// 360 sectors and the table written to result.csv.
func DefaultConfig() Config {
	return Config{
		OutlierThreshold: DefaultOutlierThreshold,
		NeighborWindow:   DefaultNeighborWindow,
		SectorCount:      DefaultSectorCount,
		ResultTable:      DefaultTablePath,
		Output: OutputConfig{
			Dir:    ".",
			Render: "none",
			Vector: "svg",
		},
	}
}

// Validate checks that every parameter is usable.
func (c Config) Validate() error {
	if math.IsNaN(c.OutlierThreshold) || c.OutlierThreshold <= 0 {
		return fmt.Errorf("outlierThreshold must be > 0, got %v: %w", c.OutlierThreshold, ErrInvalidConfig)
	}
	if c.NeighborWindow < 1 {
		return fmt.Errorf("neighborWindow must be >= 1, got %d: %w", c.NeighborWindow, ErrInvalidConfig)
	}
	if c.SectorCount < 1 {
		return fmt.Errorf("sectorCount must be >= 1, got %d: %w", c.SectorCount, ErrInvalidConfig)
	}
	switch c.Output.Render {
	case "", "none", "raster", "vector", "both":
	default:
		return fmt.Errorf("output.render must be none, raster, vector or both, got %q: %w", c.Output.Render, ErrInvalidConfig)
	}
	switch c.Output.Vector {
	case "", "svg", "png":
	default:
		return fmt.Errorf("output.vectorFormat must be svg or png, got %q: %w", c.Output.Vector, ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads a YAML config file. Fields missing from the file keep
// their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes the configuration to a YAML file.
func SaveConfig(path string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
