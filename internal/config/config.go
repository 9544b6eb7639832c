package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spendtrack/spendtrack/internal/categories"
	"github.com/spendtrack/spendtrack/internal/chart"
	"github.com/spendtrack/spendtrack/internal/model"
	"github.com/spendtrack/spendtrack/internal/report"
)

// Config represents an optional spendtrack.yaml file. Every field falls back
// to the built-in default when absent.
type Config struct {
	Categories []string     `yaml:"categories"`
	Report     ReportConfig `yaml:"report"`
	Chart      ChartConfig  `yaml:"chart"`
	Policy     PolicyConfig `yaml:"policy"`
}

// ReportConfig controls the saved report.
type ReportConfig struct {
	Path       string `yaml:"path"` // extension selects the format
	EmbedChart bool   `yaml:"embed_chart"`
}

// ChartConfig controls the on-screen pie chart.
type ChartConfig struct {
	Title      string   `yaml:"title"`
	StartAngle *float64 `yaml:"start_angle,omitempty"`
	Radius     int      `yaml:"radius"`
}

// PolicyConfig controls amount validation.
type PolicyConfig struct {
	RejectNonPositive bool `yaml:"reject_non_positive"`
}

// Load reads a config file from disk and fills in defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	if c.Chart.Radius < 0 {
		return fmt.Errorf("chart.radius must not be negative, got %d", c.Chart.Radius)
	}
	if _, err := report.DefaultRegistry(report.XLSXOptions{}).ForPath(c.Report.Path); err != nil {
		return fmt.Errorf("report.path: %w", err)
	}
	return nil
}

// CategoryList returns the configured categories as model values.
func (c *Config) CategoryList() []model.Category {
	return model.Categories(c.Categories)
}

// ChartStartAngle returns the configured start angle or the default.
func (c *Config) ChartStartAngle() float64 {
	if c.Chart.StartAngle == nil {
		return chart.DefaultStartAngle
	}
	return *c.Chart.StartAngle
}

func (c *Config) applyDefaults() {
	if len(c.Categories) == 0 {
		for _, cat := range categories.DefaultCategories() {
			c.Categories = append(c.Categories, string(cat))
		}
	}
	if c.Report.Path == "" {
		c.Report.Path = report.DefaultPath
	}
	if c.Chart.Title == "" {
		c.Chart.Title = chart.DefaultTitle
	}
	if c.Chart.Radius == 0 {
		c.Chart.Radius = chart.DefaultRadius
	}
}
