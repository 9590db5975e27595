// Package config loads the settings of the normalization engine: age ranges,
// plot geometry, color ramps, clinical normal ranges and concept labels.
package config

import (
	"fmt"
	"strings"

	"github.com/uyouii/trajvis/common"
	"github.com/uyouii/trajvis/embedding"
	"github.com/uyouii/trajvis/indicator"
	"github.com/uyouii/trajvis/model"
	"golang.org/x/exp/rand"
)

type Config struct {
	Log         LogConfig         `mapstructure:"log"`
	Probability ProbabilityConfig `mapstructure:"probability"`
	Embedding   EmbeddingConfig   `mapstructure:"embedding"`
	Indicator   IndicatorConfig   `mapstructure:"indicator"`
	Density     DensityConfig     `mapstructure:"density"`
}

type LogConfig struct {
	// Mode is "prod" or "dev".
	Mode  string `mapstructure:"mode"`
	Level string `mapstructure:"level"`
}

// ProbabilityConfig is the inclusive integer age range of the probability chart.
type ProbabilityConfig struct {
	StartAge int `mapstructure:"start_age"`
	EndAge   int `mapstructure:"end_age"`
}

type EmbeddingConfig struct {
	Width      float64                       `mapstructure:"width"`
	Margin     float64                       `mapstructure:"margin"`
	PointGamma float64                       `mapstructure:"point_gamma"`
	Domains    map[string]model.Domain       `mapstructure:"domains"`
	Ramps      map[string]embedding.RampSpec `mapstructure:"ramps"`
	Units      map[string]string             `mapstructure:"units"`
}

type IndicatorConfig struct {
	NormalRanges indicator.NormalRanges `mapstructure:"normal_ranges"`
	Names        map[string]string      `mapstructure:"names"`
	Units        map[string]string      `mapstructure:"units"`
}

type DensityConfig struct {
	Seed     uint64  `mapstructure:"seed"`
	NoJitter bool    `mapstructure:"no_jitter"`
	// Smooth is the kernel bandwidth adjustment, 0 keeps the raw distribution.
	Smooth   float64 `mapstructure:"smooth"`
}

// Labels returns the concept labels of the indicator section.
func (c *IndicatorConfig) Labels() indicator.Labels {
	return indicator.Labels{Names: c.Names, Units: c.Units}
}

// Source returns the random source of the fallback jitter, nil when the
// jitter is disabled.
func (c *DensityConfig) Source() rand.Source {
	if c.NoJitter {
		return nil
	}
	return rand.NewSource(c.Seed)
}

// Validate checks a config after ApplyDefaults.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Mode) {
	case "prod", "production", "dev", "development":
	default:
		return fmt.Errorf("log.mode %q is invalid, expected prod|dev: %w", c.Log.Mode, common.ErrorInvalidConfig)
	}

	if c.Probability.StartAge < model.MinAge || c.Probability.EndAge > model.MaxAge {
		return fmt.Errorf("probability ages %d..%d are outside %d..%d: %w",
			c.Probability.StartAge, c.Probability.EndAge, model.MinAge, model.MaxAge, common.ErrorInvalidConfig)
	}
	if c.Probability.StartAge > c.Probability.EndAge {
		return fmt.Errorf("probability.start_age %d is after end_age %d: %w",
			c.Probability.StartAge, c.Probability.EndAge, common.ErrorInvalidConfig)
	}

	if c.Embedding.Width <= 0 {
		return fmt.Errorf("embedding.width must be > 0, got %v: %w", c.Embedding.Width, common.ErrorInvalidConfig)
	}
	if c.Embedding.Margin < 0 || 2*c.Embedding.Margin >= c.Embedding.Width {
		return fmt.Errorf("embedding.margin %v does not fit width %v: %w",
			c.Embedding.Margin, c.Embedding.Width, common.ErrorInvalidConfig)
	}
	if c.Embedding.PointGamma <= 0 {
		return fmt.Errorf("embedding.point_gamma must be > 0, got %v: %w",
			c.Embedding.PointGamma, common.ErrorInvalidConfig)
	}
	for name, d := range c.Embedding.Domains {
		if d.Min > d.Max {
			return fmt.Errorf("embedding.domains.%s min %v is above max %v: %w",
				name, d.Min, d.Max, common.ErrorInvalidConfig)
		}
	}
	for name, spec := range c.Embedding.Ramps {
		if _, err := embedding.NewRamp(spec.Stops, spec.Gamma); err != nil {
			return fmt.Errorf("embedding.ramps.%s: %v: %w", name, err, common.ErrorInvalidConfig)
		}
	}

	if c.Density.Smooth < 0 {
		return fmt.Errorf("density.smooth must be >= 0, got %v: %w", c.Density.Smooth, common.ErrorInvalidConfig)
	}

	for concept, rng := range c.Indicator.NormalRanges {
		if rng.Low > rng.High {
			return fmt.Errorf("indicator.normal_ranges.%s low %v is above high %v: %w",
				concept, rng.Low, rng.High, common.ErrorInvalidConfig)
		}
	}
	return nil
}
