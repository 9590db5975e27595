package config

import (
	"strings"

	"github.com/uyouii/trajvis/embedding"
	"github.com/uyouii/trajvis/indicator"
	"github.com/uyouii/trajvis/prob"
)

const (
	DefaultLogMode  = "prod"
	DefaultLogLevel = "info"

	DefaultWidth  = embedding.DefaultWidth
	DefaultMargin = embedding.DefaultMargin
	DefaultGamma  = embedding.DefaultGamma
)

// Default returns a config holding every default value.
func Default() *Config {
	cfg := &Config{
		Probability: ProbabilityConfig{
			StartAge: prob.DefaultStartAge,
			EndAge:   prob.DefaultEndAge,
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills the zero fields of cfg. Map sections are merged, the
// entries set by the caller win over the defaults. Concept codes are upper
// cased, since viper lower-cases every map key it reads.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Log.Mode == "" {
		cfg.Log.Mode = DefaultLogMode
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}

	if cfg.Probability.StartAge == 0 && cfg.Probability.EndAge == 0 {
		cfg.Probability.StartAge = prob.DefaultStartAge
		cfg.Probability.EndAge = prob.DefaultEndAge
	}

	if cfg.Embedding.Width == 0 {
		cfg.Embedding.Width = DefaultWidth
	}
	if cfg.Embedding.Margin == 0 {
		cfg.Embedding.Margin = DefaultMargin
	}
	if cfg.Embedding.PointGamma == 0 {
		cfg.Embedding.PointGamma = DefaultGamma
	}
	cfg.Embedding.Domains = merge(lowerKeys(cfg.Embedding.Domains), embedding.DefaultDomains())
	cfg.Embedding.Ramps = merge(lowerKeys(cfg.Embedding.Ramps), embedding.DefaultRampSpecs())
	cfg.Embedding.Units = merge(lowerKeys(cfg.Embedding.Units), embedding.DefaultUnits())

	labels := indicator.DefaultLabels()
	cfg.Indicator.NormalRanges = merge(upperKeys(cfg.Indicator.NormalRanges), indicator.DefaultNormalRanges())
	cfg.Indicator.Names = merge(upperKeys(cfg.Indicator.Names), labels.Names)
	cfg.Indicator.Units = merge(upperKeys(cfg.Indicator.Units), labels.Units)
}

// merge adds the entries of defaults missing from m.
func merge[M ~map[string]V, V any](m M, defaults M) M {
	if m == nil {
		m = make(M, len(defaults))
	}
	for k, v := range defaults {
		if _, ok := m[k]; !ok {
			m[k] = v
		}
	}
	return m
}

func upperKeys[M ~map[string]V, V any](m M) M {
	return mapKeys(m, strings.ToUpper)
}

func lowerKeys[M ~map[string]V, V any](m M) M {
	return mapKeys(m, strings.ToLower)
}

func mapKeys[M ~map[string]V, V any](m M, f func(string) string) M {
	if m == nil {
		return nil
	}
	res := make(M, len(m))
	for k, v := range m {
		res[f(k)] = v
	}
	return res
}
