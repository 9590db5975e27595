package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/uyouii/trajvis/common"
)

const envPrefix = "TRAJVIS"

// newViper reads yaml, with TRAJVIS_ environment overrides where "." in a key
// maps to "_", e.g. TRAJVIS_PROBABILITY_START_AGE.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// AutomaticEnv only resolves keys viper already knows about.
	v.SetDefault("log.mode", DefaultLogMode)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("probability.start_age", 0)
	v.SetDefault("probability.end_age", 0)
	v.SetDefault("embedding.width", DefaultWidth)
	v.SetDefault("embedding.margin", DefaultMargin)
	v.SetDefault("embedding.point_gamma", DefaultGamma)
	v.SetDefault("density.seed", 0)
	v.SetDefault("density.no_jitter", false)
	v.SetDefault("density.smooth", 0)
	return v
}

// Load reads the yaml file at path, applies environment overrides and
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %q: %v: %w", path, err, common.ErrorInvalidConfig)
	}
	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a config from TRAJVIS_* variables and defaults only.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %v: %w", err, common.ErrorInvalidConfig)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
