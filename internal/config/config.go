package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/whipsal/whipsal/internal/pattern"
	"github.com/whipsal/whipsal/internal/specparse"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Order    OrderConfig    `mapstructure:"order"`
}

// DatabaseConfig holds sqlite settings for the optional rule archive.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// AnalysisConfig holds the pattern-analysis tunables. The constants are
// behavioral contract; they are exposed so tests and operators can pin them,
// not because better values are known.
type AnalysisConfig struct {
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
	MinFrequency        int     `mapstructure:"min_frequency"`
	BaseConfidence      float64 `mapstructure:"base_confidence"`
	FrequencyStep       float64 `mapstructure:"frequency_step"`
	FrequencyCap        float64 `mapstructure:"frequency_cap"`
	SignatureBonus      float64 `mapstructure:"signature_bonus"`
	VariationPenalty    float64 `mapstructure:"variation_penalty"`
	VariationLimit      int     `mapstructure:"variation_limit"`
	ActiveRuleFloor     float64 `mapstructure:"active_rule_floor"`
	MaxRowsPerSheet     int     `mapstructure:"max_rows_per_sheet"`
	CacheTTLSeconds     int     `mapstructure:"cache_ttl_seconds"`
}

// OrderConfig holds natural-language order parsing defaults.
type OrderConfig struct {
	ConduitType    string   `mapstructure:"conduit_type"`
	ReceptacleType string   `mapstructure:"receptacle_type"`
	Colors         []string `mapstructure:"colors"`
	TailLength     string   `mapstructure:"tail_length"`
	RangeStep      int      `mapstructure:"range_step"`
}

// Load reads configuration from file and env. Env var overrides use prefix WHIPSAL_.
func Load() (Config, error) {
	v := viper.New()

	tuning := pattern.DefaultTuning()
	order := specparse.StockDefaults()

	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "whipsal", "whipsal.db"))
	v.SetDefault("analysis.similarity_threshold", tuning.SimilarityThreshold)
	v.SetDefault("analysis.min_frequency", tuning.MinFrequency)
	v.SetDefault("analysis.base_confidence", tuning.BaseConfidence)
	v.SetDefault("analysis.frequency_step", tuning.FrequencyStep)
	v.SetDefault("analysis.frequency_cap", tuning.FrequencyCap)
	v.SetDefault("analysis.signature_bonus", tuning.SignatureBonus)
	v.SetDefault("analysis.variation_penalty", tuning.VariationPenalty)
	v.SetDefault("analysis.variation_limit", tuning.VariationLimit)
	v.SetDefault("analysis.active_rule_floor", 0.7)
	v.SetDefault("analysis.max_rows_per_sheet", 5000)
	v.SetDefault("analysis.cache_ttl_seconds", 300)
	v.SetDefault("order.conduit_type", order.ConduitType)
	v.SetDefault("order.receptacle_type", order.ReceptacleType)
	v.SetDefault("order.colors", order.Colors)
	v.SetDefault("order.tail_length", order.TailLength)
	v.SetDefault("order.range_step", order.RangeStep)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("WHIPSAL_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "whipsal"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("WHIPSAL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("WHIPSAL_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "whipsal", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("analysis.similarity_threshold", cfg.Analysis.SimilarityThreshold)
	v.Set("analysis.min_frequency", cfg.Analysis.MinFrequency)
	v.Set("analysis.base_confidence", cfg.Analysis.BaseConfidence)
	v.Set("analysis.frequency_step", cfg.Analysis.FrequencyStep)
	v.Set("analysis.frequency_cap", cfg.Analysis.FrequencyCap)
	v.Set("analysis.signature_bonus", cfg.Analysis.SignatureBonus)
	v.Set("analysis.variation_penalty", cfg.Analysis.VariationPenalty)
	v.Set("analysis.variation_limit", cfg.Analysis.VariationLimit)
	v.Set("analysis.active_rule_floor", cfg.Analysis.ActiveRuleFloor)
	v.Set("analysis.max_rows_per_sheet", cfg.Analysis.MaxRowsPerSheet)
	v.Set("analysis.cache_ttl_seconds", cfg.Analysis.CacheTTLSeconds)
	v.Set("order.conduit_type", cfg.Order.ConduitType)
	v.Set("order.receptacle_type", cfg.Order.ReceptacleType)
	v.Set("order.colors", cfg.Order.Colors)
	v.Set("order.tail_length", cfg.Order.TailLength)
	v.Set("order.range_step", cfg.Order.RangeStep)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Tuning converts analysis settings into the aggregator's tuning value.
func (c Config) Tuning() pattern.Tuning {
	return pattern.Tuning{
		SimilarityThreshold: c.Analysis.SimilarityThreshold,
		MinFrequency:        c.Analysis.MinFrequency,
		BaseConfidence:      c.Analysis.BaseConfidence,
		FrequencyStep:       c.Analysis.FrequencyStep,
		FrequencyCap:        c.Analysis.FrequencyCap,
		SignatureBonus:      c.Analysis.SignatureBonus,
		VariationPenalty:    c.Analysis.VariationPenalty,
		VariationLimit:      c.Analysis.VariationLimit,
	}
}

// OrderDefaults converts order settings into the parser's defaults value.
func (c Config) OrderDefaults() specparse.Defaults {
	return specparse.Defaults{
		ConduitType:    c.Order.ConduitType,
		ReceptacleType: c.Order.ReceptacleType,
		Colors:         c.Order.Colors,
		TailLength:     c.Order.TailLength,
		RangeStep:      c.Order.RangeStep,
	}
}
