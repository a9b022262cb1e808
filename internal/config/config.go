package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Funnel     FunnelConfig     `yaml:"funnel" mapstructure:"funnel"`
	Motivation MotivationConfig `yaml:"motivation" mapstructure:"motivation"`
	Forecast   ForecastConfig   `yaml:"forecast" mapstructure:"forecast"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// FunnelConfig configures funnel analysis.
type FunnelConfig struct {
	Benchmarks Benchmarks `yaml:"benchmarks" mapstructure:"benchmarks"`
}

// Benchmarks holds the conversion thresholds (percent, 0-100) per stage
// transition. The entry stage has no benchmark: it is always 100%.
type Benchmarks struct {
	Meeting1       float64 `yaml:"meeting1" mapstructure:"meeting1"`
	Meeting2       float64 `yaml:"meeting2" mapstructure:"meeting2"`
	ContractReview float64 `yaml:"contract_review" mapstructure:"contract_review"`
	Push           float64 `yaml:"push" mapstructure:"push"`
	Deal           float64 `yaml:"deal" mapstructure:"deal"`
}

// MotivationConfig configures commission calculation.
type MotivationConfig struct {
	Grades    []Grade `yaml:"grades" mapstructure:"grades"`
	HotWeight float64 `yaml:"hot_weight" mapstructure:"hot_weight"`
}

// Grade maps a half-open turnover range [MinTurnover, MaxTurnover) to a flat
// commission rate. A nil MaxTurnover marks the open-ended top bracket.
type Grade struct {
	MinTurnover float64  `yaml:"min_turnover" mapstructure:"min_turnover"`
	MaxTurnover *float64 `yaml:"max_turnover" mapstructure:"max_turnover"`
	Rate        float64  `yaml:"rate" mapstructure:"rate"`
}

// ForecastConfig configures monthly forecasting.
type ForecastConfig struct {
	MonthlyGoal float64 `yaml:"monthly_goal" mapstructure:"monthly_goal"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultBenchmarks returns the built-in conversion thresholds used when no
// configuration overrides them.
func DefaultBenchmarks() Benchmarks {
	return Benchmarks{
		Meeting1:       70,
		Meeting2:       50,
		ContractReview: 50,
		Push:           60,
		Deal:           50,
	}
}

// DefaultGrades returns the built-in commission grade table:
// [0, 500k) at 3%, [500k, 1M) at 5%, [1M, inf) at 7%.
func DefaultGrades() []Grade {
	half := 500_000.0
	million := 1_000_000.0
	return []Grade{
		{MinTurnover: 0, MaxTurnover: &half, Rate: 0.03},
		{MinTurnover: half, MaxTurnover: &million, Rate: 0.05},
		{MinTurnover: million, MaxTurnover: nil, Rate: 0.07},
	}
}

// DefaultHotWeight is the damping factor applied to in-pipeline ("hot")
// turnover. Open deals are not certain to close.
const DefaultHotWeight = 0.5

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PIPELINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	b := DefaultBenchmarks()
	v.SetDefault("funnel.benchmarks.meeting1", b.Meeting1)
	v.SetDefault("funnel.benchmarks.meeting2", b.Meeting2)
	v.SetDefault("funnel.benchmarks.contract_review", b.ContractReview)
	v.SetDefault("funnel.benchmarks.push", b.Push)
	v.SetDefault("funnel.benchmarks.deal", b.Deal)
	v.SetDefault("motivation.hot_weight", DefaultHotWeight)
	v.SetDefault("motivation.grades", defaultGradeMaps())
	v.SetDefault("forecast.monthly_goal", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// defaultGradeMaps renders DefaultGrades in the shape viper expects for a
// list-valued default.
func defaultGradeMaps() []map[string]any {
	grades := DefaultGrades()
	out := make([]map[string]any, 0, len(grades))
	for _, g := range grades {
		m := map[string]any{
			"min_turnover": g.MinTurnover,
			"rate":         g.Rate,
		}
		if g.MaxTurnover != nil {
			m["max_turnover"] = *g.MaxTurnover
		}
		out = append(out, m)
	}
	return out
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	var errs []string

	for name, pct := range map[string]float64{
		"meeting1":        c.Funnel.Benchmarks.Meeting1,
		"meeting2":        c.Funnel.Benchmarks.Meeting2,
		"contract_review": c.Funnel.Benchmarks.ContractReview,
		"push":            c.Funnel.Benchmarks.Push,
		"deal":            c.Funnel.Benchmarks.Deal,
	} {
		if pct < 0 || pct > 100 {
			errs = append(errs, fmt.Sprintf("funnel benchmark %s must be 0-100 (got %v)", name, pct))
		}
	}

	if c.Motivation.HotWeight < 0 || c.Motivation.HotWeight > 1 {
		errs = append(errs, fmt.Sprintf("motivation hot_weight must be 0-1 (got %v)", c.Motivation.HotWeight))
	}

	for i, g := range c.Motivation.Grades {
		if g.Rate < 0 || g.Rate > 1 {
			errs = append(errs, fmt.Sprintf("grade %d: rate must be 0-1 (got %v)", i, g.Rate))
		}
		if g.MinTurnover < 0 {
			errs = append(errs, fmt.Sprintf("grade %d: min_turnover must be non-negative (got %v)", i, g.MinTurnover))
		}
		if g.MaxTurnover != nil && *g.MaxTurnover <= g.MinTurnover {
			errs = append(errs, fmt.Sprintf("grade %d: max_turnover must exceed min_turnover", i))
		}
		if g.MaxTurnover == nil && i != len(c.Motivation.Grades)-1 {
			errs = append(errs, fmt.Sprintf("grade %d: open-ended bracket must be last", i))
		}
		if i > 0 && g.MinTurnover < c.Motivation.Grades[i-1].MinTurnover {
			errs = append(errs, fmt.Sprintf("grade %d: not sorted ascending by min_turnover", i))
		}
	}

	if c.Forecast.MonthlyGoal < 0 {
		errs = append(errs, fmt.Sprintf("forecast monthly_goal must be non-negative (got %v)", c.Forecast.MonthlyGoal))
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
