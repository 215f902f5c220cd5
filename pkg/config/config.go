package config

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"AlphaPlan/pkg/util"
)

var validate = validator.New()

type Config struct {
	Environment string `yaml:"environment" default:"production"`
	Logging     struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`
	Engine   Engine `yaml:"engine"`
	Artifact struct {
		Path string `yaml:"path" default:"out/trade_plan.txt" validate:"required"`
	} `yaml:"artifact"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Addr     string `yaml:"addr" default:"localhost:6379"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Key      string `yaml:"key" default:"alphaplan:plan:latest"`
	} `yaml:"redis"`
}

// Engine holds every knob of the optimization pipeline itself.
type Engine struct {
	// Prior uncertainty scale (tau). Small positive by convention.
	Tau float64 `yaml:"tau" default:"0.05" validate:"gt=0"`
	// Fractional-Kelly damping multiplier. Deliberately below full Kelly.
	KellyFraction float64 `yaml:"kelly_fraction" default:"0.5" validate:"gt=0,lte=1"`
	// Per-asset cap on the absolute capital fraction.
	MaxPosition float64 `yaml:"max_position" default:"0.3" validate:"gt=0,lte=1"`
	// Ceiling on the sum of absolute fractions across the plan.
	MaxAggregateExposure float64 `yaml:"max_aggregate_exposure" default:"0.7" validate:"gt=0"`
	// Lower bound on aggregated confidence, keeps view variance finite.
	MinConfidenceFloor float64 `yaml:"min_confidence_floor" default:"0.05" validate:"gt=0,lt=1"`
	// Posterior variances at or below this size the position to zero.
	VarianceEpsilon float64 `yaml:"variance_epsilon" default:"1e-8" validate:"gt=0"`
	// Maps canonical sentiment into an excess-return delta.
	SentimentSensitivity float64 `yaml:"sentiment_sensitivity" default:"0.25" validate:"gt=0"`
	// View variance = variance_scale / confidence.
	VarianceScale float64 `yaml:"variance_scale" default:"0.05" validate:"gt=0"`
	// Identity multiple added when the prior covariance will not factorize.
	RidgeEpsilon float64 `yaml:"ridge_epsilon" default:"1e-6" validate:"gt=0"`
	// Fractions below this are dust and zeroed out.
	MinPosition float64 `yaml:"min_position" default:"0.01" validate:"gte=0"`
	// User risk appetite, 0 conservative .. 1 aggressive.
	RiskLevel float64 `yaml:"risk_level" default:"0.6" validate:"gte=0,lte=1"`
	// Drawdown above the threshold scales every fraction by the damping
	// factor. Damping 0 means capital preservation mode.
	DrawdownThreshold float64 `yaml:"drawdown_threshold" default:"0.15" validate:"gt=0,lte=1"`
	DrawdownDamping   float64 `yaml:"drawdown_damping" default:"0.5" validate:"gte=0,lte=1"`
	// Relative weight per source tag when fusing observations. Missing
	// sources weigh 1.
	SourceWeights map[string]float64 `yaml:"source_weights"`
}

// Check runs the cross-field rules the struct tags cannot express.
func (e *Engine) Check() error {
	if e.MinPosition >= e.MaxPosition {
		return fmt.Errorf("min_position %g must be below max_position %g", e.MinPosition, e.MaxPosition)
	}
	for src, w := range e.SourceWeights {
		if w < 0 {
			return fmt.Errorf("source_weights[%s] must not be negative, got %g", src, w)
		}
	}
	return nil
}

// Load reads and parses a YAML configuration file, applies defaults and
// validates the result.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if err := c.Engine.Check(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("PLAN_ARTIFACT_PATH"); v != "" {
		c.Artifact.Path = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
		c.Redis.Enabled = true
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		c.Redis.DB = util.ParseIntDefault(v, c.Redis.DB)
	}

	return c, nil
}
