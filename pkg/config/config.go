package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config carries every tunable of the optimizer binary. Values layer as
// defaults < optional .env file < environment < CLI flags (bound by the
// caller through viper).
type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Optional Postgres DSN; when empty, results are written to CSV
	// artifacts only.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Draft configuration
	NumTeams int `mapstructure:"NUM_TEAMS"`

	// Optimization tuning
	LearningRate  float64 `mapstructure:"LEARNING_RATE"`
	MaxIterations int     `mapstructure:"MAX_ITERATIONS"`

	// Optional jitter applied to the VBR seed before optimizing
	PerturbationFactor float64 `mapstructure:"PERTURBATION_FACTOR"`
	PerturbationSeed   int64   `mapstructure:"PERTURBATION_SEED"`

	// Player pool filters
	MinWeeks    int `mapstructure:"MIN_WEEKS"`
	TopNByTotal int `mapstructure:"TOP_N_BY_TOTAL"`

	// Artifact output
	ArtifactsDir string `mapstructure:"ARTIFACTS_DIR"`
}

// LoadConfig reads configuration from an optional .env file and the
// environment, applying defaults for everything unset.
func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("NUM_TEAMS", 10)
	viper.SetDefault("LEARNING_RATE", 0.1)
	viper.SetDefault("MAX_ITERATIONS", 50)
	viper.SetDefault("PERTURBATION_FACTOR", 0.0)
	viper.SetDefault("PERTURBATION_SEED", 1)
	viper.SetDefault("MIN_WEEKS", 10)
	viper.SetDefault("TOP_N_BY_TOTAL", 150)
	viper.SetDefault("ARTIFACTS_DIR", "artifacts")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing .env file is fine; anything else is a real error.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the optimizer cannot run with.
func (c *Config) Validate() error {
	if c.NumTeams < 1 {
		return fmt.Errorf("NUM_TEAMS must be >= 1, got %d", c.NumTeams)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("MAX_ITERATIONS must be >= 1, got %d", c.MaxIterations)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("LEARNING_RATE must be positive, got %f", c.LearningRate)
	}
	if c.PerturbationFactor < 0 {
		return fmt.Errorf("PERTURBATION_FACTOR must be >= 0, got %f", c.PerturbationFactor)
	}
	return nil
}

// IsDevelopment reports whether the binary runs in a development
// environment (affects log formatting and gorm verbosity).
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
