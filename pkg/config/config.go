package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Database
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis
	RedisURL    string        `mapstructure:"REDIS_URL"`
	CacheTTL    time.Duration `mapstructure:"CACHE_TTL"`
	EventStream string        `mapstructure:"EVENT_STREAM"`

	// Match
	MatchSeed       int64   `mapstructure:"MATCH_SEED"`
	FatigueShape    float64 `mapstructure:"FATIGUE_SHAPE"`
	EnergyIntensity float64 `mapstructure:"ENERGY_INTENSITY"`
	HomeTeam        string  `mapstructure:"HOME_TEAM"`
	AwayTeam        string  `mapstructure:"AWAY_TEAM"`

	// Simulation
	MaxSimulations    int `mapstructure:"MAX_SIMULATIONS"`
	SimulationWorkers int `mapstructure:"SIMULATION_WORKERS"`

	// Rate limiting
	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`
}

func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	if len(paths) == 0 {
		paths = []string{".", ".."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("DATABASE_URL", "sqlite://gridiron.db")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CACHE_TTL", "1h")
	v.SetDefault("EVENT_STREAM", "match_events")
	v.SetDefault("MATCH_SEED", 0) // 0 seeds from the clock
	v.SetDefault("FATIGUE_SHAPE", 0.15)
	v.SetDefault("ENERGY_INTENSITY", 0.8)
	v.SetDefault("HOME_TEAM", "Home")
	v.SetDefault("AWAY_TEAM", "Away")
	v.SetDefault("MAX_SIMULATIONS", 10000)
	v.SetDefault("SIMULATION_WORKERS", 4)
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	if c.FatigueShape <= 0 {
		return fmt.Errorf("FATIGUE_SHAPE must be positive, got %v", c.FatigueShape)
	}
	if c.EnergyIntensity < 0 {
		return fmt.Errorf("ENERGY_INTENSITY must not be negative, got %v", c.EnergyIntensity)
	}
	if c.SimulationWorkers < 1 {
		return fmt.Errorf("SIMULATION_WORKERS must be at least 1, got %d", c.SimulationWorkers)
	}
	if c.MaxSimulations < 1 {
		return fmt.Errorf("MAX_SIMULATIONS must be at least 1, got %d", c.MaxSimulations)
	}
	if strings.TrimSpace(c.HomeTeam) == "" || strings.TrimSpace(c.AwayTeam) == "" {
		return fmt.Errorf("HOME_TEAM and AWAY_TEAM must be set")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
