// Package config provides configuration management for the analytics service.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Defaults applied to unset optional fields.
const (
	defaultPort              = 8000
	defaultRequestTimeout    = "30s"
	defaultLogLevel          = "info"
	defaultRiskFreeRate      = 0.05
	defaultImpliedVolatility = 0.20
	defaultTargetProbability = 0.70
	defaultWingWidth         = 5.0
)

// Config represents the complete application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	MarketData MarketDataConfig `yaml:"market_data"`
	Strategy   StrategyConfig   `yaml:"strategy"`
}

// ServerConfig defines HTTP listener settings.
type ServerConfig struct {
	Port           int    `yaml:"port"`
	RequestTimeout string `yaml:"request_timeout"`
}

// LoggingConfig defines log output settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
}

// MarketDataConfig defines market data provider settings.
type MarketDataConfig struct {
	// Provider selects the data source. Only "synthetic" is supported.
	Provider string `yaml:"provider"`
	// CircuitBreaker guards provider calls when enabled.
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker"`
}

// CircuitBreakerConfig tunes the provider circuit breaker.
type CircuitBreakerConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MinRequests  uint32  `yaml:"min_requests"`
	FailureRatio float64 `yaml:"failure_ratio"`
	OpenTimeout  string  `yaml:"open_timeout"`
}

// StrategyConfig defines analysis defaults applied when a request omits
// the corresponding field.
type StrategyConfig struct {
	RiskFreeRate      float64 `yaml:"risk_free_rate"`
	ImpliedVolatility float64 `yaml:"implied_volatility"`
	TargetProbability float64 `yaml:"target_probability"`
	WingWidth         float64 `yaml:"wing_width"`
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads and parses the configuration file from the specified path.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- configPath is a user-provided config file path
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var config Config
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Server.RequestTimeout == "" {
		c.Server.RequestTimeout = defaultRequestTimeout
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.MarketData.Provider == "" {
		c.MarketData.Provider = "synthetic"
	}
	if c.Strategy.RiskFreeRate == 0 {
		c.Strategy.RiskFreeRate = defaultRiskFreeRate
	}
	if c.Strategy.ImpliedVolatility == 0 {
		c.Strategy.ImpliedVolatility = defaultImpliedVolatility
	}
	if c.Strategy.TargetProbability == 0 {
		c.Strategy.TargetProbability = defaultTargetProbability
	}
	if c.Strategy.WingWidth == 0 {
		c.Strategy.WingWidth = defaultWingWidth
	}
}

// Validate checks that all configuration values are valid and consistent.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if _, err := time.ParseDuration(c.Server.RequestTimeout); err != nil {
		return fmt.Errorf("server.request_timeout invalid: %w", err)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}

	if c.MarketData.Provider != "synthetic" {
		return fmt.Errorf("market_data.provider %q is not supported", c.MarketData.Provider)
	}
	if cb := c.MarketData.CircuitBreaker; cb.Enabled {
		if cb.FailureRatio < 0 || cb.FailureRatio > 1 {
			return fmt.Errorf("market_data.circuit_breaker.failure_ratio must be between 0 and 1")
		}
		if cb.OpenTimeout != "" {
			if _, err := time.ParseDuration(cb.OpenTimeout); err != nil {
				return fmt.Errorf("market_data.circuit_breaker.open_timeout invalid: %w", err)
			}
		}
	}

	if c.Strategy.RiskFreeRate < 0 || c.Strategy.RiskFreeRate > 0.20 {
		return fmt.Errorf("strategy.risk_free_rate must be between 0 and 0.20")
	}
	if c.Strategy.ImpliedVolatility <= 0 || c.Strategy.ImpliedVolatility > 2.0 {
		return fmt.Errorf("strategy.implied_volatility must be in (0, 2.0]")
	}
	if c.Strategy.TargetProbability < 0.5 || c.Strategy.TargetProbability > 0.95 {
		return fmt.Errorf("strategy.target_probability must be between 0.5 and 0.95")
	}
	if c.Strategy.WingWidth <= 0 {
		return fmt.Errorf("strategy.wing_width must be > 0")
	}

	return nil
}

// RequestTimeout returns the configured HTTP request timeout.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.RequestTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}
