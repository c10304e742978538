package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Gateway       GatewayConfig       `mapstructure:"gateway"`
	Inquiry       InquiryConfig       `mapstructure:"inquiry"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	InstanceID    string              `mapstructure:"instance_id"`
}

type ServerConfig struct {
	Port            int             `mapstructure:"port"`
	ReadTimeout     time.Duration   `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration   `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration   `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout"`
	CORS            CORSConfig      `mapstructure:"cors"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

type RateLimitConfig struct {
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
	Enabled           bool `mapstructure:"enabled"`
}

// GatewayConfig holds the Payflow Pro connection settings. Partner, vendor,
// user, and password are the four credential fields sent on every
// transaction. Mode selects the pilot or the live host.
type GatewayConfig struct {
	Partner  string        `mapstructure:"partner"`
	Vendor   string        `mapstructure:"vendor"`
	User     string        `mapstructure:"user"`
	Password string        `mapstructure:"password"`
	Mode     string        `mapstructure:"mode"`
	Timeout  time.Duration `mapstructure:"timeout"`
	// BaseURL overrides the host selection, for tests against a local stub.
	BaseURL string `mapstructure:"base_url"`
}

// InquiryConfig tunes the retry policy for transaction inquiries, the only
// operation safe to re-send automatically.
type InquiryConfig struct {
	MaxAttempts  int           `mapstructure:"max_attempts"`
	InitialDelay time.Duration `mapstructure:"initial_delay"`
	MaxDelay     time.Duration `mapstructure:"max_delay"`
}

type ObservabilityConfig struct {
	LogLevel       string `mapstructure:"log_level"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
	EnableMetrics  bool   `mapstructure:"enable_metrics"`
	EnableTracing  bool   `mapstructure:"enable_tracing"`
}

func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("PAYFLOW")
	v.AutomaticEnv()

	// Read from config file if exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/payflow")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.read_timeout must be positive"))
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.write_timeout must be positive"))
	}

	if c.Gateway.Mode != "test" && c.Gateway.Mode != "production" {
		errs = append(errs, fmt.Errorf("gateway.mode must be \"test\" or \"production\", got %q", c.Gateway.Mode))
	}
	// Every gateway exchange must carry a finite deadline.
	if c.Gateway.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("gateway.timeout must be positive"))
	}
	if c.Gateway.Partner == "" {
		errs = append(errs, fmt.Errorf("gateway.partner is required"))
	}

	if c.Inquiry.MaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("inquiry.max_attempts must be positive"))
	}
	if c.Inquiry.InitialDelay <= 0 {
		errs = append(errs, fmt.Errorf("inquiry.initial_delay must be positive"))
	}

	// Production environment checks
	env := os.Getenv("ENV")
	if c.Gateway.Mode == "production" || env == "production" || env == "prod" {
		if c.Gateway.Vendor == "" {
			errs = append(errs, fmt.Errorf("gateway.vendor required in production"))
		}
		if c.Gateway.User == "" {
			errs = append(errs, fmt.Errorf("gateway.user required in production"))
		}
		if c.Gateway.Password == "" {
			errs = append(errs, fmt.Errorf("gateway.password required in production"))
		}
		if c.Gateway.BaseURL != "" {
			errs = append(errs, fmt.Errorf("gateway.base_url override is not allowed in production"))
		}
	}

	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.cors.allowed_origins", []string{"*"})
	v.SetDefault("server.cors.allow_credentials", false)
	v.SetDefault("server.rate_limit.requests_per_minute", 120)
	v.SetDefault("server.rate_limit.enabled", true)

	// Gateway defaults; credentials have no defaults on purpose.
	v.SetDefault("gateway.mode", "test")
	v.SetDefault("gateway.timeout", "30s")

	// Inquiry retry defaults
	v.SetDefault("inquiry.max_attempts", 3)
	v.SetDefault("inquiry.initial_delay", "500ms")
	v.SetDefault("inquiry.max_delay", "5s")

	// Observability defaults
	v.SetDefault("observability.log_level", "info")
	v.SetDefault("observability.jaeger_endpoint", "http://localhost:14268/api/traces")
	v.SetDefault("observability.enable_metrics", true)
	v.SetDefault("observability.enable_tracing", true)

	// Instance ID
	v.SetDefault("instance_id", "payflow-1")
}
