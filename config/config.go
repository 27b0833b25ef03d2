package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	obs "github.com/Black-And-White-Club/frolf-bot-shared/observability"
)

// Config holds the service configuration.
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	JWT           JWTConfig           `yaml:"jwt"`
	HTTP          HTTPConfig          `yaml:"http"`
	SideGames     SideGamesConfig     `yaml:"sidegames"`
	Observability ObservabilityConfig `yaml:"observability"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type NATSConfig struct {
	URL string `yaml:"url"`
}

// JWTConfig holds the scorer token settings. An empty secret leaves the
// mutating HTTP routes open.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	RateLimit      float64  `yaml:"rate_limit"`
	RateBurst      int      `yaml:"rate_burst"`
}

// SideGamesConfig tunes results caching, tee time parsing and the recompute queue.
type SideGamesConfig struct {
	ResultCacheSize int           `yaml:"result_cache_size"`
	DefaultTimezone string        `yaml:"default_timezone"`
	RecomputeDelay  time.Duration `yaml:"recompute_delay"`
	QueueWorkers    int           `yaml:"queue_workers"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	LokiURL         string  `yaml:"loki_url"`
	MetricsAddress  string  `yaml:"metrics_address"`
	TempoEndpoint   string  `yaml:"tempo_endpoint"`
	TempoInsecure   bool    `yaml:"tempo_insecure"`
	TempoSampleRate float64 `yaml:"tempo_sample_rate"`
	Environment     string  `yaml:"environment"`
	OTLPEndpoint    string  `yaml:"otlp_endpoint"`
	OTLPTransport   string  `yaml:"otlp_transport"` // grpc|http
	OTLPLogsEnabled bool    `yaml:"otlp_logs_enabled"`
}

func defaults() Config {
	return Config{
		JWT: JWTConfig{DefaultTTL: 24 * time.Hour},
		HTTP: HTTPConfig{
			Addr:      ":8080",
			RateLimit: 5,
			RateBurst: 20,
		},
		SideGames: SideGamesConfig{
			ResultCacheSize: 512,
			DefaultTimezone: "UTC",
			RecomputeDelay:  2 * time.Second,
			QueueWorkers:    10,
		},
		Observability: ObservabilityConfig{TempoSampleRate: 0.1},
	}
}

// LoadConfig reads filename when it exists and then applies environment
// overrides. A .env file in the working directory is loaded first.
func LoadConfig(filename string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}
	if cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS_URL environment variable not set")
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setBool := func(key string, dst *bool) {
		if v := os.Getenv(key); v != "" {
			*dst = v == "true"
		}
	}

	setString("DATABASE_URL", &cfg.Postgres.DSN)
	setString("NATS_URL", &cfg.NATS.URL)
	setString("JWT_SECRET", &cfg.JWT.Secret)
	setString("HTTP_ADDR", &cfg.HTTP.Addr)
	setString("DEFAULT_TIMEZONE", &cfg.SideGames.DefaultTimezone)
	setString("LOKI_URL", &cfg.Observability.LokiURL)
	setString("METRICS_ADDRESS", &cfg.Observability.MetricsAddress)
	setString("TEMPO_ENDPOINT", &cfg.Observability.TempoEndpoint)
	setString("OTLP_ENDPOINT", &cfg.Observability.OTLPEndpoint)
	setString("OTLP_TRANSPORT", &cfg.Observability.OTLPTransport)
	setString("ENV", &cfg.Observability.Environment)
	setBool("TEMPO_INSECURE", &cfg.Observability.TempoInsecure)
	setBool("OTLP_LOGS_ENABLED", &cfg.Observability.OTLPLogsEnabled)

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.HTTP.AllowedOrigins = append(cfg.HTTP.AllowedOrigins, o)
			}
		}
	}
	if v := os.Getenv("TEMPO_SAMPLE_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid TEMPO_SAMPLE_RATE value: %v", err)
		}
		cfg.Observability.TempoSampleRate = f
	}
	if v := os.Getenv("HTTP_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid HTTP_RATE_LIMIT value: %v", err)
		}
		cfg.HTTP.RateLimit = f
	}
	if v := os.Getenv("RESULT_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RESULT_CACHE_SIZE value: %v", err)
		}
		cfg.SideGames.ResultCacheSize = n
	}
	if v := os.Getenv("JWT_DEFAULT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid JWT_DEFAULT_TTL value: %v", err)
		}
		cfg.JWT.DefaultTTL = d
	}
	if v := os.Getenv("RECOMPUTE_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid RECOMPUTE_DELAY value: %v", err)
		}
		cfg.SideGames.RecomputeDelay = d
	}
	return nil
}

func ToObsConfig(appCfg *Config) obs.Config {
	return obs.Config{
		ServiceName:     "golf-sidegames",
		Environment:     appCfg.Observability.Environment,
		Version:         "1.0.0",
		LokiURL:         appCfg.Observability.LokiURL,
		MetricsAddress:  appCfg.Observability.MetricsAddress,
		TempoEndpoint:   appCfg.Observability.TempoEndpoint,
		TempoInsecure:   appCfg.Observability.TempoInsecure,
		TempoSampleRate: appCfg.Observability.TempoSampleRate,
		OTLPEndpoint:    appCfg.Observability.OTLPEndpoint,
		OTLPTransport:   appCfg.Observability.OTLPTransport,
		LogsEnabled:     appCfg.Observability.OTLPLogsEnabled,
	}
}
