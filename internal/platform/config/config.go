package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const bytesPerMegabyte = 1 << 20

type Config struct {
	AppEnv     string `env:"APP_ENV" envDefault:"local"`
	HTTPPort   int    `env:"HTTP_PORT" envDefault:"5173"`
	HealthPort int    `env:"HEALTH_PORT" envDefault:"8080"`

	// Analysis backend
	AnalysisBaseURL          string        `env:"ANALYSIS_BASE_URL,required"`
	AnalysisTimeout          time.Duration `env:"ANALYSIS_TIMEOUT" envDefault:"10m"`
	AnalysisRPS              float64       `env:"ANALYSIS_RPS" envDefault:"2"`
	AnalysisCircuitThreshold int           `env:"ANALYSIS_CIRCUIT_THRESHOLD" envDefault:"5"`
	AnalysisCircuitTimeout   time.Duration `env:"ANALYSIS_CIRCUIT_TIMEOUT" envDefault:"1m"`
	MaxUploadBytes           int64         `env:"MAX_UPLOAD_BYTES" envDefault:"20971520"`

	// Dashboard
	CORSAllowedOrigin     string `env:"CORS_ALLOWED_ORIGIN" envDefault:""`
	DashboardRateLimitRPM int    `env:"DASHBOARD_RATE_LIMIT_RPM" envDefault:"60"`
	DashboardRateBurst    int    `env:"DASHBOARD_RATE_BURST" envDefault:"20"`

	// Executive summary
	LLMAPIKey           string        `env:"LLM_API_KEY"`
	LLMBaseURL          string        `env:"LLM_BASE_URL"`
	LLMModel            string        `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMRPS              float64       `env:"LLM_RPS" envDefault:"1"`
	LLMTimeout          time.Duration `env:"LLM_TIMEOUT" envDefault:"2m"`
	LLMCircuitThreshold int           `env:"LLM_CIRCUIT_THRESHOLD" envDefault:"5"`
	LLMCircuitTimeout   time.Duration `env:"LLM_CIRCUIT_TIMEOUT" envDefault:"1m"`
	SummaryLanguage     string        `env:"SUMMARY_LANGUAGE" envDefault:"Thai"`
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	applyAliases(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}

	if c.AnalysisRPS <= 0 {
		return fmt.Errorf("ANALYSIS_RPS must be positive, got %v", c.AnalysisRPS)
	}

	if c.HTTPPort == c.HealthPort {
		return fmt.Errorf("HTTP_PORT and HEALTH_PORT must differ, both are %d", c.HTTPPort)
	}

	return nil
}

// applyAliases honours the older variable names the frontend deployment used.
func applyAliases(cfg *Config) {
	if !hasEnv("ANALYSIS_TIMEOUT") {
		setDurationFromEnv("BACKEND_TIMEOUT", &cfg.AnalysisTimeout)
	}

	if !hasEnv("MAX_UPLOAD_BYTES") {
		setMegabytesFromEnv("MAX_UPLOAD_MB", &cfg.MaxUploadBytes)
	}

	if !hasEnv("LLM_API_KEY") {
		setStringFromEnv("OPENAI_API_KEY", &cfg.LLMAPIKey)
	}
}

func hasEnv(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

func setStringFromEnv(key string, target *string) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}

	val = strings.TrimSpace(val)
	if val == "" {
		return
	}

	*target = val
}

func setDurationFromEnv(key string, target *time.Duration) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}

	parsed, err := time.ParseDuration(strings.TrimSpace(val))
	if err != nil {
		return
	}

	*target = parsed
}

func setMegabytesFromEnv(key string, target *int64) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}

	parsed, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
	if err != nil || parsed <= 0 {
		return
	}

	*target = parsed * bytesPerMegabyte
}
