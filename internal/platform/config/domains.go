package config

import "time"

// AnalysisConfig holds analysis backend client settings.
type AnalysisConfig struct {
	BaseURL          string
	Timeout          time.Duration
	RPS              float64
	CircuitThreshold int
	CircuitTimeout   time.Duration
	MaxUploadBytes   int64
}

// DashboardConfig holds dashboard HTTP settings.
type DashboardConfig struct {
	Port              int
	CORSAllowedOrigin string
	RateLimitRPM      int
	RateBurst         int
	MaxUploadBytes    int64
}

// LLMConfig holds executive summary provider settings.
type LLMConfig struct {
	APIKey           string
	BaseURL          string
	Model            string
	RPS              float64
	Timeout          time.Duration
	CircuitThreshold int
	CircuitTimeout   time.Duration
	Language         string
}

// AnalysisCfg returns the analysis backend configuration.
func (c *Config) AnalysisCfg() AnalysisConfig {
	return AnalysisConfig{
		BaseURL:          c.AnalysisBaseURL,
		Timeout:          c.AnalysisTimeout,
		RPS:              c.AnalysisRPS,
		CircuitThreshold: c.AnalysisCircuitThreshold,
		CircuitTimeout:   c.AnalysisCircuitTimeout,
		MaxUploadBytes:   c.MaxUploadBytes,
	}
}

// DashboardCfg returns the dashboard configuration.
func (c *Config) DashboardCfg() DashboardConfig {
	return DashboardConfig{
		Port:              c.HTTPPort,
		CORSAllowedOrigin: c.CORSAllowedOrigin,
		RateLimitRPM:      c.DashboardRateLimitRPM,
		RateBurst:         c.DashboardRateBurst,
		MaxUploadBytes:    c.MaxUploadBytes,
	}
}

// LLMCfg returns the executive summary provider configuration.
func (c *Config) LLMCfg() LLMConfig {
	return LLMConfig{
		APIKey:           c.LLMAPIKey,
		BaseURL:          c.LLMBaseURL,
		Model:            c.LLMModel,
		RPS:              c.LLMRPS,
		Timeout:          c.LLMTimeout,
		CircuitThreshold: c.LLMCircuitThreshold,
		CircuitTimeout:   c.LLMCircuitTimeout,
		Language:         c.SummaryLanguage,
	}
}
