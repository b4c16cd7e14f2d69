package config

import (
	"os"
	"testing"
	"time"
)

// Test environment variable keys.
const (
	testEnvAnalysisBaseURL = "ANALYSIS_BASE_URL"
	testEnvMaxUploadBytes  = "MAX_UPLOAD_BYTES"
	testEnvLLMAPIKey       = "LLM_API_KEY"
)

// Test values.
const (
	testAnalysisBaseURL = "http://localhost:8000"
	testErrLoad         = "Load() error = %v"
	testDefaultEnv      = "local"
	testDefaultModel    = "gpt-4o-mini"
	testDefaultLanguage = "Thai"
)

func setRequiredEnvVars(t *testing.T) {
	t.Helper()

	t.Setenv(testEnvAnalysisBaseURL, testAnalysisBaseURL)
}

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()

	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	unsetEnv(t, testEnvAnalysisBaseURL)

	_, err := Load()
	if err == nil {
		t.Error("expected error for missing ANALYSIS_BASE_URL")
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	setRequiredEnvVars(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf(testErrLoad, err)
	}

	if cfg.AnalysisBaseURL != testAnalysisBaseURL {
		t.Errorf("AnalysisBaseURL = %q, want %q", cfg.AnalysisBaseURL, testAnalysisBaseURL)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnvVars(t)

	// Explicitly unset variables that might be in .env to test actual defaults
	unsetEnv(t, "APP_ENV", "LLM_MODEL", "HTTP_PORT", "HEALTH_PORT", "ANALYSIS_TIMEOUT",
		"BACKEND_TIMEOUT", testEnvMaxUploadBytes, "MAX_UPLOAD_MB", "SUMMARY_LANGUAGE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf(testErrLoad, err)
	}

	if cfg.AppEnv != testDefaultEnv {
		t.Errorf("AppEnv default = %q, want %q", cfg.AppEnv, testDefaultEnv)
	}

	if cfg.LLMModel != testDefaultModel {
		t.Errorf("LLMModel default = %q, want %q", cfg.LLMModel, testDefaultModel)
	}

	if cfg.HTTPPort != 5173 {
		t.Errorf("HTTPPort default = %d, want %d", cfg.HTTPPort, 5173)
	}

	if cfg.HealthPort != 8080 {
		t.Errorf("HealthPort default = %d, want %d", cfg.HealthPort, 8080)
	}

	if cfg.AnalysisTimeout != 10*time.Minute {
		t.Errorf("AnalysisTimeout default = %v, want %v", cfg.AnalysisTimeout, 10*time.Minute)
	}

	if cfg.MaxUploadBytes != 20*bytesPerMegabyte {
		t.Errorf("MaxUploadBytes default = %d, want %d", cfg.MaxUploadBytes, 20*bytesPerMegabyte)
	}

	if cfg.SummaryLanguage != testDefaultLanguage {
		t.Errorf("SummaryLanguage default = %q, want %q", cfg.SummaryLanguage, testDefaultLanguage)
	}
}

func TestLoad_Aliases(t *testing.T) {
	setRequiredEnvVars(t)
	unsetEnv(t, testEnvMaxUploadBytes, "ANALYSIS_TIMEOUT", testEnvLLMAPIKey)
	t.Setenv("MAX_UPLOAD_MB", "5")
	t.Setenv("BACKEND_TIMEOUT", "45s")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf(testErrLoad, err)
	}

	if cfg.MaxUploadBytes != 5*bytesPerMegabyte {
		t.Errorf("MaxUploadBytes = %d, want %d", cfg.MaxUploadBytes, 5*bytesPerMegabyte)
	}

	if cfg.AnalysisTimeout != 45*time.Second {
		t.Errorf("AnalysisTimeout = %v, want %v", cfg.AnalysisTimeout, 45*time.Second)
	}

	if cfg.LLMAPIKey != "sk-test" {
		t.Errorf("LLMAPIKey = %q, want %q", cfg.LLMAPIKey, "sk-test")
	}
}

func TestLoad_AliasDoesNotOverridePrimary(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv(testEnvMaxUploadBytes, "1024")
	t.Setenv("MAX_UPLOAD_MB", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf(testErrLoad, err)
	}

	if cfg.MaxUploadBytes != 1024 {
		t.Errorf("MaxUploadBytes = %d, want %d", cfg.MaxUploadBytes, 1024)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non-numeric port", key: "HTTP_PORT", value: "not-a-number"},
		{name: "zero upload limit", key: testEnvMaxUploadBytes, value: "0"},
		{name: "negative rps", key: "ANALYSIS_RPS", value: "-1"},
		{name: "port clash", key: "HTTP_PORT", value: "8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnvVars(t)
			unsetEnv(t, "HEALTH_PORT")
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}
