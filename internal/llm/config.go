package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskSummary TaskType = "summary"
)

// Provider selects the text-generation backend.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOllama Provider = "ollama"
)

const (
	defaultGeminiModel    = "gemini-2.5-flash"
	defaultOllamaModel    = "llama3.2"
	defaultOllamaEndpoint = "http://localhost:11434"
)

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled     bool
	LogCalls    bool
	Provider    Provider
	APIKey      string
	Endpoint    string // empty uses the provider's public endpoint
	Model       string
	Temperature float64
	TimeoutMs   int // 0 means no client-side timeout
	MaxRetries  int
}

// DefaultConfig returns an LLMConfig for the hosted Gemini model.
// Calls are not retried and have no client-side timeout; a failed call
// degrades to a fixed message instead.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:     true,
		LogCalls:    false,
		Provider:    ProviderGemini,
		Model:       defaultGeminiModel,
		Temperature: 0.7,
		TimeoutMs:   0,
		MaxRetries:  0,
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("PROFLUXO_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PROFLUXO_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PROFLUXO_LLM_PROVIDER"); v != "" {
		switch p := Provider(strings.ToLower(v)); p {
		case ProviderGemini, ProviderOllama:
			cfg.Provider = p
		}
	}
	if cfg.Provider == ProviderOllama {
		cfg.Model = defaultOllamaModel
		cfg.Endpoint = defaultOllamaEndpoint
	}

	cfg.APIKey = firstEnv("PROFLUXO_LLM_API_KEY", "GEMINI_API_KEY", "API_KEY")
	if v := os.Getenv("PROFLUXO_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("PROFLUXO_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("PROFLUXO_LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 2 {
			cfg.Temperature = f
		}
	}
	if v := os.Getenv("PROFLUXO_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("PROFLUXO_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	return cfg
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}
