package llm

import "errors"

var (
	// ErrDisabled indicates LLM features are turned off in configuration.
	ErrDisabled = errors.New("llm is disabled")

	// ErrNotConfigured indicates the provider has no API key.
	ErrNotConfigured = errors.New("llm api key is not configured")

	// ErrOllamaUnavailable indicates the Ollama server is unreachable.
	ErrOllamaUnavailable = errors.New("ollama server unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)
