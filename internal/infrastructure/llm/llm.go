package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"skillsync/internal/config"
)

var (
	ErrNotConfigured = errors.New("llm not configured")
	ErrBadResponse   = errors.New("llm returned an unusable response")
)

// Completer sends one prompt and returns the raw model text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// New picks the provider named in cfg. An empty API key yields
// ErrNotConfigured so the server can start without CV analysis.
func New(ctx context.Context, cfg config.LLMConfig) (Completer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	switch cfg.Provider {
	case config.LLMProviderGemini:
		return NewGeminiClient(ctx, cfg)
	case config.LLMProviderOpenAI, "":
		return NewOpenAIClient(cfg, &http.Client{Timeout: cfg.Timeout}), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// CleanJSON strips the markdown code fence models like to wrap JSON in.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")

	return strings.TrimSpace(clean)
}
