package llm

import (
	"fmt"

	"NewsAnalyzer/internal/config"
	"NewsAnalyzer/internal/ports"
)

// New selects the completion client for cfg.Provider.
func New(cfg config.CompletionConfig) (ports.ChatClient, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		return NewOpenAIClient(cfg), nil
	case config.ProviderAnthropic:
		return NewAnthropicClient(cfg), nil
	default:
		return nil, fmt.Errorf("completion provider %s is not supported", cfg.Provider)
	}
}
