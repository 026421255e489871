package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// ErrConfiguration is matched by every ConfigError.
var ErrConfiguration = errors.New("configuration error")

// ConfigError lists the settings that stop a run before any stage starts.
type ConfigError struct {
	Missing []string
	Invalid []string
}

func (e *ConfigError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid "+strings.Join(e.Invalid, ", "))
	}
	return fmt.Sprintf("%v: %s", ErrConfiguration, strings.Join(parts, "; "))
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// Validate checks that every secret the pipeline needs is present.
// The project identifier is only meaningful for the openai provider.
func (c Config) Validate() error {
	cerr := &ConfigError{}

	if c.Completion.APIKey == "" {
		cerr.Missing = append(cerr.Missing, llmAPIKeyEnv)
	}
	switch c.Completion.Provider {
	case ProviderOpenAI, "":
		if c.Completion.ProjectID == "" {
			cerr.Missing = append(cerr.Missing, llmProjectIDEnv)
		}
	case ProviderAnthropic:
	default:
		cerr.Invalid = append(cerr.Invalid, "completion.provider="+c.Completion.Provider)
	}
	if c.Search.APIKey == "" {
		cerr.Missing = append(cerr.Missing, newsAPIKeyEnv)
	}

	if c.Pipeline.MaxArticles <= 0 {
		cerr.Invalid = append(cerr.Invalid, "pipeline.maxArticles")
	}
	if c.Completion.Temperature < 0 || c.Completion.Temperature > 2 {
		cerr.Invalid = append(cerr.Invalid, "completion.temperature")
	}

	if len(cerr.Missing) == 0 && len(cerr.Invalid) == 0 {
		return nil
	}
	return cerr
}
