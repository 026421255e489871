package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "NEWS_ANALYZER_CONFIG"
	llmAPIKeyEnv      = "LLM_API_KEY"
	llmProjectIDEnv   = "LLM_PROJECT_ID"
	llmProviderEnv    = "LLM_PROVIDER"
	llmModelEnv       = "LLM_MODEL"
	llmBaseURLEnv     = "LLM_BASE_URL"
	legacyAPIKeyEnv   = "PREM_API_KEY"
	legacyProjectEnv  = "PREM_PROJECT_ID"
	newsAPIKeyEnv     = "NEWS_API_KEY"
	logLevelEnv       = "LOG_LEVEL"
	serverAddrEnv     = "NEWS_ANALYZER_ADDR"
	defaultLogLevel   = "info"
	defaultServerAddr = ":8080"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Search     SearchConfig     `yaml:"search"`
	Extraction ExtractionConfig `yaml:"extraction"`
	Completion CompletionConfig `yaml:"completion"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Server     ServerConfig     `yaml:"server"`
}

// LoggingConfig selects slog level and handler format (text or json).
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SearchConfig describes the news search service and query construction.
type SearchConfig struct {
	BaseURL    string   `yaml:"baseUrl"`
	APIKey     string   `yaml:"apiKey"`
	Strategy   string   `yaml:"strategy"`
	WindowDays int      `yaml:"windowDays"`
	PageSize   int      `yaml:"pageSize"`
	Keywords   []string `yaml:"keywords"`
}

// Window converts WindowDays into the recency filter; zero disables it.
func (s SearchConfig) Window() time.Duration {
	if s.WindowDays <= 0 {
		return 0
	}
	return time.Duration(s.WindowDays) * 24 * time.Hour
}

// ExtractionConfig picks the page extraction strategy.
type ExtractionConfig struct {
	Strategy  string `yaml:"strategy"`
	MinLength int    `yaml:"minLength"`
}

// CompletionConfig defines how to contact the language-model completion service.
type CompletionConfig struct {
	Provider    string  `yaml:"provider"`
	BaseURL     string  `yaml:"baseUrl"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"apiKey"`
	ProjectID   string  `yaml:"projectId"`
	Template    string  `yaml:"template"`
	// Temperature keeps the default when the key is absent; an explicit 0 is honored.
	Temperature float64 `yaml:"temperature"`
	// MaxTokens overrides the template's response cap when positive.
	MaxTokens int64 `yaml:"maxTokens"`
}

// PipelineConfig bounds a single run.
type PipelineConfig struct {
	MaxArticles int           `yaml:"maxArticles"`
	Concurrency int           `yaml:"concurrency"`
	CallTimeout time.Duration `yaml:"callTimeout"`
}

// ServerConfig configures the web form surface.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			// Zero is a valid temperature, so an absent key must keep the default.
			fileCfg := Config{Completion: CompletionConfig{Temperature: cfg.Completion.Temperature}}
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := firstEnv(llmAPIKeyEnv, legacyAPIKeyEnv); v != "" {
		c.Completion.APIKey = v
	}
	if v := firstEnv(llmProjectIDEnv, legacyProjectEnv); v != "" {
		c.Completion.ProjectID = v
	}
	if v := os.Getenv(llmProviderEnv); v != "" {
		c.Completion.Provider = v
	}
	if v := os.Getenv(llmModelEnv); v != "" {
		c.Completion.Model = v
	}
	if v := os.Getenv(llmBaseURLEnv); v != "" {
		c.Completion.BaseURL = v
	}
	if v := os.Getenv(newsAPIKeyEnv); v != "" {
		c.Search.APIKey = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(serverAddrEnv); v != "" {
		c.Server.Addr = v
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// mergeConfig copies every non-zero field of override onto base. Temperature is
// always copied; callers seed override with the base value.
func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Search.BaseURL != "" {
		base.Search.BaseURL = override.Search.BaseURL
	}
	if override.Search.APIKey != "" {
		base.Search.APIKey = override.Search.APIKey
	}
	if override.Search.Strategy != "" {
		base.Search.Strategy = override.Search.Strategy
	}
	if override.Search.WindowDays != 0 {
		base.Search.WindowDays = override.Search.WindowDays
	}
	if override.Search.PageSize != 0 {
		base.Search.PageSize = override.Search.PageSize
	}
	if len(override.Search.Keywords) > 0 {
		base.Search.Keywords = override.Search.Keywords
	}

	if override.Extraction.Strategy != "" {
		base.Extraction.Strategy = override.Extraction.Strategy
	}
	if override.Extraction.MinLength != 0 {
		base.Extraction.MinLength = override.Extraction.MinLength
	}

	if override.Completion.Provider != "" {
		base.Completion.Provider = override.Completion.Provider
	}
	if override.Completion.BaseURL != "" {
		base.Completion.BaseURL = override.Completion.BaseURL
	}
	if override.Completion.Model != "" {
		base.Completion.Model = override.Completion.Model
	}
	if override.Completion.APIKey != "" {
		base.Completion.APIKey = override.Completion.APIKey
	}
	if override.Completion.ProjectID != "" {
		base.Completion.ProjectID = override.Completion.ProjectID
	}
	if override.Completion.Template != "" {
		base.Completion.Template = override.Completion.Template
	}
	base.Completion.Temperature = override.Completion.Temperature
	if override.Completion.MaxTokens != 0 {
		base.Completion.MaxTokens = override.Completion.MaxTokens
	}

	if override.Pipeline.MaxArticles != 0 {
		base.Pipeline.MaxArticles = override.Pipeline.MaxArticles
	}
	if override.Pipeline.Concurrency != 0 {
		base.Pipeline.Concurrency = override.Pipeline.Concurrency
	}
	if override.Pipeline.CallTimeout != 0 {
		base.Pipeline.CallTimeout = override.Pipeline.CallTimeout
	}

	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: defaultLogLevel, Format: "text"},
		Search: SearchConfig{
			BaseURL:    "https://newsapi.org",
			Strategy:   "financial",
			WindowDays: 7,
			PageSize:   20,
		},
		Extraction: ExtractionConfig{Strategy: "paragraphs", MinLength: 200},
		Completion: CompletionConfig{
			Provider:    ProviderOpenAI,
			Template:    "sentiment",
			Temperature: 0.7,
		},
		Pipeline: PipelineConfig{
			MaxArticles: 3,
			Concurrency: 1,
			CallTimeout: 20 * time.Second,
		},
		Server: ServerConfig{Addr: defaultServerAddr},
	}
}
