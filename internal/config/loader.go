package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ENSCOPE_"

// Backend names accepted by llm.backend.
const (
	BackendAnthropic = "anthropic"
	BackendOpenAI    = "openai"
)

const (
	defaultPort             = 3001
	defaultModel            = "claude-sonnet-4-20250514"
	defaultOpenAIModel      = "gpt-4o"
	defaultMaxTokens        = 1024
	defaultReportMaxTokens  = 2048
	defaultLLMTimeout       = 60 * time.Second
	defaultReadTimeout      = 30 * time.Second
	defaultWriteTimeout     = 120 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultBcryptCost       = 10
	maxConfigFileSize       = 1024 * 1024
	defaultConfigFileName   = "config.yaml"
	defaultDatabaseFileName = "enscope.db"
)

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load reads configuration with the precedence environment > file > defaults.
//
// An explicit configPath must exist. With an empty configPath,
// ~/.enscope/config.yaml is used when present.
//
//	ENSCOPE_SERVER_PORT        -> server.port
//	ENSCOPE_LLM_API_KEY        -> llm.api_key
//	ENSCOPE_SCORING_CONCURRENCY -> scoring.concurrency
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	path, required := configPath, configPath != ""
	if path == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, defaultConfigFileName)
	}

	content, err := readConfigFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !required:
	case err != nil:
		return nil, err
	default:
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	applyProviderKeys(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// DefaultDir returns ~/.enscope.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".enscope"), nil
}

// envKey maps ENSCOPE_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, field, ok := strings.Cut(lower, "_")
	if !ok {
		return lower
	}
	return section + "." + field
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path %s is a directory", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return data, nil
}

func applyDefaults(cfg *Config) error {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.Database.Path == "" {
		dir, err := DefaultDir()
		if err != nil {
			return err
		}
		cfg.Database.Path = filepath.Join(dir, defaultDatabaseFileName)
	}

	if cfg.LLM.Backend == "" {
		cfg.LLM.Backend = BackendAnthropic
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaultModel
		if cfg.LLM.Backend == BackendOpenAI {
			cfg.LLM.Model = defaultOpenAIModel
		}
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = defaultMaxTokens
	}
	if cfg.LLM.ReportMaxTokens == 0 {
		cfg.LLM.ReportMaxTokens = defaultReportMaxTokens
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = defaultLLMTimeout
	}

	if cfg.Scoring.Concurrency == 0 {
		cfg.Scoring.Concurrency = 1
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = defaultBcryptCost
	}
	return nil
}

// applyProviderKeys falls back to the provider's conventional variable
// when no key is configured.
func applyProviderKeys(cfg *Config) {
	if cfg.LLM.APIKey != "" {
		return
	}
	name := "ANTHROPIC_API_KEY"
	if cfg.LLM.Backend == BackendOpenAI {
		name = "OPENAI_API_KEY"
	}
	cfg.LLM.APIKey = Secret(os.Getenv(name))
}
