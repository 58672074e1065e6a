// Package config loads enscope configuration from a YAML file, a .env file
// and ENSCOPE_* environment variables.
package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/example/enscope/internal/core/scoring"
)

// Config is the complete application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	LLM      LLMConfig      `koanf:"llm"`
	Prompts  PromptsConfig  `koanf:"prompts"`
	Scoring  ScoringConfig  `koanf:"scoring"`
	Logging  LoggingConfig  `koanf:"logging"`
	Auth     AuthConfig     `koanf:"auth"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig locates the SQLite file.
type DatabaseConfig struct {
	Path string `koanf:"path"`
}

// LLMConfig selects the text generation backend.
type LLMConfig struct {
	Backend           string        `koanf:"backend"`
	Model             string        `koanf:"model"`
	APIKey            Secret        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url"`
	MaxTokens         int           `koanf:"max_tokens"`
	ReportMaxTokens   int           `koanf:"report_max_tokens"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerMinute int           `koanf:"requests_per_minute"`
}

// PromptsConfig points at the directory of prompt overrides.
type PromptsConfig struct {
	Dir string `koanf:"dir"`
}

// ScoringConfig tunes batch scoring.
type ScoringConfig struct {
	Concurrency int           `koanf:"concurrency"`
	Penalty     PenaltyConfig `koanf:"penalty"`
}

// PenaltyConfig is the configurable form of scoring.PenaltyPolicy.
// Leaving it out entirely selects the default policy.
type PenaltyConfig struct {
	GapTypes []string            `koanf:"gap_types"`
	Severity string              `koanf:"severity"`
	Rules    []PenaltyRuleConfig `koanf:"rules"`
}

// PenaltyRuleConfig is one row of the penalty table.
type PenaltyRuleConfig struct {
	GapWorkflow    int `koanf:"gap_workflow"`
	ScoredWorkflow int `koanf:"scored_workflow"`
	Penalty        int `koanf:"penalty"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json or console
}

// AuthConfig configures passphrase hashing.
type AuthConfig struct {
	BcryptCost int `koanf:"bcrypt_cost"`
}

// Secret is a string that is redacted when printed.
type Secret string

// String implements fmt.Stringer.
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}

// Value returns the underlying secret.
func (s Secret) Value() string {
	return string(s)
}

// PenaltyPolicy converts the penalty section into a scoring policy.
func (c *Config) PenaltyPolicy() scoring.PenaltyPolicy {
	p := c.Scoring.Penalty
	if p.GapTypes == nil && p.Severity == "" && p.Rules == nil {
		return scoring.DefaultPenaltyPolicy()
	}

	policy := scoring.PenaltyPolicy{
		GapTypes: slices.Clone(p.GapTypes),
		Severity: p.Severity,
	}
	for _, r := range p.Rules {
		policy.Rules = append(policy.Rules, scoring.PenaltyRule{
			GapWorkflowIndex:    r.GapWorkflow,
			ScoredWorkflowIndex: r.ScoredWorkflow,
			Penalty:             r.Penalty,
		})
	}
	return policy
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	switch c.LLM.Backend {
	case BackendAnthropic, BackendOpenAI:
	default:
		return fmt.Errorf("llm.backend must be %q or %q, got %q", BackendAnthropic, BackendOpenAI, c.LLM.Backend)
	}
	if c.LLM.MaxTokens < 1 || c.LLM.ReportMaxTokens < 1 {
		return fmt.Errorf("llm token limits must be positive")
	}
	if c.LLM.RequestsPerMinute < 0 {
		return fmt.Errorf("llm.requests_per_minute must not be negative")
	}
	if c.Scoring.Concurrency < 1 {
		return fmt.Errorf("scoring.concurrency must be at least 1")
	}
	if err := c.PenaltyPolicy().Validate(); err != nil {
		return fmt.Errorf("scoring.penalty: %w", err)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
