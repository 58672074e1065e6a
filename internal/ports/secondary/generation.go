package secondary

import (
	"context"

	"github.com/example/enscope/internal/core/prompt"
)

// TextGenerator defines the port to the external language model.
// Implementations return the generated text or an error; callers decide
// whether a failure is fatal to the request.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// GenerateRequest is one system+user exchange.
type GenerateRequest struct {
	Operation string // assist, score, report; used for metrics and logs
	System    string
	User      string
	MaxTokens int
}

// PromptSource loads the configurable prompt texts.
type PromptSource interface {
	// Load returns the global and per-workflow texts, falling back to
	// built-in defaults for anything not configured.
	Load(ctx context.Context) (prompt.Texts, error)
}

// PassphraseHasher hashes and verifies project passphrases.
type PassphraseHasher interface {
	Hash(passphrase string) (string, error)
	Matches(hash, passphrase string) bool
}
