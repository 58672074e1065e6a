// Package passphrase hashes project passphrases with bcrypt.
package passphrase

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/example/enscope/internal/ports/secondary"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

// Hasher implements secondary.PassphraseHasher.
type Hasher struct {
	cost int
}

// NewHasher creates a hasher. Costs outside bcrypt's range use DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of passphrase.
func (h *Hasher) Hash(passphrase string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(passphrase), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passphrase: %w", err)
	}
	return string(out), nil
}

// Matches reports whether passphrase matches hash.
func (h *Hasher) Matches(hash, passphrase string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passphrase)) == nil
}

var _ secondary.PassphraseHasher = (*Hasher)(nil)
