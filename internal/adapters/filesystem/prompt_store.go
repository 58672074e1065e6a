// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/enscope/internal/core/prompt"
	"github.com/example/enscope/internal/ports/secondary"
)

const (
	globalPromptFile   = "global-system-context.txt"
	workflowPromptFile = "workflow-%d.txt"
	workflowCount      = 8
)

// PromptStore implements secondary.PromptSource from a directory of text files.
// Missing files fall back to the built-in defaults; files are re-read on every
// Load so edits apply without a restart.
type PromptStore struct {
	dir string
}

// NewPromptStore creates a prompt store rooted at dir. An empty dir serves
// the defaults only.
func NewPromptStore(dir string) *PromptStore {
	return &PromptStore{dir: dir}
}

// Dir returns the configured prompt directory.
func (s *PromptStore) Dir() string {
	return s.dir
}

// Load implements secondary.PromptSource.
func (s *PromptStore) Load(ctx context.Context) (prompt.Texts, error) {
	texts := prompt.Defaults()
	if s.dir == "" {
		return texts, nil
	}

	global, ok, err := s.readFile(globalPromptFile)
	if err != nil {
		return prompt.Texts{}, err
	}
	if ok {
		texts.Global = global
	}

	for i := 1; i <= workflowCount; i++ {
		if err := ctx.Err(); err != nil {
			return prompt.Texts{}, err
		}
		text, ok, err := s.readFile(fmt.Sprintf(workflowPromptFile, i))
		if err != nil {
			return prompt.Texts{}, err
		}
		if ok {
			texts.Workflows[i] = text
		}
	}

	return texts, nil
}

// WriteDefaults writes the built-in texts into the directory, leaving existing
// files alone. Returns the paths written.
func (s *PromptStore) WriteDefaults() ([]string, error) {
	if s.dir == "" {
		return nil, errors.New("no prompt directory configured")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create prompt directory: %w", err)
	}

	defaults := prompt.Defaults()
	files := map[string]string{globalPromptFile: defaults.Global}
	for i := 1; i <= workflowCount; i++ {
		files[fmt.Sprintf(workflowPromptFile, i)] = defaults.Workflows[i]
	}

	var written []string
	for name, body := range files {
		path := filepath.Join(s.dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(body+"\n"), 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", name, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// readFile returns the trimmed content and whether a non-empty file existed.
func (s *PromptStore) readFile(name string) (string, bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read prompt %s: %w", name, err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", false, nil
	}
	return text, true, nil
}

var _ secondary.PromptSource = (*PromptStore)(nil)
