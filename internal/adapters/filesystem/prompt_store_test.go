package filesystem_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/enscope/internal/adapters/filesystem"
	"github.com/example/enscope/internal/core/prompt"
)

func TestPromptStore_DefaultsWithoutDir(t *testing.T) {
	store := filesystem.NewPromptStore("")

	texts, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if texts.Global != prompt.DefaultGlobal {
		t.Error("expected default global prompt")
	}
	if texts.Workflows[5] != prompt.DefaultWorkflow(5) {
		t.Error("expected default workflow 5 prompt")
	}
}

func TestPromptStore_Overrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "global-system-context.txt", "  Custom global\n")
	writeFile(t, dir, "workflow-3.txt", "Custom correlation guidance")
	writeFile(t, dir, "workflow-4.txt", "   \n")

	texts, err := filesystem.NewPromptStore(dir).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if texts.Global != "Custom global" {
		t.Errorf("expected trimmed override, got %q", texts.Global)
	}
	if texts.Workflows[3] != "Custom correlation guidance" {
		t.Errorf("unexpected workflow 3 text %q", texts.Workflows[3])
	}
	if texts.Workflows[4] != prompt.DefaultWorkflow(4) {
		t.Error("blank file should fall back to the default")
	}
	if texts.Workflows[1] != prompt.DefaultWorkflow(1) {
		t.Error("missing file should fall back to the default")
	}
}

func TestPromptStore_UnreadableFile(t *testing.T) {
	dir := t.TempDir()
	// A directory where a file is expected cannot be read.
	if err := os.Mkdir(filepath.Join(dir, "workflow-2.txt"), 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := filesystem.NewPromptStore(dir).Load(context.Background()); err == nil {
		t.Error("expected read error")
	}
}

func TestPromptStore_WriteDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prompts")
	store := filesystem.NewPromptStore(dir)

	written, err := store.WriteDefaults()
	if err != nil {
		t.Fatalf("WriteDefaults failed: %v", err)
	}
	if len(written) != 9 {
		t.Errorf("expected 9 files, got %d", len(written))
	}

	writeFile(t, dir, "workflow-1.txt", "edited")
	written, err = store.WriteDefaults()
	if err != nil {
		t.Fatalf("second WriteDefaults failed: %v", err)
	}
	if len(written) != 0 {
		t.Errorf("expected existing files to be kept, wrote %v", written)
	}

	texts, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if texts.Workflows[1] != "edited" || texts.Global != prompt.DefaultGlobal {
		t.Errorf("unexpected texts after round trip: %+v", texts)
	}
}

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}
