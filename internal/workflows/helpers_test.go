package workflows

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/ssh-keys/internal/bundle"
	"github.com/PolarWolf314/ssh-keys/internal/configs"
	"github.com/PolarWolf314/ssh-keys/internal/confirm"
	"github.com/PolarWolf314/ssh-keys/internal/store"
)

const testSecretID = "ssh-keys"

// useTempSettings points configs.Current at temporary directories so audit
// entries never land in the real data directory.
func useTempSettings(t *testing.T) *configs.Settings {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	root := t.TempDir()

	original := configs.Current
	configs.Current = &configs.Settings{
		ConfigPath: filepath.Join(root, "config", "config.toml"),
		DataPath:   filepath.Join(root, "data"),
	}
	t.Cleanup(func() {
		configs.Current = original
	})

	return configs.Current
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
}

// memoryStoreWith returns a Memory store holding b under testSecretID.
func memoryStoreWith(t *testing.T, b bundle.Bundle) *store.Memory {
	t.Helper()
	payload, err := bundle.Encode(b)
	if err != nil {
		t.Fatalf("Failed to encode bundle: %v", err)
	}
	s := store.NewMemory()
	s.Set(testSecretID, payload)
	return s
}

// scriptedPrompter answers the confirmation prompt with the given lines.
func scriptedPrompter(lines ...string) (confirm.Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	return confirm.NewStreamPrompter(in, &out), &out
}

func assertNoStoreCalls(t *testing.T, s *store.Memory) {
	t.Helper()
	if fetch, replace := s.Calls(); fetch != 0 || replace != 0 {
		t.Errorf("store calls = fetch %d, replace %d; want none", fetch, replace)
	}
}
