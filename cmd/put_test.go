package cmd

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/PolarWolf314/ssh-keys/internal/bundle"
	"github.com/PolarWolf314/ssh-keys/internal/store"
)

func makeKeyDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}
	return dir
}

func storedBundle(t *testing.T, mem *store.Memory, id string) bundle.Bundle {
	t.Helper()
	payload, ok := mem.Get(id)
	if !ok {
		t.Fatalf("secret %s was not written", id)
	}
	b, err := bundle.Decode(payload)
	if err != nil {
		t.Fatalf("stored payload does not decode: %v", err)
	}
	return b
}

func TestPutCommand_ConfirmAfterRetry(t *testing.T) {
	mem := setupCommandTest(t)
	dir := makeKeyDir(t, map[string]string{"id_rsa": "A", "id_rsa.pub": "B"})

	output, err := executeCommand("maybe\nYES\n", "put", dir)
	if err != nil {
		t.Fatalf("put failed: %v\nOutput: %s", err, output)
	}

	for _, want := range []string{
		"Are you sure you want to override 'ssh-keys' with the following:",
		"  - id_rsa\n",
		"  - id_rsa.pub\n",
		"This will delete the existing contents of ssh-keys",
		"Uploaded 2 files to 'ssh-keys'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if strings.Count(output, "yes/no: ") != 2 {
		t.Errorf("expected two prompts:\n%s", output)
	}

	want := bundle.Bundle{"id_rsa": "A", "id_rsa.pub": "B"}
	if got := storedBundle(t, mem, "ssh-keys"); !reflect.DeepEqual(got, want) {
		t.Errorf("stored bundle = %v, want %v", got, want)
	}
}

func TestPutCommand_Decline(t *testing.T) {
	mem := setupCommandTest(t)
	dir := makeKeyDir(t, map[string]string{"id_rsa": "A"})

	output, err := executeCommand("no\n", "put", dir)
	if err != nil {
		t.Fatalf("declining should not be an error: %v", err)
	}
	if !strings.Contains(output, "Aborted. 'ssh-keys' was not changed") {
		t.Errorf("unexpected output:\n%s", output)
	}
	if fetch, replace := mem.Calls(); fetch != 0 || replace != 0 {
		t.Errorf("store calls = %d/%d, want none", fetch, replace)
	}
}

func TestPutCommand_EndOfInput(t *testing.T) {
	mem := setupCommandTest(t)
	dir := makeKeyDir(t, map[string]string{"id_rsa": "A"})

	if _, err := executeCommand("", "put", dir); err == nil {
		t.Fatal("put with no answer should fail")
	}
	if _, replace := mem.Calls(); replace != 0 {
		t.Errorf("replace calls = %d, want 0", replace)
	}
}

func TestPutCommand_ExcludePatterns(t *testing.T) {
	files := map[string]string{"id_rsa": "A", "known_hosts": "h", "known_hosts.old": "o", "config": "c"}

	t.Run("config file", func(t *testing.T) {
		mem := setupCommandTest(t)
		writeConfigFile(t, "[put]\nexclude = [\"known_hosts*\"]\n")

		if output, err := executeCommand("y\n", "put", makeKeyDir(t, files)); err != nil {
			t.Fatalf("put failed: %v\nOutput: %s", err, output)
		}
		want := bundle.Bundle{"id_rsa": "A", "config": "c"}
		if got := storedBundle(t, mem, "ssh-keys"); !reflect.DeepEqual(got, want) {
			t.Errorf("stored bundle = %v, want %v", got, want)
		}
	})

	t.Run("flag replaces config file", func(t *testing.T) {
		mem := setupCommandTest(t)
		writeConfigFile(t, "[put]\nexclude = [\"known_hosts*\"]\n")

		if output, err := executeCommand("y\n", "put", "--exclude", "config", makeKeyDir(t, files)); err != nil {
			t.Fatalf("put failed: %v\nOutput: %s", err, output)
		}
		want := bundle.Bundle{"id_rsa": "A", "known_hosts": "h", "known_hosts.old": "o"}
		if got := storedBundle(t, mem, "ssh-keys"); !reflect.DeepEqual(got, want) {
			t.Errorf("stored bundle = %v, want %v", got, want)
		}
	})
}

func TestPutCommand_DryRun(t *testing.T) {
	mem := setupCommandTest(t)
	dir := makeKeyDir(t, map[string]string{"id_rsa": "A", "id_rsa.pub": "B"})

	output, err := executeCommand("", "put", "--dry-run", dir)
	if err != nil {
		t.Fatalf("put --dry-run failed: %v", err)
	}
	if !strings.Contains(output, "Would upload 2 files") || strings.Contains(output, "yes/no") {
		t.Errorf("unexpected output:\n%s", output)
	}
	if fetch, replace := mem.Calls(); fetch != 0 || replace != 0 {
		t.Errorf("store calls = %d/%d, want none", fetch, replace)
	}
}

func TestPutCommand_DeterministicToken(t *testing.T) {
	mem := setupCommandTest(t)
	dir := makeKeyDir(t, map[string]string{"id_rsa": "A"})

	if _, err := executeCommand("y\n", "put", "--deterministic-token", dir); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	first := mem.LastToken()

	ResetGlobalState()
	if _, err := executeCommand("y\n", "put", "--deterministic-token", dir); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if second := mem.LastToken(); second != first {
		t.Errorf("tokens differ across reruns: %s vs %s", first, second)
	}
}
