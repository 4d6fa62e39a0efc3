package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/ssh-keys/internal/bundle"
	"github.com/PolarWolf314/ssh-keys/internal/configs"
	kerrors "github.com/PolarWolf314/ssh-keys/internal/errors"
	"github.com/PolarWolf314/ssh-keys/internal/keyfiles"
	"github.com/PolarWolf314/ssh-keys/internal/store"
)

func TestRootCommand_Banner(t *testing.T) {
	setupCommandTest(t)

	output, err := executeCommand("")
	if err != nil {
		t.Fatalf("root command failed: %v", err)
	}
	if !strings.Contains(output, "ssh-keys --help") {
		t.Errorf("banner output missing help hint:\n%s", output)
	}
}

func TestListCommand(t *testing.T) {
	mem := setupCommandTest(t)
	storeBundle(t, mem, "ssh-keys", bundle.Bundle{"id_rsa": "A", "id_rsa.pub": "B"})

	output, err := executeCommand("", "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(output, "'ssh-keys' holds 2 files") || !strings.Contains(output, "0444  id_rsa.pub") {
		t.Errorf("unexpected output:\n%s", output)
	}
}

func TestListCommand_JSON(t *testing.T) {
	mem := setupCommandTest(t)
	storeBundle(t, mem, "ssh-keys", bundle.Bundle{"id_rsa": "A", "id_rsa.pub": "B"})

	output, err := executeCommand("", "list", "--json")
	if err != nil {
		t.Fatalf("list --json failed: %v", err)
	}

	var got listOutput
	if err := json.Unmarshal([]byte(output), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, output)
	}
	if got.SecretID != "ssh-keys" || len(got.Files) != 2 {
		t.Fatalf("list output = %+v", got)
	}
	if got.Files[0].Name != "id_rsa" || got.Files[0].Mode != "0400" {
		t.Errorf("Files[0] = %+v", got.Files[0])
	}
	if got.Files[1].Mode != "0444" {
		t.Errorf("Files[1].Mode = %s, want 0444", got.Files[1].Mode)
	}
}

func TestListCommand_MissingSecret(t *testing.T) {
	setupCommandTest(t)

	_, err := executeCommand("", "list")
	if !errors.Is(err, kerrors.ErrSecretNotFound) {
		t.Fatalf("list error = %v, want ErrSecretNotFound", err)
	}
	if msg := formatError(err); !strings.Contains(msg, "--secret-id") {
		t.Errorf("formatError() = %q, want a hint", msg)
	}
}

func TestLogCommand(t *testing.T) {
	setupCommandTest(t)

	output, err := executeCommand("", "log")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if !strings.Contains(output, "No audit log entries found.") {
		t.Errorf("unexpected output for empty log:\n%s", output)
	}

	dir := makeKeyDir(t, map[string]string{"id_rsa": "A"})
	ResetGlobalState()
	if _, err := executeCommand("yes\n", "put", dir); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	ResetGlobalState()
	output, err = executeCommand("", "log")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if !strings.Contains(output, "put") || !strings.Contains(output, "1 file from "+dir) {
		t.Errorf("log output missing the put entry:\n%s", output)
	}

	ResetGlobalState()
	output, err = executeCommand("", "--secret-id", "other", "log")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if !strings.Contains(output, "matching the filters") {
		t.Errorf("entries for another secret id should be filtered:\n%s", output)
	}
}

func TestLoginCommand(t *testing.T) {
	t.Run("missing start URL", func(t *testing.T) {
		setupCommandTest(t)
		called := false
		loginSSO = func(store.SSOOptions) error { called = true; return nil }

		_, err := executeCommand("", "login")
		if !errors.Is(err, kerrors.ErrValidation) {
			t.Fatalf("login error = %v, want ErrValidation", err)
		}
		if called {
			t.Error("SSO flow started without a start URL")
		}
	})

	t.Run("config file with flag override", func(t *testing.T) {
		setupCommandTest(t)
		writeConfigFile(t, "[aws]\nregion = \"eu-west-1\"\n\n[sso]\nstart_url = \"https://example.awsapps.com/start\"\n")

		var got store.SSOOptions
		loginSSO = func(opts store.SSOOptions) error { got = opts; return nil }

		output, err := executeCommand("", "login", "--sso-region", "eu-central-1")
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
		want := store.SSOOptions{StartURL: "https://example.awsapps.com/start", Region: "eu-central-1", DefaultRegion: "eu-west-1"}
		if got != want {
			t.Errorf("SSO options = %+v, want %+v", got, want)
		}
		if !strings.Contains(output, "Signed in") {
			t.Errorf("unexpected output:\n%s", output)
		}
	})
}

func TestConfigShowCommand(t *testing.T) {
	setupCommandTest(t)
	writeConfigFile(t, "[secret]\nid = \"team-keys\"\n")

	output, err := executeCommand("", "--aws-profile", "work", "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	for _, want := range []string{`profile = "work"`, `id = "team-keys"`, `region = "us-east-1"`} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestConfigInitCommand(t *testing.T) {
	setupCommandTest(t)
	path := configs.Current.ConfigPath

	if _, err := executeCommand("", "--secret-id", "team-keys", "config", "init"); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	config, err := configs.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if config.Secret.ID != "team-keys" {
		t.Errorf("Secret.ID = %q, want team-keys", config.Secret.ID)
	}

	ResetGlobalState()
	if _, err := executeCommand("", "config", "init"); !errors.Is(err, kerrors.ErrValidation) {
		t.Errorf("second config init error = %v, want ErrValidation", err)
	}

	ResetGlobalState()
	if _, err := executeCommand("", "config", "init", "--force"); err != nil {
		t.Errorf("config init --force failed: %v", err)
	}
}

func TestFormatError_PartialWrite(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	dir := filepath.Join(os.TempDir(), "restore")
	err := &keyfiles.PartialWriteError{
		Dir:     dir,
		Written: []string{filepath.Join(dir, "id_ecdsa"), filepath.Join(dir, "id_ed25519")},
		Err:     errors.New("disk full"),
	}

	msg := formatError(err)
	for _, want := range []string{"disk full", "left in place", "- id_ecdsa", "- id_ed25519"} {
		if !strings.Contains(msg, want) {
			t.Errorf("formatError() missing %q:\n%s", want, msg)
		}
	}
}

// failingStoreFactory makes building the store fail, as a mistyped
// --aws-profile would, and counts how often it was attempted.
func failingStoreFactory(t *testing.T) *int {
	t.Helper()
	calls := 0
	newSecretStore = func(ctx context.Context) (store.SecretStore, error) {
		calls++
		return nil, fmt.Errorf("%w: loading AWS profile %q: profile not found", kerrors.ErrStore, "typo")
	}
	return &calls
}

func TestLocalPreconditionsBeforeStoreSetup(t *testing.T) {
	t.Run("get into non-empty directory", func(t *testing.T) {
		setupCommandTest(t)
		calls := failingStoreFactory(t)
		outDir := t.TempDir()
		if err := os.WriteFile(filepath.Join(outDir, "existing"), []byte("x"), 0600); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}

		_, err := executeCommand("", "--aws-profile", "typo", "get", outDir)
		if !errors.Is(err, kerrors.ErrNotEmptyDir) {
			t.Fatalf("get error = %v, want ErrNotEmptyDir", err)
		}
		if *calls != 0 {
			t.Errorf("store built %d times before the precondition failed", *calls)
		}
	})

	t.Run("put with unrestorable filename", func(t *testing.T) {
		setupCommandTest(t)
		calls := failingStoreFactory(t)
		dir := makeKeyDir(t, map[string]string{"id_rsa": "A", `work\id_rsa`: "B"})

		_, err := executeCommand("yes\n", "--aws-profile", "typo", "put", dir)
		if !errors.Is(err, kerrors.ErrValidation) {
			t.Fatalf("put error = %v, want ErrValidation", err)
		}
		if *calls != 0 {
			t.Errorf("store built %d times before the scan failed", *calls)
		}
	})

	t.Run("store error still reported once preconditions pass", func(t *testing.T) {
		setupCommandTest(t)
		calls := failingStoreFactory(t)

		_, err := executeCommand("", "--aws-profile", "typo", "get", filepath.Join(t.TempDir(), "out"))
		if !errors.Is(err, kerrors.ErrStore) {
			t.Fatalf("get error = %v, want ErrStore", err)
		}
		if *calls != 1 {
			t.Errorf("store built %d times, want 1", *calls)
		}
	})
}

func TestVerboseOutputGoesToCommandWriter(t *testing.T) {
	mem := setupCommandTest(t)
	storeBundle(t, mem, "ssh-keys", bundle.Bundle{"id_rsa": "A"})

	output, err := executeCommand("", "-v", "list")
	if err != nil {
		t.Fatalf("list -v failed: %v", err)
	}
	if !strings.Contains(output, "[info]") || !strings.Contains(output, "Starting list command") {
		t.Errorf("verbose output not captured:\n%s", output)
	}
}
