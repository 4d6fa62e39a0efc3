package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/PolarWolf314/ssh-keys/internal/configs"
	logger "github.com/PolarWolf314/ssh-keys/internal/logging"
	"github.com/PolarWolf314/ssh-keys/internal/store"
)

// ResetGlobalState resets all flags and command state to their defaults for testing.
func ResetGlobalState() {
	resetFlags(rootCmd)
	resetGetCommandState()
	resetPutCommandState()
	resetListCommandState()
	resetLogCommandState()
	resetLoginCommandState()
	resetConfigShowState()
	resetConfigInitState()
	currentConfig = nil
	Logger = logger.Logger{}
}

// resetFlags restores every flag of cmd and its subcommands to its default
// and clears its Changed mark, so one Execute does not leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// setupCommandTest points settings at temporary directories and replaces the
// AWS store with an in-memory one, which it returns.
func setupCommandTest(t *testing.T) *store.Memory {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	root := t.TempDir()

	originalSettings := configs.Current
	originalFactory := newSecretStore

	configs.Current = &configs.Settings{
		ConfigPath: filepath.Join(root, "config", "config.toml"),
		DataPath:   filepath.Join(root, "data"),
	}

	mem := store.NewMemory()
	newSecretStore = func(ctx context.Context) (store.SecretStore, error) {
		return mem, nil
	}

	ResetGlobalState()
	t.Cleanup(func() {
		configs.Current = originalSettings
		newSecretStore = originalFactory
		ResetGlobalState()
	})

	return mem
}

// writeConfigFile writes content to the config file used by the test.
func writeConfigFile(t *testing.T, content string) {
	t.Helper()
	path := configs.Current.ConfigPath
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatalf("Failed to create config directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

// executeCommand runs the root command with args, feeding stdin to the
// command, and returns everything written to its output.
func executeCommand(stdin string, args ...string) (string, error) {
	if args == nil {
		// A nil slice makes cobra fall back to os.Args.
		args = []string{}
	}

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}
