package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/ssh-keys/internal/keyfiles"
	"github.com/PolarWolf314/ssh-keys/internal/ui"
	"github.com/PolarWolf314/ssh-keys/internal/utils"
	"github.com/PolarWolf314/ssh-keys/internal/workflows"
)

var listJSONOutput bool

func init() {
	listCmd.Flags().BoolVar(&listJSONOutput, "json", false, "output in JSON format")
}

// resetListCommandState resets the list command's global state for testing.
func resetListCommandState() {
	listJSONOutput = false
}

// listFile is a KeyInfo with the mode rendered as octal.
type listFile struct {
	keyfiles.KeyInfo
	Mode string `json:"mode"`
}

type listOutput struct {
	SecretID string     `json:"secret_id"`
	Files    []listFile `json:"files"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the files stored in the secret",
	Long: `Fetches the secret and lists its files with the mode get would give
them and, for SSH keys, the key type and SHA256 fingerprint. Nothing is
written to disk.

Examples:
  ssh-keys list
  ssh-keys list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting list command")
	out := cmd.OutOrStdout()

	spinner, cleanup := startSpinner(out, "Fetching secret...")
	defer cleanup()

	result, err := workflows.List(cmd.Context(), workflows.ListOptions{
		Store:    openStore(),
		SecretID: secretID,
	})
	if err != nil {
		return err
	}

	if listJSONOutput {
		output := listOutput{SecretID: result.SecretID, Files: []listFile{}}
		for _, k := range result.Keys {
			output.Files = append(output.Files, listFile{KeyInfo: k, Mode: utils.FormatMode(k.Mode)})
		}
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal list to JSON: %w", err)
		}
		spinner.FinalMSG = string(data)
		return nil
	}

	if len(result.Keys) == 0 {
		spinner.FinalMSG = ui.Info.Sprint("ℹ") + " " + ui.Highlight.Sprint(secretID) + " holds no files"
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s holds %s:\n", ui.Highlight.Sprint(secretID), utils.Plural(len(result.Keys), "file"))
	writeKeyTable(&b, result.Keys)
	spinner.FinalMSG = b.String()
	return nil
}
