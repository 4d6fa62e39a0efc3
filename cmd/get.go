package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/ssh-keys/internal/keyfiles"
	"github.com/PolarWolf314/ssh-keys/internal/ui"
	"github.com/PolarWolf314/ssh-keys/internal/utils"
	"github.com/PolarWolf314/ssh-keys/internal/workflows"
)

var getDryRun bool

func init() {
	getCmd.Flags().BoolVar(&getDryRun, "dry-run", false, "fetch and show the files without writing anything")
}

// resetGetCommandState resets the get command's global state for testing.
func resetGetCommandState() {
	getDryRun = false
}

var getCmd = &cobra.Command{
	Use:   "get <outdir>",
	Short: "Restore the keys from the secret into an empty directory",
	Long: `Downloads the secret and writes one file per entry into <outdir>.

<outdir> must not exist or be an empty directory; it is checked before AWS
is contacted and created with mode 0700 if missing. Files ending in .pub or
.public get mode 0444, every other file 0400. Existing files are never
overwritten.

Examples:
  ssh-keys get ~/.ssh
  ssh-keys get --dry-run /tmp/keys
  ssh-keys get --aws-profile work --secret-id team-keys ./keys`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting get command")
	outDir := args[0]
	out := cmd.OutOrStdout()

	spinner, cleanup := startSpinner(out, "Fetching secret...")
	defer cleanup()

	result, err := workflows.Get(cmd.Context(), workflows.GetOptions{
		Store:    openStore(),
		SecretID: secretID,
		OutDir:   outDir,
		DryRun:   getDryRun,
		Profile:  awsProfile,
	})
	if err != nil {
		return err
	}
	Logger.Debugf("Get finished: created dir=%t, files=%d", result.CreatedDir, len(result.Files))

	if result.DryRun {
		var b strings.Builder
		fmt.Fprintf(&b, "%s Would restore %s from %s into %s\n",
			ui.Info.Sprint("ℹ"), utils.Plural(len(result.Keys), "file"), ui.Highlight.Sprint(secretID), ui.Path.Sprint(outDir))
		writeKeyTable(&b, result.Keys)
		b.WriteString(ui.Info.Sprint("→") + " Nothing was written")
		spinner.FinalMSG = b.String()
		return nil
	}

	spinner.FinalMSG = fmt.Sprintf("%s Restored %s from %s into %s",
		ui.Success.Sprint("✓"), utils.Plural(len(result.Files), "file"), ui.Highlight.Sprint(secretID), ui.Path.Sprint(outDir)) +
		strings.TrimSuffix(ui.FormatNames(baseNames(result.Files)), "\n")
	return nil
}

// writeKeyTable writes one line per key: mode, name, and what the content is.
func writeKeyTable(w io.Writer, keys []keyfiles.KeyInfo) {
	for _, k := range keys {
		details := string(k.Kind)
		if k.Type != "" {
			details = k.Type
		}
		if k.Fingerprint != "" {
			details += " " + k.Fingerprint
		}
		if k.Comment != "" {
			details += " " + k.Comment
		}
		if k.Encrypted {
			details += " " + ui.Muted.Sprint("passphrase protected")
		}
		fmt.Fprintf(w, "    %s  %-24s  %s\n", utils.FormatMode(k.Mode), k.Name, details)
	}
}

func baseNames(paths []string) []string {
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	return names
}
