package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/ssh-keys/internal/confirm"
	"github.com/PolarWolf314/ssh-keys/internal/ui"
	"github.com/PolarWolf314/ssh-keys/internal/utils"
	"github.com/PolarWolf314/ssh-keys/internal/workflows"
)

var (
	putDryRun             bool
	putExclude            []string
	putDeterministicToken bool
)

func init() {
	putCmd.Flags().BoolVar(&putDryRun, "dry-run", false, "show what would be uploaded without prompting or contacting AWS")
	putCmd.Flags().StringSliceVar(&putExclude, "exclude", nil, "skip files whose name matches a glob pattern (repeatable)")
	putCmd.Flags().BoolVar(&putDeterministicToken, "deterministic-token", false, "derive the request token from the content so a rerun cannot create a second version")
}

// resetPutCommandState resets the put command's global state for testing.
func resetPutCommandState() {
	putDryRun = false
	putExclude = nil
	putDeterministicToken = false
}

var putCmd = &cobra.Command{
	Use:   "put <indir>",
	Short: "Replace the secret with the keys in a directory",
	Long: `Reads every regular file directly inside <indir> and, after you confirm,
replaces the whole secret with them. Subdirectories are skipped, and so are
files matching an --exclude pattern or the [put] exclude list in the config
file.

Anything in the secret that is not in <indir> is lost. Answer yes or y to
proceed, no or n to abort without contacting AWS.

Examples:
  ssh-keys put ~/.ssh
  ssh-keys put --dry-run ~/.ssh
  ssh-keys put --exclude 'known_hosts*' --exclude config ~/.ssh`,
	Args: cobra.ExactArgs(1),
	RunE: runPut,
}

func runPut(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting put command")
	inDir := args[0]
	out := cmd.OutOrStdout()

	exclude := putExclude
	if !cmd.Flags().Changed("exclude") {
		exclude = currentConfig.Put.Exclude
	}
	Logger.Debugf("Exclude patterns: %v", exclude)

	opts := workflows.PutOptions{
		SecretID:           secretID,
		InDir:              inDir,
		Exclude:            exclude,
		DryRun:             putDryRun,
		DeterministicToken: putDeterministicToken,
		Profile:            awsProfile,
	}

	if !putDryRun {
		opts.Store = uploadSpinnerStore{SecretStore: openStore(), out: out}
		opts.Prompter = confirm.NewStreamPrompter(cmd.InOrStdin(), out)
	}

	result, err := workflows.Put(cmd.Context(), opts)
	if err != nil {
		return err
	}

	for _, name := range result.Skipped {
		Logger.Infof("Skipped %s", name)
	}

	switch {
	case result.DryRun:
		var b strings.Builder
		fmt.Fprintf(&b, "%s Would upload %s from %s to %s\n",
			ui.Info.Sprint("ℹ"), utils.Plural(len(result.Keys), "file"), ui.Path.Sprint(inDir), ui.Highlight.Sprint(secretID))
		writeKeyTable(&b, result.Keys)
		if len(result.Skipped) > 0 {
			fmt.Fprintf(&b, "%s Skipped %s\n", ui.Info.Sprint("ℹ"), strings.Join(result.Skipped, ", "))
		}
		b.WriteString(ui.Info.Sprint("→") + " Nothing was uploaded")
		fmt.Fprintln(out, b.String())

	case result.Declined:
		Logger.Infof("Operator declined")
		fmt.Fprintln(out, ui.Warning.Sprint("!")+" Aborted. "+ui.Highlight.Sprint(secretID)+" was not changed")

	default:
		Logger.Debugf("Request token: %s", result.Token)
		fmt.Fprintf(out, "%s Uploaded %s to %s %s\n",
			ui.Success.Sprint("✓"), utils.Plural(len(result.Files), "file"), ui.Highlight.Sprint(secretID), ui.Muted.Sprint("version "+result.Version))
	}

	return nil
}
