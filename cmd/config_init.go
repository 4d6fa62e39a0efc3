package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/ssh-keys/internal/configs"
	kerrors "github.com/PolarWolf314/ssh-keys/internal/errors"
	"github.com/PolarWolf314/ssh-keys/internal/ui"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitForce = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	Long: `Creates the config file from the current settings, so that flags given
now become the defaults for later runs.

Examples:
  ssh-keys --aws-profile work --secret-id team-keys config init
  ssh-keys config init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")
		path := configs.Current.ConfigPath

		_, err := os.Stat(path)
		switch {
		case err == nil && !configInitForce:
			return fmt.Errorf("%w: %s already exists (use --force to overwrite)", kerrors.ErrValidation, path)
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("%w: %s: %v", kerrors.ErrFileSystem, path, err)
		}

		if err := configs.Save(path, currentConfig); err != nil {
			return fmt.Errorf("%w: %v", kerrors.ErrFileSystem, err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" Wrote "+ui.Path.Sprint(path))
		return nil
	},
}
