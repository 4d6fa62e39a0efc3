package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/ssh-keys/internal/configs"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the configuration ssh-keys would use, after applying flags,
the config file and built-in defaults.

Examples:
  ssh-keys config show
  ssh-keys --aws-profile work config show
  ssh-keys config show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")
		out := cmd.OutOrStdout()

		if configShowJSON {
			data, err := json.MarshalIndent(currentConfig, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config to JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "# %s\n", currentConfigPath())
		return configs.WriteTOML(out, currentConfig)
	},
}
