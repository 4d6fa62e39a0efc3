package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/ssh-keys/internal/configs"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the ssh-keys configuration file",
	Long: `Shows and creates the configuration file.

The file lives at $XDG_CONFIG_HOME/ssh-keys/config.toml unless --config is
given. Values set with flags take precedence over the file.`,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func currentConfigPath() string {
	if configs.Current == nil {
		return "the config file"
	}
	return configs.Current.ConfigPath
}
