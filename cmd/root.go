package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/PolarWolf314/ssh-keys/internal/configs"
	logger "github.com/PolarWolf314/ssh-keys/internal/logging"
	"github.com/PolarWolf314/ssh-keys/internal/store"
	"github.com/PolarWolf314/ssh-keys/internal/ui"
)

var (
	verbose    bool
	debug      bool
	awsProfile string
	awsRegion  string
	secretID   string
	configPath string
	Logger     logger.Logger

	// currentConfig is the effective configuration: flags over the config
	// file over built-in defaults. Set by the root PersistentPreRunE.
	currentConfig *configs.Config

	// newSecretStore builds the store for the selected profile and region.
	// Tests replace it with an in-memory store.
	newSecretStore = func(ctx context.Context) (store.SecretStore, error) {
		return store.NewAWSStore(ctx, store.AWSOptions{
			Profile: awsProfile,
			Region:  awsRegion,
		})
	}

	rootCmd = &cobra.Command{
		Use:   "ssh-keys",
		Short: "Back up and restore a directory of SSH keys with AWS Secrets Manager",
		Long: `ssh-keys keeps a flat directory of SSH keys in a single AWS Secrets Manager
secret.

  put <indir>    replaces the secret with every regular file in <indir>
  get <outdir>   writes every file in the secret into a new, empty <outdir>

Private keys are restored with mode 0400, public keys (.pub, .public) with
mode 0444. Nothing is merged: put overwrites the whole secret after asking
for confirmation, and get never touches an existing file.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initRoot,
		Run: func(cmd *cobra.Command, args []string) {
			printBanner(cmd.OutOrStdout())
		},
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&awsProfile, "aws-profile", configs.DefaultProfile, "AWS profile to use from ~/.aws/config")
	flags.StringVar(&awsRegion, "region", configs.DefaultRegion, "AWS region of the secret")
	flags.StringVar(&secretID, "secret-id", configs.DefaultSecretID, "name or ARN of the secret")
	flags.StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/ssh-keys/config.toml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&debug, "debug", "d", false, "enable debug output")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(putCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command and exits 1 on error. An interrupt cancels
// the command's context, which aborts an in-flight store request.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		stop()
		os.Exit(1)
	}
}

func initRoot(cmd *cobra.Command, args []string) error {
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
		Out:     cmd.OutOrStdout(),
		Err:     cmd.ErrOrStderr(),
	}
	Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)

	if err := configs.InitSettings(configPath); err != nil {
		return Logger.ErrorfAndReturn("failed to resolve settings: %v", err)
	}
	Logger.Debugf("Config file: %s", configs.Current.ConfigPath)

	config, err := configs.LoadCurrent()
	if err != nil {
		return err
	}

	applyConfig(cmd.Flags(), config)
	currentConfig = config
	Logger.Debugf("Using profile=%s region=%s secret-id=%s", awsProfile, awsRegion, secretID)

	return nil
}

// applyConfig fills every flag the operator did not set from config, and
// records explicitly set flags in config so it reflects what will be used.
func applyConfig(flags *pflag.FlagSet, config *configs.Config) {
	bindings := []struct {
		flag  string
		value *string
	}{
		{"aws-profile", &config.AWS.Profile},
		{"region", &config.AWS.Region},
		{"secret-id", &config.Secret.ID},
	}

	for _, b := range bindings {
		f := flags.Lookup(b.flag)
		if f == nil {
			continue
		}
		if f.Changed {
			*b.value = f.Value.String()
			continue
		}
		if err := f.Value.Set(*b.value); err != nil {
			Logger.Warnf("Ignoring config value for --%s: %v", b.flag, err)
		}
	}
}

func printBanner(out io.Writer) {
	banner := figure.NewFigure("ssh-keys", "", true)
	fmt.Fprintln(out)
	fmt.Fprint(out, banner.String())
	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.Info.Sprint("→")+" Run "+ui.Code.Sprint("ssh-keys --help")+" to see available commands")
}

// GetRootCmd returns the root command for testing.
func GetRootCmd() *cobra.Command {
	return rootCmd
}
