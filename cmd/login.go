package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/ssh-keys/internal/store"
	"github.com/PolarWolf314/ssh-keys/internal/ui"
)

var (
	loginStartURL string
	loginRegion   string

	// loginSSO runs the SSO flow. Tests replace it.
	loginSSO = store.LoginSSO
)

func init() {
	loginCmd.Flags().StringVar(&loginStartURL, "sso-start-url", "", "IAM Identity Center start URL (default from [sso] start_url)")
	loginCmd.Flags().StringVar(&loginRegion, "sso-region", "", "IAM Identity Center region (default from [sso] region)")
}

// resetLoginCommandState resets the login command's global state for testing.
func resetLoginCommandState() {
	loginStartURL = ""
	loginRegion = ""
	loginSSO = store.LoginSSO
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with AWS IAM Identity Center (SSO)",
	Long: `Runs the IAM Identity Center device authorization flow in your browser
and refreshes the cached SSO token that --aws-profile uses.

The start URL and region come from the [sso] section of the config file
unless given as flags.

Examples:
  ssh-keys login
  ssh-keys login --sso-start-url https://example.awsapps.com/start --sso-region eu-west-1`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting login command")
	out := cmd.OutOrStdout()

	opts := store.SSOOptions{
		StartURL:      currentConfig.SSO.StartURL,
		Region:        currentConfig.SSO.Region,
		DefaultRegion: awsRegion,
	}
	if loginStartURL != "" {
		opts.StartURL = loginStartURL
	}
	if loginRegion != "" {
		opts.Region = loginRegion
	}
	Logger.Debugf("SSO start URL=%s region=%s", opts.StartURL, opts.Region)

	if err := opts.Validate(); err != nil {
		return fmt.Errorf("%w (set it in %s or pass --sso-start-url and --sso-region)", err, currentConfigPath())
	}

	fmt.Fprintln(out, ui.Info.Sprint("→")+" Signing in to "+ui.Path.Sprint(opts.StartURL)+". Complete the sign-in in your browser.")
	if err := loginSSO(opts); err != nil {
		return err
	}

	fmt.Fprintln(out, ui.Success.Sprint("✓")+" Signed in. Profile "+ui.Highlight.Sprint(awsProfile)+" can now reach "+ui.Highlight.Sprint(secretID))
	return nil
}
