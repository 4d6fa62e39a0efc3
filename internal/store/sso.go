package store

import (
	"fmt"

	"github.com/synfinatic/aws-sso-cli/sso"

	kerrors "github.com/PolarWolf314/ssh-keys/internal/errors"
)

// SSOOptions describes an AWS IAM Identity Center instance.
type SSOOptions struct {
	StartURL      string
	Region        string
	DefaultRegion string
}

// Validate reports missing SSO settings.
func (o SSOOptions) Validate() error {
	if o.StartURL == "" {
		return fmt.Errorf("%w: SSO start URL is not configured", kerrors.ErrValidation)
	}
	if o.Region == "" {
		return fmt.Errorf("%w: SSO region is not configured", kerrors.ErrValidation)
	}
	return nil
}

// LoginSSO runs the interactive SSO device authorization flow so that the
// profile's cached credentials are fresh before the store is contacted.
func LoginSSO(opts SSOOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	ssoConfig := &sso.SSOConfig{
		SSORegion:     opts.Region,
		StartUrl:      opts.StartURL,
		DefaultRegion: opts.DefaultRegion,
		MaxBackoff:    30,
		MaxRetry:      3,
	}

	// No persistent storage; the SDK reads the refreshed SSO cache itself.
	awsSSO := sso.NewAWSSSO(ssoConfig, nil)

	// Empty browser and exec path let the library pick the system browser.
	if err := awsSSO.Authenticate("", ""); err != nil {
		return fmt.Errorf("%w: AWS SSO authentication failed: %v", kerrors.ErrStore, err)
	}

	return nil
}
