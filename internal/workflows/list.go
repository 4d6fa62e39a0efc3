package workflows

import (
	"context"

	"github.com/PolarWolf314/ssh-keys/internal/keyfiles"
	"github.com/PolarWolf314/ssh-keys/internal/store"
)

// ListOptions configures the list workflow.
type ListOptions struct {
	Store    store.SecretStore
	SecretID string
}

// ListResult contains the files held in the secret.
type ListResult struct {
	SecretID string
	Keys     []keyfiles.KeyInfo
}

// List fetches the secret and describes its files without writing anything.
func List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	if err := validateStoreOptions(opts.Store, opts.SecretID); err != nil {
		return nil, err
	}

	b, err := fetchBundle(ctx, opts.Store, opts.SecretID)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		SecretID: opts.SecretID,
		Keys:     keyfiles.DescribeBundle(b),
	}, nil
}
