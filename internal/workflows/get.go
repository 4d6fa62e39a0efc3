package workflows

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/PolarWolf314/ssh-keys/internal/audit"
	"github.com/PolarWolf314/ssh-keys/internal/bundle"
	kerrors "github.com/PolarWolf314/ssh-keys/internal/errors"
	"github.com/PolarWolf314/ssh-keys/internal/keyfiles"
	"github.com/PolarWolf314/ssh-keys/internal/store"
)

// GetOptions configures the get workflow.
type GetOptions struct {
	Store    store.SecretStore
	SecretID string

	// OutDir must be missing or an empty directory.
	OutDir string

	// DryRun fetches and decodes the secret but writes nothing, not even OutDir.
	DryRun bool

	// Profile is recorded in the audit log.
	Profile string
}

// GetResult contains the outcome of a get operation.
type GetResult struct {
	OutDir string

	// CreatedDir is true when OutDir did not exist beforehand.
	CreatedDir bool

	// Files lists the created paths in sorted order. In a dry run, the paths
	// that would be created.
	Files []string

	// Keys describes each file. Only set in a dry run.
	Keys []keyfiles.KeyInfo

	DryRun bool
}

// Get downloads the secret and writes one file per bundle entry into
// opts.OutDir.
//
// Returns ErrNotEmptyDir before contacting the store if OutDir exists and is
// not an empty directory.
// Returns ErrSecretNotFound or ErrSecretNoContent if the store has no payload.
// Returns ErrDecode if the payload is not a JSON object of strings.
// Returns a *keyfiles.PartialWriteError if writing stops after some files
// were created; those files are left on disk.
func Get(ctx context.Context, opts GetOptions) (*GetResult, error) {
	if err := validateStoreOptions(opts.Store, opts.SecretID); err != nil {
		return nil, err
	}
	if opts.OutDir == "" {
		return nil, fmt.Errorf("%w: no output directory given", kerrors.ErrValidation)
	}

	exists, err := keyfiles.CheckOutputDir(opts.OutDir)
	if err != nil {
		return nil, err
	}

	result := &GetResult{
		OutDir:     opts.OutDir,
		CreatedDir: !exists,
		DryRun:     opts.DryRun,
	}

	if !opts.DryRun && !exists {
		if err := keyfiles.PrepareOutputDir(opts.OutDir); err != nil {
			return nil, err
		}
	}

	b, err := fetchBundle(ctx, opts.Store, opts.SecretID)
	if err != nil {
		return nil, err
	}

	if opts.DryRun {
		for _, name := range b.Names() {
			result.Files = append(result.Files, filepath.Join(opts.OutDir, name))
		}
		result.Keys = keyfiles.DescribeBundle(b)
		return result, nil
	}

	written, err := keyfiles.Materialize(opts.OutDir, b)
	if err != nil {
		return nil, err
	}
	result.Files = written

	audit.Log(audit.Entry{
		Operation: "get",
		Profile:   opts.Profile,
		SecretID:  opts.SecretID,
		Directory: opts.OutDir,
		Files:     b.Names(),
	})

	return result, nil
}

// fetchBundle fetches and decodes the secret.
func fetchBundle(ctx context.Context, s store.SecretStore, secretID string) (bundle.Bundle, error) {
	payload, err := s.Fetch(ctx, secretID)
	if err != nil {
		return nil, err
	}

	b, err := bundle.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("secret %s: %w", secretID, err)
	}

	return b, nil
}

func validateStoreOptions(s store.SecretStore, secretID string) error {
	if s == nil {
		return fmt.Errorf("%w: no secret store configured", kerrors.ErrValidation)
	}
	if secretID == "" {
		return fmt.Errorf("%w: no secret id given", kerrors.ErrValidation)
	}
	return nil
}
