package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/ssh-keys/internal/audit"
	"github.com/PolarWolf314/ssh-keys/internal/bundle"
	"github.com/PolarWolf314/ssh-keys/internal/confirm"
	kerrors "github.com/PolarWolf314/ssh-keys/internal/errors"
	"github.com/PolarWolf314/ssh-keys/internal/keyfiles"
	"github.com/PolarWolf314/ssh-keys/internal/store"
)

// PutOptions configures the put workflow.
type PutOptions struct {
	Store    store.SecretStore
	SecretID string

	// InDir is scanned non-recursively for key files.
	InDir string

	// Exclude holds doublestar patterns matched against filenames.
	Exclude []string

	// Prompter asks the operator to confirm the replacement. Required unless DryRun.
	Prompter confirm.Prompter

	// DryRun scans and reports without prompting or contacting the store.
	DryRun bool

	// DeterministicToken derives the request token from the payload instead
	// of generating a random one.
	DeterministicToken bool

	// Profile is recorded in the audit log.
	Profile string
}

// PutResult contains the outcome of a put operation.
type PutResult struct {
	// Files lists the uploaded filenames in sorted order.
	Files []string

	// Skipped lists directory entries left out of the bundle.
	Skipped []string

	// Keys describes each file. Only set in a dry run.
	Keys []keyfiles.KeyInfo

	// Declined is true when the operator answered no. Nothing was sent.
	Declined bool

	// Version is the secret version returned by the store.
	Version string

	// Token is the request token sent with the replace call.
	Token string

	DryRun bool
}

// Put replaces the secret with the contents of opts.InDir.
//
// Returns ErrValidation if InDir is not a directory or holds no key files.
// Returns ErrEncoding if a filename or file is not valid UTF-8.
// Returns ErrNoConfirmation if the prompt input ends without an answer.
// Store errors are returned as they come; nothing is retried.
func Put(ctx context.Context, opts PutOptions) (*PutResult, error) {
	if !opts.DryRun {
		if err := validateStoreOptions(opts.Store, opts.SecretID); err != nil {
			return nil, err
		}
		if opts.Prompter == nil {
			return nil, fmt.Errorf("%w: no prompter for confirmation", kerrors.ErrValidation)
		}
	}

	scan, err := keyfiles.Scan(opts.InDir, opts.Exclude)
	if err != nil {
		return nil, err
	}

	if len(scan.Bundle) == 0 {
		return nil, fmt.Errorf("%w: no key files found in %s", kerrors.ErrValidation, opts.InDir)
	}

	result := &PutResult{
		Files:   scan.Bundle.Names(),
		Skipped: scan.Skipped,
		DryRun:  opts.DryRun,
	}

	if opts.DryRun {
		result.Keys = keyfiles.DescribeBundle(scan.Bundle)
		return result, nil
	}

	answer, err := confirm.Replace(opts.Prompter, opts.SecretID, result.Files)
	if err != nil {
		return nil, err
	}
	if answer == confirm.Declined {
		result.Declined = true
		return result, nil
	}

	payload, err := bundle.Encode(scan.Bundle)
	if err != nil {
		return nil, err
	}

	if opts.DeterministicToken {
		result.Token = ContentRequestToken(opts.SecretID, payload)
	} else {
		result.Token = NewRequestToken()
	}

	version, err := opts.Store.Replace(ctx, opts.SecretID, payload, result.Token)
	if err != nil {
		return nil, err
	}
	result.Version = version

	audit.Log(audit.Entry{
		Operation: "put",
		Profile:   opts.Profile,
		SecretID:  opts.SecretID,
		Version:   version,
		Directory: opts.InDir,
		Files:     result.Files,
		Token:     result.Token,
	})

	return result, nil
}
