package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/PolarWolf314/ssh-keys/internal/store"
	"github.com/PolarWolf314/ssh-keys/internal/ui"
	"github.com/PolarWolf314/ssh-keys/internal/utils"
)

// startSpinner creates a spinner with the given message and starts it when out
// is a terminal and neither verbose nor debug output is enabled.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup
// function calls ui.EnsureNewline() on the final message and writes it to out
// whether or not the spinner ran.
func startSpinner(out io.Writer, message string) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	active := !verbose && !debug && utils.IsTerminal(out)
	if active {
		s.Start()
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if active {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Fprint(out, finalMsg)
		}
	}

	return s, cleanup
}

// uploadSpinnerStore shows a spinner while a Replace request is in flight,
// so that nothing spins while the operator is answering the prompt.
type uploadSpinnerStore struct {
	store.SecretStore
	out io.Writer
}

func (s uploadSpinnerStore) Replace(ctx context.Context, id, payload, token string) (string, error) {
	_, cleanup := startSpinner(s.out, "Uploading keys...")
	defer cleanup()
	return s.SecretStore.Replace(ctx, id, payload, token)
}

// lazyStore defers building the real store until the first request, so
// local preconditions are reported before AWS configuration problems.
type lazyStore struct {
	open  func(ctx context.Context) (store.SecretStore, error)
	inner store.SecretStore
}

func (s *lazyStore) get(ctx context.Context) (store.SecretStore, error) {
	if s.inner == nil {
		inner, err := s.open(ctx)
		if err != nil {
			return nil, err
		}
		s.inner = inner
	}
	return s.inner, nil
}

func (s *lazyStore) Fetch(ctx context.Context, id string) (string, error) {
	inner, err := s.get(ctx)
	if err != nil {
		return "", err
	}
	return inner.Fetch(ctx, id)
}

func (s *lazyStore) Replace(ctx context.Context, id, payload, token string) (string, error) {
	inner, err := s.get(ctx)
	if err != nil {
		return "", err
	}
	return inner.Replace(ctx, id, payload, token)
}

// openStore returns the secret store for the current profile and region.
// Nothing is loaded until the first request.
func openStore() store.SecretStore {
	return &lazyStore{open: func(ctx context.Context) (store.SecretStore, error) {
		Logger.Debugf("Opening secret store for profile %s in %s", awsProfile, awsRegion)
		return newSecretStore(ctx)
	}}
}
