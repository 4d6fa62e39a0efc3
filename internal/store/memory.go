package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	kerrors "github.com/PolarWolf314/ssh-keys/internal/errors"
)

// Memory is an in-process SecretStore. Like Secrets Manager, a Replace that
// reuses a token with the same payload returns the earlier version instead
// of creating a new one, and reusing a token with a different payload fails.
type Memory struct {
	mu       sync.Mutex
	secrets  map[string]string
	versions map[string]string
	tokens   map[string]memoryWrite

	// FetchErr and ReplaceErr, when set, are returned by the next calls.
	FetchErr   error
	ReplaceErr error

	fetchCalls   int
	replaceCalls int
	lastToken    string
}

type memoryWrite struct {
	id      string
	payload string
	version string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		secrets:  make(map[string]string),
		versions: make(map[string]string),
		tokens:   make(map[string]memoryWrite),
	}
}

// Set stores payload under id without counting as a Replace call.
func (m *Memory) Set(id, payload string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secrets[id] = payload
}

// Get returns the stored payload of id.
func (m *Memory) Get(id string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.secrets[id]
	return payload, ok
}

// Calls returns the number of Fetch and Replace calls made so far.
func (m *Memory) Calls() (fetch, replace int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchCalls, m.replaceCalls
}

// LastToken returns the token passed to the most recent Replace call.
func (m *Memory) LastToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastToken
}

// Fetch implements SecretStore.
func (m *Memory) Fetch(ctx context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCalls++

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: fetching %s: %v", kerrors.ErrStore, id, err)
	}
	if m.FetchErr != nil {
		return "", m.FetchErr
	}

	payload, ok := m.secrets[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", kerrors.ErrSecretNotFound, id)
	}
	return payload, nil
}

// Replace implements SecretStore.
func (m *Memory) Replace(ctx context.Context, id, payload, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replaceCalls++
	m.lastToken = token

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: replacing %s: %v", kerrors.ErrStore, id, err)
	}
	if m.ReplaceErr != nil {
		return "", m.ReplaceErr
	}

	if prev, ok := m.tokens[token]; ok && token != "" {
		if prev.id != id || prev.payload != payload {
			return "", fmt.Errorf("%w: replacing %s: request token %s was already used for different content", kerrors.ErrStore, id, token)
		}
		return prev.version, nil
	}

	version := uuid.NewString()
	m.secrets[id] = payload
	m.versions[id] = version
	if token != "" {
		m.tokens[token] = memoryWrite{id: id, payload: payload, version: version}
	}
	return version, nil
}
