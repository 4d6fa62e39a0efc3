package store

import "context"

// SecretStore holds exactly one payload per secret id.
type SecretStore interface {
	// Fetch returns the current payload of id.
	Fetch(ctx context.Context, id string) (string, error)

	// Replace overwrites the payload of id and returns the new version id.
	// token lets the store recognise a resubmission of the same write.
	Replace(ctx context.Context, id, payload, token string) (string, error)
}
