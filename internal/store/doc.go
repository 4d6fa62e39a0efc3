// Package store talks to the remote secret store.
//
// The rest of ssh-keys only sees the SecretStore interface: one opaque
// string payload per secret id, read with Fetch and overwritten wholesale
// with Replace. AWSStore implements it on AWS Secrets Manager. Memory is an
// in-process implementation used by tests.
//
// Errors returned by implementations wrap kerrors.ErrStore, and the more
// specific ErrSecretNotFound / ErrSecretNoContent where they apply.
// Nothing in this package retries a failed request.
package store
