package errors

import (
	"errors"
	"fmt"
)

// Validation errors indicate a local precondition was violated.
var (
	// ErrValidation indicates a precondition on a local path failed.
	ErrValidation = errors.New("validation failed")

	// ErrNotEmptyDir indicates the download target exists but is not an empty directory.
	ErrNotEmptyDir = fmt.Errorf("%w: not an empty directory", ErrValidation)
)

// Confirmation errors indicate the operator never answered the prompt.
var (
	// ErrNoConfirmation indicates input ended before the operator answered the prompt.
	ErrNoConfirmation = errors.New("no confirmation received")
)

// Encoding errors indicate local data cannot be represented as text.
var (
	// ErrEncoding indicates a filename or file content is not valid UTF-8.
	ErrEncoding = errors.New("invalid utf-8")
)

// Decode errors indicate the remote payload is malformed.
var (
	// ErrDecode indicates the payload is not a JSON object of string pairs.
	ErrDecode = errors.New("malformed secret payload")
)

// Store errors indicate the remote secret store returned a failure.
var (
	// ErrStore indicates a secret store request failed.
	ErrStore = errors.New("secret store request failed")

	// ErrSecretNotFound indicates the secret id does not exist in the store.
	ErrSecretNotFound = fmt.Errorf("%w: secret not found", ErrStore)

	// ErrSecretNoContent indicates the secret exists but holds no string payload.
	ErrSecretNoContent = fmt.Errorf("%w: secret has no content", ErrStore)
)

// File system errors indicate a local create, read or write failed.
var (
	// ErrFileSystem indicates a local file operation failed.
	ErrFileSystem = errors.New("file system operation failed")
)
