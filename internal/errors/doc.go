// Package errors provides typed error values for ssh-keys.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Validation errors: a local precondition failed before any remote call
//     (ErrValidation, ErrNotEmptyDir)
//   - Confirmation errors: input ended before a yes or no (ErrNoConfirmation)
//   - Encoding errors: a filename or file body is not valid UTF-8 (ErrEncoding)
//   - Decode errors: the remote payload is not a JSON object of strings (ErrDecode)
//   - Store errors: the secret store call failed (ErrStore, ErrSecretNotFound,
//     ErrSecretNoContent)
//   - File system errors: local create or write failed (ErrFileSystem)
//
// Declining the confirmation prompt is not an error. Put reports it through
// its result instead.
//
// # Usage
//
// Wrap errors with the offending path or operation:
//
//	return fmt.Errorf("%w: %s is not a directory", errors.ErrValidation, dir)
//
// Refinements wrap their category too, so both checks succeed:
//
//	errors.Is(err, kerrors.ErrSecretNoContent) // true
//	errors.Is(err, kerrors.ErrStore)           // true
package errors
