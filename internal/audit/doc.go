// Package audit records successful ssh-keys operations in a local log.
//
// Entries are appended as JSON Lines to <data dir>/audit.jsonl, one line per
// get or put:
//
//	{"ts":"2024-01-15T10:30:00.000000Z","op":"put","profile":"default","secret_id":"ssh-keys","version":"a1b2...","files":["id_rsa","id_rsa.pub"]}
//
// Audit logging is best effort. Log never returns an error, so a full disk
// or unwritable data directory cannot fail an otherwise successful
// operation.
package audit
