// Package utils provides small helpers shared by the commands.
//
// # String Utilities
//
// Functions for rendering values in command output:
//   - FormatMode: renders a permission mode as four octal digits
//   - Plural: pairs a count with a singular or plural noun
//
// # Terminal Utilities
//
// Functions for terminal detection:
//   - IsTerminal: reports whether a writer is attached to a terminal
package utils
