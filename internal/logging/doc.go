// Package logger provides leveled, colored logging for ssh-keys commands.
//
// Verbosity is controlled by two global flags:
//
//   - --verbose: info messages
//   - --debug: info and debug messages
//
// Warnings and errors are always written to stderr.
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Scanned %d files", count)
//
// The root command builds the logger in PersistentPreRunE and hands it to
// workflows through their options.
package logger
