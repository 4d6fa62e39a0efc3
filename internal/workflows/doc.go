// Package workflows orchestrates ssh-keys commands.
//
// Each workflow coordinates the lower-level packages (keyfiles, bundle,
// confirm, store, audit) to implement one user-facing command, independent
// of CLI concerns like flag parsing, spinners and output formatting.
//
// # Available Workflows
//
//   - Get: materializes the secret into an empty local directory
//   - Put: uploads a local directory as the new secret, after confirmation
//   - List: shows the files held in the secret without writing anything
//   - Log: reads and filters the local audit log
//
// # Ordering Guarantees
//
// Every local precondition is checked before the store is contacted: Get
// rejects a non-empty target and Put finishes scanning and confirmation
// before Replace is called. Put makes exactly one Replace call, or none when
// the operator declines.
//
// # Error Handling
//
// Workflows return errors wrapping the sentinels in internal/errors so the
// CLI can choose a message with errors.Is():
//
//	result, err := workflows.Get(ctx, opts)
//	if errors.Is(err, kerrors.ErrNotEmptyDir) {
//	    // explain that get only writes into empty directories
//	}
package workflows
