package cmd

import (
	"errors"
	"strings"

	kerrors "github.com/PolarWolf314/ssh-keys/internal/errors"
	"github.com/PolarWolf314/ssh-keys/internal/keyfiles"
	"github.com/PolarWolf314/ssh-keys/internal/ui"
)

// formatError renders err for the operator, with a hint where one helps.
func formatError(err error) string {
	msg := ui.Error.Sprint("✗") + " " + err.Error()

	var partial *keyfiles.PartialWriteError
	switch {
	case errors.As(err, &partial):
		return ui.Error.Sprint("✗") + " Failed to write all keys: " + partial.Err.Error() + "\n" +
			ui.Warning.Sprint("!") + " These files were already written to " + ui.Path.Sprint(partial.Dir) + " and were left in place:" +
			strings.TrimSuffix(ui.FormatNames(baseNames(partial.Written)), "\n") + "\n" +
			ui.Info.Sprint("→") + " Remove them or pick another directory before running " + ui.Code.Sprint("ssh-keys get") + " again"

	case errors.Is(err, kerrors.ErrNotEmptyDir):
		return msg + "\n" +
			ui.Info.Sprint("→") + " " + ui.Code.Sprint("ssh-keys get") + " only writes into a missing or empty directory"

	case errors.Is(err, kerrors.ErrSecretNotFound):
		return msg + "\n" +
			ui.Info.Sprint("→") + " Check " + ui.Flag.Sprint("--secret-id") + ", " + ui.Flag.Sprint("--aws-profile") + " and " + ui.Flag.Sprint("--region")

	case errors.Is(err, kerrors.ErrNoConfirmation):
		return msg + "\n" +
			ui.Info.Sprint("→") + " Nothing was uploaded. Answer " + ui.Code.Sprint("yes") + " to replace the secret"

	case errors.Is(err, kerrors.ErrEncoding):
		return msg + "\n" +
			ui.Info.Sprint("→") + " Every filename and file must be valid UTF-8. Use " + ui.Flag.Sprint("--exclude") + " to skip a file"

	case errors.Is(err, kerrors.ErrDecode):
		return msg + "\n" +
			ui.Info.Sprint("→") + " The secret was not written by " + ui.Code.Sprint("ssh-keys put") + " or has been edited by hand"
	}

	return msg
}
