package utils

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTerminal returns true if w is a file attached to a terminal. Buffers and
// pipes never are, so spinners stay out of captured output.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

