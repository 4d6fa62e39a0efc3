package utils

import (
	"fmt"
	"os"
)

// FormatMode renders the permission bits of mode as four octal digits, e.g. "0400".
func FormatMode(mode os.FileMode) string {
	return fmt.Sprintf("%04o", mode.Perm())
}

// Plural returns "1 file", "2 files" and so on. The plural is noun + "s".
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
