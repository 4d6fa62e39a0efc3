package bundle

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	kerrors "github.com/PolarWolf314/ssh-keys/internal/errors"
)

// Bundle maps a filename to the file's text content.
type Bundle map[string]string

// Names returns the bundle's filenames in sorted order.
func (b Bundle) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks every filename with ValidateName.
func (b Bundle) Validate() error {
	for _, name := range b.Names() {
		if err := ValidateName(name); err != nil {
			return err
		}
	}
	return nil
}

// ValidateName reports whether name can be used as a single file directly
// under a target directory.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty filename", kerrors.ErrValidation)
	case name == "." || name == "..":
		return fmt.Errorf("%w: invalid filename %q", kerrors.ErrValidation, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: filename %q contains a path separator", kerrors.ErrValidation, name)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: filename %q contains a NUL byte", kerrors.ErrValidation, name)
	case !utf8.ValidString(name):
		return fmt.Errorf("%w: filename %q", kerrors.ErrEncoding, name)
	}
	return nil
}

// IsPublic reports whether name follows the public key naming convention.
func IsPublic(name string) bool {
	return strings.HasSuffix(name, ".pub") || strings.HasSuffix(name, ".public")
}
