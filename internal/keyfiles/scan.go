package keyfiles

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/PolarWolf314/ssh-keys/internal/bundle"
	kerrors "github.com/PolarWolf314/ssh-keys/internal/errors"
)

// ScanResult is the outcome of scanning a key directory.
type ScanResult struct {
	// Bundle holds every regular file that was read.
	Bundle bundle.Bundle

	// Skipped lists entries that were not read, in directory order.
	Skipped []string
}

// Scan reads the regular files directly under dir into a bundle.
// Files whose name matches one of the exclude patterns are skipped.
func Scan(dir string, exclude []string) (*ScanResult, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: invalid exclude pattern %q", kerrors.ErrValidation, pattern)
		}
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a directory: %v", kerrors.ErrValidation, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", kerrors.ErrValidation, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", kerrors.ErrFileSystem, dir, err)
	}

	result := &ScanResult{Bundle: bundle.Bundle{}}
	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		// DirEntry.Type does not follow symlinks.
		if !entry.Type().IsRegular() {
			result.Skipped = append(result.Skipped, name)
			continue
		}

		if isExcluded(name, exclude) {
			result.Skipped = append(result.Skipped, name)
			continue
		}

		if !utf8.ValidString(name) {
			return nil, fmt.Errorf("%w: file %q contains invalid utf-8 in its filename", kerrors.ErrEncoding, path)
		}
		// The same check runs when the secret is decoded, so a name that
		// passes here can always be restored by get.
		if err := bundle.ValidateName(name); err != nil {
			return nil, fmt.Errorf("%s: %w", dir, err)
		}

		data, err := os.ReadFile(path) // #nosec G304 -- path comes from ReadDir on the operator's directory.
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", kerrors.ErrFileSystem, path, err)
		}
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("%w: file %q contains invalid utf-8", kerrors.ErrEncoding, path)
		}

		result.Bundle[name] = string(data)
	}

	return result, nil
}

func isExcluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		// Patterns were validated up front, so Match cannot fail here.
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
