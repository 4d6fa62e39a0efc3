package keyfiles

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/ssh-keys/internal/bundle"
	kerrors "github.com/PolarWolf314/ssh-keys/internal/errors"
)

const (
	// PublicKeyMode is applied to *.pub and *.public files.
	PublicKeyMode os.FileMode = 0444

	// PrivateKeyMode is applied to every other file.
	PrivateKeyMode os.FileMode = 0400

	outputDirMode os.FileMode = 0700
)

// ModeFor returns the permission bits a materialized file named name gets.
func ModeFor(name string) os.FileMode {
	if bundle.IsPublic(name) {
		return PublicKeyMode
	}
	return PrivateKeyMode
}

// PartialWriteError reports a Materialize call that failed after creating
// some files. Those files are left in place.
type PartialWriteError struct {
	Dir     string
	Written []string
	Err     error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("%v (%d file(s) already written to %s were left in place: %s)",
		e.Err, len(e.Written), e.Dir, strings.Join(e.Written, ", "))
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}

// CheckOutputDir verifies that dir is either missing or an empty directory.
// It reports whether dir already exists.
func CheckOutputDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", kerrors.ErrFileSystem, dir, err)
	}
	if !info.IsDir() {
		return true, fmt.Errorf("%w: %s", kerrors.ErrNotEmptyDir, dir)
	}

	empty, err := isEmptyDir(dir)
	if err != nil {
		return true, fmt.Errorf("%w: reading %s: %v", kerrors.ErrFileSystem, dir, err)
	}
	if !empty {
		return true, fmt.Errorf("%w: %s", kerrors.ErrNotEmptyDir, dir)
	}

	return true, nil
}

// PrepareOutputDir checks dir with CheckOutputDir and creates it, along with
// any missing parents, when it does not exist.
func PrepareOutputDir(dir string) error {
	exists, err := CheckOutputDir(dir)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if err := os.MkdirAll(dir, outputDirMode); err != nil {
		return fmt.Errorf("%w: creating %s: %v", kerrors.ErrFileSystem, dir, err)
	}
	return nil
}

// Materialize writes each bundle entry to a new file under dir, in sorted
// filename order, and returns the created paths.
func Materialize(dir string, b bundle.Bundle) ([]string, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	var written []string
	for _, name := range b.Names() {
		path := filepath.Join(dir, name)
		if err := writeNewFile(path, b[name], ModeFor(name)); err != nil {
			if len(written) == 0 {
				return nil, err
			}
			return written, &PartialWriteError{Dir: dir, Written: written, Err: err}
		}
		written = append(written, path)
	}

	return written, nil
}

func writeNewFile(path, content string, mode os.FileMode) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode) // #nosec G304 -- name validated by bundle.ValidateName.
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s already exists", kerrors.ErrFileSystem, path)
		}
		return fmt.Errorf("%w: creating %s: %v", kerrors.ErrFileSystem, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: closing %s: %v", kerrors.ErrFileSystem, path, cerr)
		}
	}()

	// The umask may have stripped bits from the requested mode.
	if err := f.Chmod(mode); err != nil {
		return fmt.Errorf("%w: setting mode on %s: %v", kerrors.ErrFileSystem, path, err)
	}

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(content); err != nil {
		return fmt.Errorf("%w: writing %s: %v", kerrors.ErrFileSystem, path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: writing %s: %v", kerrors.ErrFileSystem, path, err)
	}

	return nil
}

func isEmptyDir(dir string) (bool, error) {
	f, err := os.Open(dir) // #nosec G304 -- operator supplied target directory.
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	return false, err
}
