package configs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// configFileMode keeps the config private; it names SSO endpoints and profiles.
const configFileMode = 0600

// SaveTOML writes data to filePath through a temporary file in the same
// directory, so a failed write never leaves a truncated config behind.
func SaveTOML(filePath string, data interface{}) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // No-op after a successful rename.

	if err := WriteTOML(tmp, data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(configFileMode); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, filePath)
}

// WriteTOML encodes a struct as TOML to w.
func WriteTOML(w io.Writer, data interface{}) error {
	return toml.NewEncoder(w).Encode(data)
}

// LoadTOML loads a TOML file into a struct. Keys that do not map to a field
// are an error, so a misspelled setting is not silently ignored.
func LoadTOML(filePath string, data interface{}) error {
	meta, err := toml.DecodeFile(filePath, data)
	if err != nil {
		return err
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	return nil
}
