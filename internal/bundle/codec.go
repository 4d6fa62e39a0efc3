package bundle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	kerrors "github.com/PolarWolf314/ssh-keys/internal/errors"
)

// Encode serializes b as pretty-printed JSON with sorted keys.
func Encode(b Bundle) (string, error) {
	if b == nil {
		b = Bundle{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]string(b)); err != nil {
		return "", fmt.Errorf("encoding bundle: %w", err)
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Decode parses a payload produced by Encode, or any other JSON object whose
// values are all strings.
func Decode(text string) (Bundle, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty payload", kerrors.ErrDecode)
	}
	if !strings.HasPrefix(trimmed, "{") {
		return nil, fmt.Errorf("%w: payload is not a JSON object", kerrors.ErrDecode)
	}

	var m map[string]*string
	dec := json.NewDecoder(strings.NewReader(trimmed))
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrDecode, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after JSON object", kerrors.ErrDecode)
	}

	b := make(Bundle, len(m))
	for name, content := range m {
		if content == nil {
			return nil, fmt.Errorf("%w: %q is null, want a string", kerrors.ErrDecode, name)
		}
		b[name] = *content
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrDecode, err)
	}

	return b, nil
}
