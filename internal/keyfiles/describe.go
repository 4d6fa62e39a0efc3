package keyfiles

import (
	"errors"
	"os"
	"strings"

	"golang.org/x/crypto/ssh"

	"github.com/PolarWolf314/ssh-keys/internal/bundle"
)

// Kind classifies a bundle entry by its content.
type Kind string

const (
	KindPrivate Kind = "private"
	KindPublic  Kind = "public"
	KindOther   Kind = "other"
)

// KeyInfo summarizes one bundle entry for display.
type KeyInfo struct {
	Name        string      `json:"name"`
	Mode        os.FileMode `json:"mode"`
	Kind        Kind        `json:"kind"`
	Type        string      `json:"type,omitempty"`
	Fingerprint string      `json:"fingerprint,omitempty"`
	Comment     string      `json:"comment,omitempty"`
	Encrypted   bool        `json:"encrypted,omitempty"`
	Size        int         `json:"size"`
}

// Describe inspects content as an SSH key. Content that does not parse is
// reported as KindOther, so Describe never fails.
func Describe(name, content string) KeyInfo {
	info := KeyInfo{
		Name: name,
		Mode: ModeFor(name),
		Kind: KindOther,
		Size: len(content),
	}

	data := []byte(content)

	if strings.Contains(content, "PRIVATE KEY-----") {
		info.Kind = KindPrivate

		var pub ssh.PublicKey
		key, err := ssh.ParseRawPrivateKey(data)
		var missing *ssh.PassphraseMissingError
		switch {
		case errors.As(err, &missing):
			info.Encrypted = true
			pub = missing.PublicKey
		case err == nil:
			if signer, serr := ssh.NewSignerFromKey(key); serr == nil {
				pub = signer.PublicKey()
			}
		}

		if pub != nil {
			info.Type = pub.Type()
			info.Fingerprint = ssh.FingerprintSHA256(pub)
		}
		return info
	}

	if pub, comment, _, _, err := ssh.ParseAuthorizedKey(data); err == nil {
		info.Kind = KindPublic
		info.Type = pub.Type()
		info.Fingerprint = ssh.FingerprintSHA256(pub)
		info.Comment = comment
	}

	return info
}

// DescribeBundle describes every entry of b in sorted filename order.
func DescribeBundle(b bundle.Bundle) []KeyInfo {
	infos := make([]KeyInfo, 0, len(b))
	for _, name := range b.Names() {
		infos = append(infos, Describe(name, b[name]))
	}
	return infos
}
