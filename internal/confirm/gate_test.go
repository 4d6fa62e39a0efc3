package confirm

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/ssh-keys/internal/errors"
)

func runGate(t *testing.T, input string, names []string) (Answer, string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	var out bytes.Buffer
	answer, err := Replace(NewStreamPrompter(strings.NewReader(input), &out), "ssh-keys", names)
	return answer, out.String(), err
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		input  string
		answer Answer
		ok     bool
	}{
		{"yes", Approved, true},
		{"y", Approved, true},
		{"YES", Approved, true},
		{"Yes", Approved, true},
		{"  y  ", Approved, true},
		{"no", Declined, true},
		{"N", Declined, true},
		{"No", Declined, true},
		{"maybe", Declined, false},
		{"", Declined, false},
		{"yess", Declined, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			answer, ok := ParseAnswer(tt.input)
			if answer != tt.answer || ok != tt.ok {
				t.Errorf("ParseAnswer(%q) = %v, %t; want %v, %t", tt.input, answer, ok, tt.answer, tt.ok)
			}
		})
	}
}

func TestReplace_RepromptsUntilAnswer(t *testing.T) {
	answer, out, err := runGate(t, "maybe\nYES\n", []string{"id_rsa"})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if answer != Approved {
		t.Errorf("Replace() = %v, want Approved", answer)
	}
	if n := strings.Count(out, "yes/no: "); n != 2 {
		t.Errorf("prompted %d times, want 2\n%s", n, out)
	}
}

func TestReplace_Decline(t *testing.T) {
	answer, _, err := runGate(t, "no\n", []string{"id_rsa"})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if answer != Declined {
		t.Errorf("Replace() = %v, want Declined", answer)
	}
}

func TestReplace_AnswerWithoutTrailingNewline(t *testing.T) {
	answer, _, err := runGate(t, "y", nil)
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if answer != Approved {
		t.Errorf("Replace() = %v, want Approved", answer)
	}
}

func TestReplace_WindowsLineEndings(t *testing.T) {
	answer, _, err := runGate(t, "n\r\n", nil)
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if answer != Declined {
		t.Errorf("Replace() = %v, want Declined", answer)
	}
}

func TestReplace_EndOfInput(t *testing.T) {
	answer, _, err := runGate(t, "maybe\n", []string{"id_rsa"})
	if !errors.Is(err, kerrors.ErrNoConfirmation) {
		t.Fatalf("Replace() error = %v, want ErrNoConfirmation", err)
	}
	if errors.Is(err, kerrors.ErrValidation) {
		t.Errorf("Replace() error = %v is not a path precondition and must not match ErrValidation", err)
	}
	if answer != Declined {
		t.Errorf("Replace() = %v, want Declined", answer)
	}
}

func TestReplace_ListsSortedNamesAndWarning(t *testing.T) {
	_, out, err := runGate(t, "n\n", []string{"a", "id_rsa", "id_rsa.pub"})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	want := "Are you sure you want to override 'ssh-keys' with the following:\n" +
		"  - a\n" +
		"  - id_rsa\n" +
		"  - id_rsa.pub\n" +
		"This will delete the existing contents of ssh-keys\n" +
		"yes/no: "
	if out != want {
		t.Errorf("output =\n%s\nwant\n%s", out, want)
	}
}
