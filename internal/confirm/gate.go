// Package confirm asks the operator to approve a destructive write to the
// secret store.
package confirm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	kerrors "github.com/PolarWolf314/ssh-keys/internal/errors"
	"github.com/PolarWolf314/ssh-keys/internal/ui"
)

// Prompter reads answers from the operator and writes prompts back.
type Prompter interface {
	ReadLine() (string, error)
	WriteLine(line string) error
	Write(text string) error
}

// StreamPrompter is a Prompter over an arbitrary reader and writer, so the
// gate can be driven from a terminal or from scripted input.
type StreamPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStreamPrompter returns a Prompter reading lines from in and writing to out.
func NewStreamPrompter(in io.Reader, out io.Writer) *StreamPrompter {
	return &StreamPrompter{in: bufio.NewReader(in), out: out}
}

// ReadLine returns the next line without its line terminator. A final line
// without a newline is returned before io.EOF.
func (p *StreamPrompter) ReadLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// WriteLine writes line followed by a newline.
func (p *StreamPrompter) WriteLine(line string) error {
	_, err := fmt.Fprintln(p.out, line)
	return err
}

// Write writes text as is.
func (p *StreamPrompter) Write(text string) error {
	_, err := io.WriteString(p.out, text)
	return err
}

// Answer is the operator's decision.
type Answer int

const (
	Declined Answer = iota
	Approved
)

// ParseAnswer maps one line of input to an answer. The boolean is false when
// the input is neither affirmative nor negative.
func ParseAnswer(input string) (Answer, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "yes", "y":
		return Approved, true
	case "no", "n":
		return Declined, true
	}
	return Declined, false
}

// Replace lists the files that will become the new content of secretID,
// warns that the current content is discarded, and loops until the operator
// answers yes or no. names must already be sorted.
//
// Returns ErrNoConfirmation if input ends before an answer is given.
func Replace(p Prompter, secretID string, names []string) (Answer, error) {
	lines := []string{
		fmt.Sprintf("Are you sure you want to override %s with the following:", ui.Highlight.Sprint(secretID)),
	}
	if len(names) == 0 {
		lines = append(lines, "  "+ui.Muted.Sprint("no files"))
	}
	for _, name := range names {
		lines = append(lines, "  - "+name)
	}
	lines = append(lines, ui.Warning.Sprintf("This will delete the existing contents of %s", secretID))

	for _, line := range lines {
		if err := p.WriteLine(line); err != nil {
			return Declined, fmt.Errorf("writing prompt: %w", err)
		}
	}

	for {
		if err := p.Write("yes/no: "); err != nil {
			return Declined, fmt.Errorf("writing prompt: %w", err)
		}

		input, err := p.ReadLine()
		if errors.Is(err, io.EOF) {
			return Declined, kerrors.ErrNoConfirmation
		}
		if err != nil {
			return Declined, fmt.Errorf("reading answer: %w", err)
		}

		if answer, ok := ParseAnswer(input); ok {
			return answer, nil
		}
	}
}
