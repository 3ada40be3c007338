// Package prompt implements the synchronous question/answer service
// used by the cleanup flow. Each method asks exactly once and returns
// the parsed answer; ErrInvalidAnswer marks a reply that was read fine
// but is not acceptable for the question, so the caller decides
// whether to re-ask or abort.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInvalidAnswer is returned when input was read successfully but is
// not an acceptable answer for the question asked. Distinguishable
// from a broken input channel, which surfaces as a plain error.
var ErrInvalidAnswer = errors.New("invalid answer")

// Prompter asks the user a question and returns the parsed answer.
type Prompter interface {
	// Choose prints the question and reads a number in [1, max].
	Choose(question string, max int) (int, error)
	// Word prints the question and reads one of the allowed words,
	// compared case-insensitively. The canonical spelling is returned.
	Word(question string, allowed ...string) (string, error)
	// Confirm prints the question and reads a yes/no answer. Only an
	// explicit "y" or "yes" (any case) counts as yes; everything else,
	// including an unrecognized reply, is no.
	Confirm(question string) (bool, error)
}

// New returns a Prompter reading answers from r and printing questions
// to w.
func New(r io.Reader, w io.Writer) Prompter {
	return &stdPrompter{reader: bufio.NewReader(r), writer: w}
}

type stdPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// readLine prints the question and reads one trimmed line. A final
// unterminated line is accepted; a read that produces nothing is a
// channel failure.
func (p *stdPrompter) readLine(question string) (string, error) {
	_, _ = fmt.Fprint(p.writer, question)
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (p *stdPrompter) Choose(question string, max int) (int, error) {
	input, err := p.readLine(question)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > max {
		return 0, fmt.Errorf("%w: expected a number between 1 and %d, got %q", ErrInvalidAnswer, max, input)
	}
	return n, nil
}

func (p *stdPrompter) Word(question string, allowed ...string) (string, error) {
	input, err := p.readLine(question)
	if err != nil {
		return "", err
	}
	for _, w := range allowed {
		if strings.EqualFold(input, w) {
			return w, nil
		}
	}
	return "", fmt.Errorf("%w: expected one of %s, got %q", ErrInvalidAnswer, strings.Join(allowed, "/"), input)
}

func (p *stdPrompter) Confirm(question string) (bool, error) {
	input, err := p.readLine(question)
	if err != nil {
		return false, err
	}
	input = strings.ToLower(input)
	return input == "y" || input == "yes", nil
}
