// Package prompt asks the operator for the per-photo details.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/raphaelgruber/photo-import/internal/models"
)

// Prompt labels, asked in this order.
const (
	LabelFilename = "New filename: "
	LabelTitle    = "Title: "
	LabelCaption  = "Caption: "
)

// Answers holds the operator's replies for one photo.
type Answers struct {
	NewFilename string
	Title       string
	Contents    string
}

// Prompter reads one line per question from an input stream.
// It is not safe for concurrent use.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter reading answers from in and writing labels to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Ask writes label and waits for a non-empty line.
// An empty line or end of input is an ErrValidation.
func (p *Prompter) Ask(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if _, err := io.WriteString(p.out, label); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read answer: %w", err)
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		name := strings.TrimSuffix(strings.TrimSpace(label), ":")
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: no answer for %q: %w", models.ErrValidation, name, io.EOF)
		}
		return "", fmt.Errorf("%w: %q must not be empty", models.ErrValidation, name)
	}

	return answer, nil
}

// AskAll asks the three questions in order, stopping at the first empty answer.
func (p *Prompter) AskAll(ctx context.Context) (Answers, error) {
	var a Answers

	targets := []struct {
		label string
		dst   *string
	}{
		{LabelFilename, &a.NewFilename},
		{LabelTitle, &a.Title},
		{LabelCaption, &a.Contents},
	}

	for _, t := range targets {
		answer, err := p.Ask(ctx, t.label)
		if err != nil {
			return Answers{}, err
		}
		*t.dst = answer
	}

	return a, nil
}
