package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Prompter reads answers line by line and writes prompts and feedback.
type Prompter struct {
	writer io.Writer
	reader *NonBlockingReader
}

// NewPrompter creates a prompter on the given reader and writer.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// Writer returns the output the prompter writes to.
func (p *Prompter) Writer() io.Writer {
	return p.writer
}

// Println writes a line of output. Write failures are logged.
func (p *Prompter) Println(a ...any) {
	if _, err := fmt.Fprintln(p.writer, a...); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}

// Printf writes formatted output. Write failures are logged.
func (p *Prompter) Printf(format string, a ...any) {
	if _, err := fmt.Fprintf(p.writer, format, a...); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}

// Ask shows label and returns the trimmed answer.
func (p *Prompter) Ask(ctx context.Context, label string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(label)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	return p.reader.ReadLine(ctx)
}

// Prompt asks until parse accepts the answer. Rejected answers print the
// parse error and ask again. Read errors, including io.EOF, end the prompt.
func Prompt[T any](ctx context.Context, p *Prompter, label string, parse func(string) (T, error)) (T, error) {
	for {
		answer, err := p.Ask(ctx, label)
		if err != nil {
			var zero T
			return zero, err
		}

		value, err := parse(answer)
		if err == nil {
			return value, nil
		}
		p.Println(FormatError(err.Error()))
	}
}

// PromptOptional is Prompt where an empty answer keeps current.
func PromptOptional[T any](ctx context.Context, p *Prompter, label string, current T, parse func(string) (T, error)) (T, error) {
	return Prompt(ctx, p, label, func(answer string) (T, error) {
		if answer == "" {
			return current, nil
		}
		return parse(answer)
	})
}
