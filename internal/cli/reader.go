package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// NonBlockingReader provides context-aware input reading that can be interrupted.
type NonBlockingReader struct {
	reader      *bufio.Reader
	readingLock sync.Mutex
}

// NewNonBlockingReader creates a new non-blocking reader.
func NewNonBlockingReader(reader io.Reader) *NonBlockingReader {
	if reader == nil {
		panic("reader cannot be nil")
	}

	return &NonBlockingReader{
		reader: bufio.NewReader(reader),
	}
}

// ReadString reads a string until delim, respecting context cancellation.
// A canceled read leaves its goroutine blocked until input arrives; the next
// read waits for it.
func (r *NonBlockingReader) ReadString(ctx context.Context, delim byte) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}

	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.readingLock.Lock()
		defer r.readingLock.Unlock()

		value, err := r.reader.ReadString(delim)
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		return res.value, res.err
	}
}

// ReadLine reads a trimmed line, respecting context cancellation. A final line
// without a newline is returned without error; io.EOF is reported only once
// no input is left.
func (r *NonBlockingReader) ReadLine(ctx context.Context) (string, error) {
	line, err := r.ReadString(ctx, '\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
