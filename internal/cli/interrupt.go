package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler cancels a context on SIGINT or SIGTERM and says goodbye.
type InterruptHandler struct {
	writer      io.Writer
	signals     chan os.Signal
	interrupted bool
	mu          sync.Mutex
}

// NewInterruptHandler creates a new interrupt handler.
func NewInterruptHandler(writer io.Writer) *InterruptHandler {
	if writer == nil {
		writer = os.Stdout
	}
	return &InterruptHandler{
		writer:  writer,
		signals: make(chan os.Signal, 1),
	}
}

// HandleInterrupts returns a context canceled on the first interrupt signal.
// Signal delivery stops once ctx is done.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	signal.Notify(h.signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(h.signals)
		select {
		case <-h.signals:
			h.mu.Lock()
			if !h.interrupted {
				h.interrupted = true
				h.showInterruptMessage()
			}
			h.mu.Unlock()
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx
}

func (h *InterruptHandler) showInterruptMessage() {
	msg := "\n\n" + FormatWarning("Interrupted!") +
		"\n" + FormatInfo("Saved records are kept. Goodbye! "+RiceIcon) + "\n"

	if _, err := fmt.Fprint(h.writer, msg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write interrupt message: %v\n", err)
	}
}

// WasInterrupted returns true if the process was interrupted.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}
