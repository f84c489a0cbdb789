package console

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Toast prints transient user notifications to a writer. It stands in
// for the toast popups of the browser client and satisfies
// booking.Notifier.
type Toast struct {
	mu  sync.Mutex
	out io.Writer
}

// NewToast creates a notifier writing to stderr
func NewToast() *Toast {
	return &Toast{out: os.Stderr}
}

// NewToastWriter creates a notifier writing to the given writer
func NewToastWriter(out io.Writer) *Toast {
	return &Toast{out: out}
}

// Success reports a successful action
func (t *Toast) Success(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "✔ %s\n", message)
}

// Error reports a failed action
func (t *Toast) Error(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "✖ %s\n", message)
}
