// Package notify delivers transient user-facing messages (the CLI stand-in
// for UI toasts). Deciding whether an operation succeeded is the caller's
// job; this package only renders the message.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Notifier receives user-visible outcome messages. At most one failure
// message is emitted per operation; see the request executor.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Console writes notifications as plain lines.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console { return &Console{out: out} }

func (c *Console) Success(msg string) { fmt.Fprintln(c.out, msg) }

func (c *Console) Error(msg string) { fmt.Fprintln(c.out, "error:", msg) }

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (r *Recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *Recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

// Successes returns a copy of recorded success messages.
func (r *Recorder) Successes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.successes...)
}

// Errors returns a copy of recorded error messages.
func (r *Recorder) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.errors...)
}
