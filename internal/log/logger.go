// Package log routes diagnostic messages. User-facing results are printed
// by the ui package instead.
package log

import (
	"io"
	"log"
	"sync"

	"github.com/davecgh/go-spew/spew"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

// Logger is a general-purpose interface for displaying messages.
type Logger interface {
	Log(items ...interface{})
}

// ConsoleLogger sends its input to the default Go logger on os.Stderr.
type ConsoleLogger struct{}

func (ConsoleLogger) Log(items ...interface{}) {
	log.Println(items...)
}

// WriterLogger writes timestamped lines to an arbitrary writer.
type WriterLogger struct {
	mu sync.Mutex
	l  *log.Logger
}

func NewWriter(w io.Writer) *WriterLogger {
	return &WriterLogger{l: log.New(w, "", log.LstdFlags|log.Lmicroseconds)}
}

func (w *WriterLogger) Log(items ...interface{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.l.Println(items...)
}

// Discard drops every message.
var Discard Logger = discard{}

type discard struct{}

func (discard) Log(...interface{}) {}

// ContextLogger prepends a fixed string to each message.
type ContextLogger struct {
	context string
	l       Logger
}

// NewContext creates a ContextLogger using l as the destination. A nil l
// yields Discard.
func NewContext(l Logger, context string) Logger {
	if l == nil {
		return Discard
	}
	return &ContextLogger{context, l}
}

func (c *ContextLogger) Log(items ...interface{}) {
	args := append([]interface{}{c.context}, items...)
	c.l.Log(args...)
}

// Dump logs a deep representation of v when debug output is on.
func Dump(l Logger, label string, v interface{}) {
	if l == nil {
		return
	}
	l.Log(label, spew.Sdump(v))
}
