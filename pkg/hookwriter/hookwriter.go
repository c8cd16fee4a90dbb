// Package hookwriter wraps an http.ResponseWriter so that state kept for the
// duration of a request (sessions, temp data) can be persisted right before
// the response headers leave the server.
package hookwriter

import (
	"net/http"
	"sync"
)

// Writer runs a hook once, before the first WriteHeader, Write or Flush
// reaches the wrapped ResponseWriter.
type Writer struct {
	http.ResponseWriter
	once    sync.Once
	before  func()
	written bool
}

// New wraps w. A nil hook is allowed.
func New(w http.ResponseWriter, before func()) *Writer {
	return &Writer{ResponseWriter: w, before: before}
}

// Fire runs the hook if it has not run yet.
func (w *Writer) Fire() {
	w.once.Do(func() {
		if w.before != nil {
			w.before()
		}
	})
}

// Written reports whether the response has started.
func (w *Writer) Written() bool {
	return w.written
}

func (w *Writer) WriteHeader(code int) {
	w.Fire()
	w.written = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *Writer) Write(b []byte) (int, error) {
	w.Fire()
	w.written = true
	return w.ResponseWriter.Write(b)
}

// Flush implements http.Flusher for streaming handlers.
func (w *Writer) Flush() {
	w.Fire()
	w.written = true
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *Writer) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
