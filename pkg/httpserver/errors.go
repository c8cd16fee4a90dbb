package httpserver

import "errors"

var (
	// ErrStart is returned by Run when the listener cannot be opened or the
	// server is already running.
	ErrStart = errors.New("httpserver: start failed")
	// ErrShutdown is returned by Run when in-flight requests did not finish
	// within the shutdown timeout.
	ErrShutdown = errors.New("httpserver: graceful shutdown failed")
)
