package devserver

import "errors"

var (
	// ErrStart indicates that the preview server failed to start.
	ErrStart = errors.New("failed to start preview server")
	// ErrShutdown indicates that graceful shutdown failed.
	ErrShutdown = errors.New("failed to shutdown preview server gracefully")
	// ErrWatch indicates that the file watcher could not be set up.
	ErrWatch = errors.New("failed to watch template sources")
)
