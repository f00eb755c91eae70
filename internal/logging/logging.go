// Package logging builds the slog logger shared by the commands. The
// terminal belongs to the UI, so records go to a file or nowhere.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New opens path for appending and returns a text logger writing to it with
// the returned closer. An empty path yields a logger that discards
// everything.
func New(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return NewWriter(f, level), f, nil
}

// NewWriter returns a text logger tagged with the component name.
func NewWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})).With("component", "barviz")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
