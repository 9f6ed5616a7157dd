//go:build windows

package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// StderrCapture is a no-op on Windows.
// Windows audio libraries don't produce the same stderr noise as ALSA.
type StderrCapture struct{}

// CaptureStderr is a no-op on Windows.
func CaptureStderr(_ zerolog.Logger) (*StderrCapture, error) {
	return &StderrCapture{}, nil
}

// WriteOriginal writes to stderr.
func (c *StderrCapture) WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop is a no-op on Windows.
func (c *StderrCapture) Stop() {}
