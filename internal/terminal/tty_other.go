//go:build !unix

package terminal

import (
	"errors"
	"os"
	"time"
)

// TTY is a terminal in raw mode used as a Source.
type TTY struct{}

// OpenTTY is not supported on this platform.
func OpenTTY(f *os.File) (*TTY, error) {
	return nil, errors.New("raw terminal input is not supported on this platform")
}

// Fd returns -1.
func (t *TTY) Fd() int { return -1 }

// Read always fails.
func (t *TTY) Read(p []byte) (int, error) {
	return 0, errors.New("not supported")
}

// WaitReady always fails.
func (t *TTY) WaitReady(timeout time.Duration) (bool, error) {
	return false, errors.New("not supported")
}

// Close does nothing.
func (t *TTY) Close() error { return nil }
