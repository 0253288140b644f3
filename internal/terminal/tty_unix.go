//go:build unix

package terminal

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// TTY is a terminal in raw mode used as a Source.
type TTY struct {
	f     *os.File
	owned bool
	state *term.State
}

// OpenTTY switches the terminal behind f to raw mode.
// If f is nil, /dev/tty is opened and closed again by Close.
func OpenTTY(f *os.File) (*TTY, error) {
	owned := false
	if f == nil {
		var err error
		f, err = os.OpenFile("/dev/tty", os.O_RDWR, 0)
		if err != nil {
			return nil, fmt.Errorf("could not open terminal: %w", err)
		}
		owned = true
	}

	state, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		if owned {
			f.Close()
		}
		return nil, fmt.Errorf("could not switch terminal to raw mode: %w", err)
	}
	return &TTY{f: f, owned: owned, state: state}, nil
}

// Fd returns the terminal's file descriptor.
func (t *TTY) Fd() int { return int(t.f.Fd()) }

// Read reads from the terminal.
func (t *TTY) Read(p []byte) (int, error) {
	return t.f.Read(p)
}

// WaitReady polls the terminal for readable input for at most timeout.
func (t *TTY) WaitReady(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(t.f.Fd()), Events: unix.POLLIN}}
	ms := int(timeout.Round(time.Millisecond) / time.Millisecond)
	if ms == 0 && timeout > 0 {
		ms = 1
	}
	for {
		n, err := unix.Poll(fds, ms)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("poll: %w", err)
		}
		return n > 0, nil
	}
}

// Close restores the terminal state.
func (t *TTY) Close() error {
	err := term.Restore(t.Fd(), t.state)
	if t.owned {
		if cerr := t.f.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
