//go:build linux

package shift

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/ja-he/edkeys/internal/input"
)

// tioclGetShiftState is the TIOCLINUX subcode returning the shift state.
const tioclGetShiftState = 6

// Console probes the Linux virtual console the given file descriptor refers
// to.
type Console struct {
	fd int
}

// NewConsole returns a Probe for the console behind fd.
// If fd is not a virtual console every query reports no modifiers.
func NewConsole(fd int) Probe {
	return &Console{fd: fd}
}

// Modifiers returns the modifiers currently held on the console.
func (c *Console) Modifiers() input.Mod {
	arg := [1]byte{tioclGetShiftState}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(c.fd), unix.TIOCLINUX, uintptr(unsafe.Pointer(&arg[0])))
	if errno != 0 {
		return input.ModNone
	}
	return fromConsoleState(arg[0])
}
