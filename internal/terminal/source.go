// Package terminal connects a host input source to the key decoding
// pipeline.
package terminal

import "time"

// Source is a host byte source.
//
// WaitReady blocks for at most timeout and reports whether bytes can be read
// without blocking. A zero timeout polls.
type Source interface {
	Read(p []byte) (int, error)
	WaitReady(timeout time.Duration) (bool, error)
}

// Clock tells the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
