// Package command holds the command descriptor table and dispatches resolved
// command codes to their handlers.
//
// Editor modules register their commands with a Registry at startup; the
// built Table is immutable afterwards.
package command

import "fmt"

// Code uniquely identifies a command.
type Code uint16

// Sentinel is the code of the descriptor terminating every Table.
// It is not a valid command code.
const Sentinel Code = 0xffff

// None is the zero code, it does not identify any command.
const None Code = 0

func (c Code) String() string {
	if c == Sentinel {
		return "cmd(sentinel)"
	}
	return fmt.Sprintf("cmd(%d)", uint16(c))
}

// Handler performs a command.
// The context is opaque to this package; it is whatever the caller of
// Dispatch hands in (e.g. the active editor window).
type Handler interface {
	Invoke(ctx any)
}

// Explainer is optionally implemented by handlers able to describe what they
// do.
type Explainer interface {
	Explain() string
}

// Descriptor describes a single command.
type Descriptor struct {
	Code    Code
	Name    string
	Handler Handler
	Help    []string
}

// Explain returns the explanation for the descriptor's handler, falling back
// to the command name.
func (d Descriptor) Explain() string {
	if e, ok := d.Handler.(Explainer); ok {
		return e.Explain()
	}
	return d.Name
}
