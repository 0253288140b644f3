package command

// Simple implements the Handler interface.
// It models a simple command as a func() which is called on Invoke; the
// context is ignored.
type Simple struct {
	action  func()
	explain func() string
}

// Invoke performs this simple command.
func (s *Simple) Invoke(any) {
	s.action()
}

// Explain returns the explanation for this simple command.
func (s *Simple) Explain() string {
	return s.explain()
}

// NewSimple returns a pointer to a new simple command, which stores the given
// action function and the given explainer to use when prompted with Invoke or
// Explain respectively.
func NewSimple(explainer func() string, action func()) *Simple {
	return &Simple{
		action:  action,
		explain: explainer,
	}
}

// Func adapts a function taking the dispatch context to the Handler
// interface.
type Func func(ctx any)

// Invoke calls f(ctx).
func (f Func) Invoke(ctx any) { f(ctx) }
