package tui

import (
	"bytes"
	"strings"
	"sync"
)

// StatusWriter shows the lines written to it on a screen, the most recent
// one at the bottom.
type StatusWriter struct {
	mtx     sync.Mutex
	handler *ScreenHandler
	lines   []string
	partial []byte
}

// NewStatusWriter returns a pointer to a new StatusWriter drawing to the
// handler's screen.
func NewStatusWriter(handler *ScreenHandler) *StatusWriter {
	return &StatusWriter{handler: handler}
}

// Write splits p into lines (dropping carriage returns) and redraws.
func (w *StatusWriter) Write(p []byte) (int, error) {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	w.partial = append(w.partial, p...)
	for {
		i := bytes.IndexByte(w.partial, '\n')
		if i < 0 {
			break
		}
		w.lines = append(w.lines, strings.TrimRight(string(w.partial[:i]), "\r"))
		w.partial = w.partial[i+1:]
	}
	w.draw()
	return len(p), nil
}

func (w *StatusWriter) draw() {
	_, _, width, height := w.handler.Dimensions()
	if len(w.lines) > height {
		w.lines = w.lines[len(w.lines)-height:]
	}

	w.handler.Clear()
	top := height - len(w.lines)
	for i, line := range w.lines {
		w.handler.DrawText(0, top+i, width, 1, line)
	}
	w.handler.Show()
}
