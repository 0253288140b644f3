// Package tui drives the editor through a tcell screen instead of a raw
// terminal: tcell decodes the input and draws the output.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// ScreenHandler allows rendering to a terminal (via tcell.Screen).
// It also handles synchronization (e.g. on resize) when prompted accordingly.
type ScreenHandler struct {
	screen    tcell.Screen
	style     tcell.Style
	needsSync bool
}

// NewTUIScreenHandler initializes and returns a ScreenHandler on the
// terminal.
func NewTUIScreenHandler() (*ScreenHandler, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("could not create screen (%w)", err)
	}
	return NewScreenHandler(screen)
}

// NewScreenHandler initializes the given screen and returns a handler for it.
func NewScreenHandler(screen tcell.Screen) (*ScreenHandler, error) {
	s := &ScreenHandler{
		screen: screen,
		style:  tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset),
	}
	err := s.screen.Init()
	if err != nil {
		return nil, fmt.Errorf("could not initialize screen (%w)", err)
	}

	s.screen.SetStyle(s.style)
	s.screen.Clear()
	return s, nil
}

// GetEventPollable returns the underlying screen as an EventPollable.
func (s *ScreenHandler) GetEventPollable() EventPollable {
	return s.screen
}

// Fini finalizes the screen, e.g., for clean program shutdown.
func (s *ScreenHandler) Fini() {
	s.screen.Fini()
}

// NeedsSync registers that a synchronization of the underlying screen is
// necessary.
// This is necessary on resize events.
func (s *ScreenHandler) NeedsSync() {
	s.needsSync = true
}

// Dimensions returns the current dimensions of the underlying screen.
func (s *ScreenHandler) Dimensions() (x, y, w, h int) {
	w, h = s.screen.Size()
	return 0, 0, w, h
}

// Clear clears the underlying screen.
// If this is not done before drawing new things, old contents that are not
// overwritten will remain visible on the next Show.
func (s *ScreenHandler) Clear() {
	s.screen.Clear()
}

// Show shows the drawn contents, taking the necessity for synchronization into
// account.
func (s *ScreenHandler) Show() {
	if s.needsSync {
		s.needsSync = false
		s.screen.Sync()
	} else {
		s.screen.Show()
	}
}

// DrawText draws text into the box at (x, y) of size w by h, wrapping at the
// box width. Wide runes take two cells and are never split across rows.
func (s *ScreenHandler) DrawText(x, y, w, h int, text string) {
	if w <= 0 || h <= 0 {
		return
	}

	col, row := x, y
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if col+rw > x+w {
			row++
			col = x
		}
		if row >= y+h || rw > w {
			return
		}
		s.screen.SetContent(col, row, r, nil, s.style)
		col += rw
	}
}

// EventPollable only allows access to PollEvent of a tcell.Screen.
type EventPollable interface {
	PollEvent() tcell.Event
}

// ScreenSynchronizer allows access only to a screen handler's synchronization
// notification functionality.
type ScreenSynchronizer interface {
	NeedsSync()
}
