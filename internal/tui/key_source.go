package tui

import (
	"io"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/edkeys/internal/input"
	"github.com/ja-he/edkeys/internal/terminal"
)

// KeySource hands out the key events of a tcell screen, with the recovery
// sentinel interleaved the same way a terminal.Session does it.
type KeySource struct {
	events  chan tcell.Event
	done    chan struct{}
	stopped chan struct{}
	close   sync.Once
	idle    *terminal.IdleTimer
	syncer  ScreenSynchronizer
}

// NewKeySource returns a pointer to a new KeySource polling events from the
// given screen until it is finalized or the source is closed.
// The syncer, if not nil, is notified of resize events.
func NewKeySource(screen EventPollable, syncer ScreenSynchronizer, tick, recoveryInterval time.Duration) *KeySource {
	s := &KeySource{
		events:  make(chan tcell.Event, 32),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		idle:    terminal.NewIdleTimer(time.Now(), tick, recoveryInterval),
		syncer:  syncer,
	}
	go func() {
		defer close(s.stopped)
		defer close(s.events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case s.events <- ev:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Close stops the source; NextKey returns io.EOF from then on.
// The poller returns at once unless it is blocked in PollEvent, which only
// finalizing the screen ends.
func (s *KeySource) Close() {
	s.close.Do(func() { close(s.done) })
}

// NextKey returns the next key event, or input.KeyRecovery when the recovery
// interval has elapsed. Returns io.EOF once the screen is finalized.
func (s *KeySource) NextKey() (input.Key, error) {
	for {
		select {
		case <-s.done:
			return input.KeyNone, io.EOF
		default:
		}

		timer := time.NewTimer(time.Until(s.idle.Deadline()))
		select {

		case <-s.done:
			timer.Stop()
			return input.KeyNone, io.EOF

		case ev, ok := <-s.events:
			timer.Stop()
			if !ok {
				return input.KeyNone, io.EOF
			}
			switch e := ev.(type) {
			case *tcell.EventKey:
				if k, ok := input.FromTcell(e); ok {
					return k, nil
				}
				log.Trace().Str("key", e.Name()).Msg("discarding key without representation")
			case *tcell.EventResize:
				if s.syncer != nil {
					s.syncer.NeedsSync()
				}
			}

		case now := <-timer.C:
			if s.idle.Advance(now) {
				return input.KeyRecovery, nil
			}

		}
	}
}
