package terminal

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ja-he/edkeys/internal/input"
	"github.com/ja-he/edkeys/internal/input/escape"
	"github.com/ja-he/edkeys/internal/input/ring"
)

const (
	// ByteQueueSlots is the number of slots of the raw byte queue.
	ByteQueueSlots = 256
	// KeyQueueSlots is the number of slots of the key event queue.
	KeyQueueSlots = 64
)

// SessionConfig holds the timing parameters of a session.
type SessionConfig struct {
	// EscapeTimeout is the inter-byte timeout of a partial escape sequence.
	EscapeTimeout time.Duration
	// Tick is the idle tick period; the wait never blocks longer than this.
	Tick time.Duration
	// RecoveryInterval is the elapsed time after which the recovery sentinel
	// is delivered. Zero disables recovery.
	RecoveryInterval time.Duration
}

// Validate checks the configuration for invalid durations.
func (c SessionConfig) Validate() error {
	switch {
	case c.Tick <= 0:
		return fmt.Errorf("tick must be positive (is %s)", c.Tick)
	case c.EscapeTimeout < 0:
		return fmt.Errorf("escape timeout must not be negative (is %s)", c.EscapeTimeout)
	case c.RecoveryInterval < 0:
		return fmt.Errorf("recovery interval must not be negative (is %s)", c.RecoveryInterval)
	}
	return nil
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock makes the session read time from c.
func WithClock(c Clock) SessionOption {
	return func(s *Session) { s.clock = c }
}

// WithLogger makes the session log to logger.
func WithLogger(logger zerolog.Logger) SessionOption {
	return func(s *Session) { s.log = logger }
}

// Session turns the bytes of a Source into key events.
//
// Bytes are read into the byte queue, decoded by the matcher into the key
// event queue and handed out one at a time by NextKey. Time is only observed
// while NextKey waits for input, which happens in slices of at most one tick
// so the idle counter advances even without input.
//
// The idle counter counts wall-clock ticks since the last recovery event, not
// idle time: ticks passing while input keeps arriving count as well, so the
// recovery sentinel arrives every RecoveryInterval whether or not the user is
// typing.
type Session struct {
	src     Source
	matcher *escape.Matcher
	cfg     SessionConfig
	clock   Clock
	log     zerolog.Logger

	bytes   *ring.Ring[byte]
	keys    *ring.Ring[input.Key]
	readBuf []byte

	idle           *IdleTimer
	escapeDeadline time.Time

	err error
}

// NewSession returns a pointer to a new session reading from src.
func NewSession(src Source, matcher *escape.Matcher, cfg SessionConfig, opts ...SessionOption) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}
	if matcher.MaxEmit() >= KeyQueueSlots {
		return nil, fmt.Errorf("key queue (%d slots) too small for matcher emitting up to %d keys", KeyQueueSlots, matcher.MaxEmit())
	}

	s := &Session{
		src:     src,
		matcher: matcher,
		cfg:     cfg,
		clock:   realClock{},
		log:     zerolog.Nop(),
		bytes:   ring.New[byte](ByteQueueSlots),
		keys:    ring.New[input.Key](KeyQueueSlots),
		readBuf: make([]byte, ByteQueueSlots),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.idle = NewIdleTimer(s.clock.Now(), cfg.Tick, cfg.RecoveryInterval)
	return s, nil
}

// NextKey returns the next key event, blocking until one is available.
//
// Keys come out in the order their bytes were decoded. When the recovery
// interval has elapsed input.KeyRecovery is returned in place of a key.
// A read error is returned once every key decoded before it has been handed
// out.
func (s *Session) NextKey() (input.Key, error) {
	for {
		if k, ok := s.keys.Pop(); ok {
			return k, nil
		}
		if s.decode() {
			continue
		}
		if s.err != nil {
			if !s.bytes.Empty() {
				continue
			}
			// no more bytes can complete a pending sequence
			if s.matcher.Expire(s.push) != escape.StepNone {
				continue
			}
			return input.KeyNone, s.err
		}

		now := s.clock.Now()
		if s.idle.Due(now) {
			if s.idle.Advance(now) {
				s.log.Debug().Dur("remainder", s.idle.Elapsed()).Msg("recovery interval elapsed")
				return input.KeyRecovery, nil
			}
			continue
		}

		ready, err := s.src.WaitReady(s.timeout(now))
		if err != nil {
			return input.KeyNone, fmt.Errorf("waiting for input: %w", err)
		}
		if ready {
			s.fill()
			continue
		}

		if s.matcher.State() == escape.Collecting && !s.clock.Now().Before(s.escapeDeadline) {
			s.matcher.Expire(s.push)
		}
	}
}

// decode feeds queued bytes to the matcher as long as the key queue can take
// whatever a single byte may emit. Returns whether any key was queued.
func (s *Session) decode() bool {
	decoded := false
	for !s.bytes.Empty() && s.keys.Free() >= s.matcher.MaxEmit() {
		b, _ := s.bytes.Pop()
		before := s.keys.Len()
		s.matcher.Feed(b, s.push)
		decoded = decoded || s.keys.Len() > before
		if s.matcher.State() == escape.Collecting {
			s.escapeDeadline = s.clock.Now().Add(s.cfg.EscapeTimeout)
		}
	}
	return decoded
}

func (s *Session) push(k input.Key) {
	if !s.keys.Push(k) {
		// decode only feeds bytes while there is room for MaxEmit keys
		s.log.Error().Str("key", k.String()).Msg("key queue overflow, dropping key")
	}
}

// fill reads as many bytes as the byte queue can take.
// A read error is kept for NextKey, which returns it once the bytes read with
// it are decoded and handed out.
func (s *Session) fill() {
	n, err := s.src.Read(s.readBuf[:s.bytes.Free()])
	for _, b := range s.readBuf[:n] {
		s.bytes.Push(b)
	}
	if err != nil {
		s.err = err
	}
}

// timeout returns the time until the sooner of the tick and escape deadlines.
func (s *Session) timeout(now time.Time) time.Duration {
	d := s.idle.Deadline().Sub(now)
	if s.matcher.State() == escape.Collecting {
		if e := s.escapeDeadline.Sub(now); e < d {
			d = e
		}
	}
	if d < 0 {
		return 0
	}
	return d
}

// Pending returns the number of queued keys.
func (s *Session) Pending() int { return s.keys.Len() }

// Elapsed returns the idle time counted since the last recovery event.
func (s *Session) Elapsed() time.Duration { return s.idle.Elapsed() }
