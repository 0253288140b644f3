package input

import (
	"github.com/rs/zerolog"

	"github.com/ja-he/edkeys/internal/control/command"
)

// Help maps keyspecs to explanations of what they do.
type Help map[Keyspec]string

// SimpleInputProcessor can process the input it is configured for and provide
// help information for that configuration. It can also "capture" input to
// ensure its precedence over other processors, e.g. when it has partial input.
type SimpleInputProcessor interface {

	// CapturesInput returns whether this processor "captures" input, i.E. whether
	// it ought to take priority in processing over other processors.
	// This is useful, e.g., for prioritizing processors with partial input
	// sequences or for such overlays, that are to take complete priority by
	// completely gobbling all input.
	CapturesInput() bool

	// ProcessInput attempts to process the provided input.
	// Returns whether the provided input "applied", i.E. the processor performed
	// an action based on the input.
	ProcessInput(key Key) bool

	// GetHelp returns the input help map for this processor.
	GetHelp() Help
}

// ModalInputProcessor is an input processor that (additionally to
// SimpleInputProcessor) can be temporarily overlaid with any number of
// additional input processors, which can be removed one-by-one of the top or
// by their indices.
type ModalInputProcessor interface {
	SimpleInputProcessor

	// ApplyModalOverlay applies an overlay to this processor.
	// It returns the processors index, by which in the future, all overlays down
	// to and including this overlay can be removed
	ApplyModalOverlay(SimpleInputProcessor) (index uint)

	// PopModalOverlay removes the topmost overlay from this processor.
	PopModalOverlay() error

	// PopModalOverlays pops all overlays down to and including the one at the
	// specified index.
	PopModalOverlays(index uint)
}

// ChordProcessor is a SimpleInputProcessor resolving chords via an
// Accumulator and dispatching the resolved commands.
//
// It enforces the chord policy the Accumulator leaves to its caller: a chord
// in progress is dropped on the cancel key, on no-match and when it would
// exceed MaxChordLength.
type ChordProcessor struct {
	acc      *Accumulator
	chords   ChordTable
	commands *command.Table
	cancel   Key
	ctx      any
	log      zerolog.Logger
}

// NewChordProcessor returns a pointer to a new ChordProcessor dispatching
// resolved chords through the given command table. KeyEsc cancels a chord in
// progress.
func NewChordProcessor(chords ChordTable, commands *command.Table, strict bool, logger zerolog.Logger) *ChordProcessor {
	return &ChordProcessor{
		acc:      NewAccumulator(chords, strict),
		chords:   chords,
		commands: commands,
		cancel:   KeyEsc,
		log:      logger,
	}
}

// SetContext sets the context handed to command handlers on dispatch.
func (p *ChordProcessor) SetContext(ctx any) { p.ctx = ctx }

// SetCancelKey sets the key dropping a chord in progress.
func (p *ChordProcessor) SetCancelKey(k Key) { p.cancel = k }

// ProcessInput attempts to process the provided input.
// Returns whether the provided input "applied", i.E. it continued a chord,
// cancelled one or completed one whose command was handled.
func (p *ChordProcessor) ProcessInput(k Key) bool {
	if k == p.cancel && p.acc.Len() > 0 {
		p.log.Debug().Str("pending", p.pendingString()).Msg("chord cancelled")
		p.acc.Reset()
		return true
	}

	result, code := p.acc.Feed(k)
	switch result {

	case NeedMore:
		if p.acc.Len() >= MaxChordLength {
			p.log.Debug().Str("pending", p.pendingString()).Msg("chord exceeds maximum length, dropping")
			p.acc.Reset()
			return false
		}
		return true

	case Resolved:
		p.acc.Reset()
		if !command.Dispatch(p.commands, code, p.ctx) {
			p.log.Warn().Stringer("key", k).Stringer("code", code).Msg("chord resolved to unhandled command")
			return false
		}
		return true

	default:
		p.log.Debug().Str("pending", p.pendingString()).Msg("no chord matches")
		p.acc.Reset()
		return false

	}
}

// CapturesInput returns whether a chord is in progress.
func (p *ChordProcessor) CapturesInput() bool {
	return p.acc.Len() > 0
}

// Pending returns the keys of the chord in progress.
func (p *ChordProcessor) Pending() []Key {
	return p.acc.Pending()
}

// GetHelp returns the input help map for this processor.
func (p *ChordProcessor) GetHelp() Help {
	result := Help{}
	for _, c := range p.chords {
		explanation := c.Command.String()
		if d, ok := p.commands.Lookup(c.Command); ok {
			explanation = d.Explain()
		}
		result[KeysToConfigKeyspec(c.Keys)] = explanation
	}
	return result
}

func (p *ChordProcessor) pendingString() string {
	return Chord{Keys: p.acc.Pending()}.String()
}
