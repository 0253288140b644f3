package processors

import (
	"errors"

	"github.com/ja-he/edkeys/internal/input"
)

// ModalInputProcessor is an input processor that can take any number of input
// overlays over its base input processor, e.g. a prompt over the editor's
// chord processor.
// Only the topmost overlay (or, without overlays, the base) sees input.
// Implements input.ModalInputProcessor.
type ModalInputProcessor struct {
	base     input.SimpleInputProcessor
	overlays []input.SimpleInputProcessor
}

// NewModalInputProcessor returns a pointer to a new ModalInputProcessor with
// the given base processor and no overlays.
func NewModalInputProcessor(base input.SimpleInputProcessor) *ModalInputProcessor {
	return &ModalInputProcessor{base: base}
}

// CapturesInput returns whether the active processor captures input.
func (p *ModalInputProcessor) CapturesInput() bool {
	return p.active().CapturesInput()
}

// ProcessInput hands the key to the active processor.
func (p *ModalInputProcessor) ProcessInput(key input.Key) bool {
	return p.active().ProcessInput(key)
}

// ApplyModalOverlay pushes an overlay.
// It returns the overlay's index, by which all overlays down to and including
// this one can later be removed.
func (p *ModalInputProcessor) ApplyModalOverlay(overlay input.SimpleInputProcessor) (index uint) {
	p.overlays = append(p.overlays, overlay)
	return uint(len(p.overlays) - 1)
}

// PopModalOverlay removes the topmost overlay.
func (p *ModalInputProcessor) PopModalOverlay() error {
	if len(p.overlays) == 0 {
		return errors.New("attempt to pop from empty overlay stack")
	}
	p.overlays[len(p.overlays)-1] = nil
	p.overlays = p.overlays[:len(p.overlays)-1]
	return nil
}

// PopModalOverlays removes all overlays down to and including the one at the
// given index. Indices past the top are ignored.
func (p *ModalInputProcessor) PopModalOverlays(index uint) {
	for uint(len(p.overlays)) > index {
		p.PopModalOverlay()
	}
}

// Depth returns the number of overlays.
func (p *ModalInputProcessor) Depth() int { return len(p.overlays) }

func (p *ModalInputProcessor) active() input.SimpleInputProcessor {
	if n := len(p.overlays); n > 0 {
		return p.overlays[n-1]
	}
	return p.base
}

// GetHelp returns the help of the active processor.
func (p *ModalInputProcessor) GetHelp() input.Help {
	return p.active().GetHelp()
}
