package processors

import (
	"fmt"

	"github.com/ja-he/edkeys/internal/control/command"
	"github.com/ja-he/edkeys/internal/input"
)

// TextInputProcessor is a SimpleInputProcessor specifically for text input,
// e.g. a prompt overlaid over the chord processor.
// It can have a number of defined mappings for non-characters (e.g. ESC for a
// callback to remove this processor as an overlay).
// Any plain characters it is asked to process will be given to its callback
// function for characters, which could, e.g., append the given character to a
// string.
type TextInputProcessor struct {
	mappings map[input.Key]command.Handler

	charCallback func(c byte)
}

// ProcessInput attempts to process the provided input.
// Returns whether the provided input "applied", i.E. the processor performed
// an action based on the input.
func (p *TextInputProcessor) ProcessInput(key input.Key) bool {
	handler, mappingExists := p.mappings[key]
	switch {
	case mappingExists:
		handler.Invoke(nil)
		return true
	case isText(key):
		p.charCallback(key.Char())
		return true
	default:
		return false
	}
}

// isText returns whether the key is a character to be entered as text.
func isText(key input.Key) bool {
	return key.Mod()&^input.ModShift == 0 && key.Scan() == input.ScanNone && key.Char() >= 0x20 && key.Char() != 0x7f
}

// CapturesInput returns whether this processor "captures" input, i.E. whether
// it ought to take priority in processing over other processors.
// This is useful, e.g., for prioritizing processors whith partial input
// sequences or for such overlays, that are to take complete priority by
// completely gobbling all input.
func (p *TextInputProcessor) CapturesInput() bool {
	// I think we will always want a text processor to take this precedence.
	return true
}

// GetHelp returns the input help map for this processor.
func (p *TextInputProcessor) GetHelp() input.Help {
	result := input.Help{}
	for k, h := range p.mappings {
		explanation := ""
		if e, ok := h.(command.Explainer); ok {
			explanation = e.Explain()
		}
		result[input.Keyspec(input.ToConfigIdentifierString(k))] = explanation
	}
	return result
}

// NewTextInputProcessor returns a pointer to a new TextInputProcessor.
func NewTextInputProcessor(
	keyMappings map[input.Keyspec]command.Handler,
	charCallback func(c byte),
) (*TextInputProcessor, error) {
	mappings := map[input.Key]command.Handler{}
	for keyspec, handler := range keyMappings {
		keys, err := input.ConfigKeyspecToKeys(keyspec)
		if err != nil {
			return nil, fmt.Errorf("could not convert '%s' to keys (%s)", keyspec, err.Error())
		}
		if len(keys) != 1 {
			return nil, fmt.Errorf("keyspec '%s' for text processor has not exactly one key (but %d)", keyspec, len(keys))
		}
		mappings[keys[0]] = handler
	}
	return &TextInputProcessor{
		mappings:     mappings,
		charCallback: charCallback,
	}, nil
}
