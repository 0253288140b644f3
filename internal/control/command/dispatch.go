package command

import (
	"github.com/rs/zerolog/log"
)

// Dispatch invokes the handler registered for code with the given context.
// Returns whether a handler was found and invoked; an unknown code is logged
// and reported as not handled.
func Dispatch(table *Table, code Code, ctx any) (handled bool) {
	assertIntegrity(table)

	i, _ := table.search(code)
	if i < 0 {
		log.Warn().Stringer("code", code).Msg("no command registered for code")
		return false
	}
	d := table.descs[i]
	if d.Handler == nil {
		log.Warn().Stringer("code", code).Str("name", d.Name).Msg("command has no handler")
		return false
	}

	log.Debug().Stringer("code", code).Str("name", d.Name).Msg("dispatching command")
	d.Handler.Invoke(ctx)
	return true
}
