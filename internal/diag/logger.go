package diag

import (
	"io"

	"github.com/rs/zerolog"
)

// Sink is the narrow interface the reader and CLI harness log warnings
// through; it stands in for the host's diagnostic stream (spec.md §1, §6.3),
// which is out of scope for this module. A plain io.Writer already
// satisfies it via zerolog's writer adapter.
type Sink = io.Writer

// NewLogger builds a structured logger over sink, in the same
// "zerolog.Logger wrapping an injectable writer" shape used by the pack's
// service code (sawpanic-cryptorun). component is attached to every record
// so warnings from the reader and the scalar-kernel CLI harness are
// distinguishable in one combined stream.
func NewLogger(sink Sink, component string) zerolog.Logger {
	return zerolog.New(sink).With().Timestamp().Str("component", component).Logger()
}

// Warnf logs a warning with path/game-index context, the fields spec.md
// §6.3 requires ("Log messages include path and, when available, game
// index.").
func Warnf(logger zerolog.Logger, path string, gameIndex int, format string, args ...any) {
	ev := logger.Warn().Str("path", path)
	if gameIndex > 0 {
		ev = ev.Int("game_index", gameIndex)
	}
	ev.Msgf(format, args...)
}
