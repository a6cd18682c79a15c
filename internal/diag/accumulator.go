// Package diag holds the small diagnostic utilities shared across the
// Visitor, the TimeControl parser and the table reader: an accumulating
// optional-text error channel (spec.md §9 "Accumulating diagnostics") and
// a structured logger wrapper over the host's diagnostic sink (spec.md
// §6.3).
package diag

import (
	"fmt"
	"strings"
)

// Accumulator collects diagnostic messages and joins them with "; ",
// matching the parse_error column's format (spec.md §3, §9). The zero
// value is ready to use.
type Accumulator struct {
	messages []string
}

// Push appends a message. A no-op if msg is empty.
func (a *Accumulator) Push(msg string) {
	if msg == "" {
		return
	}
	a.messages = append(a.messages, msg)
}

// Pushf appends a formatted message.
func (a *Accumulator) Pushf(format string, args ...any) {
	a.Push(fmt.Sprintf(format, args...))
}

// Take returns the joined messages as an optional string (nil if none were
// ever pushed) and resets the accumulator.
func (a *Accumulator) Take() *string {
	if len(a.messages) == 0 {
		return nil
	}
	joined := strings.Join(a.messages, "; ")
	a.messages = nil
	return &joined
}

// Len reports how many messages are currently pending.
func (a *Accumulator) Len() int { return len(a.messages) }
