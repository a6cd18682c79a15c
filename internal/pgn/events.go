// Package pgn is the streaming PGN engine this module drives the Visitor
// (spec.md §4.1) against. Grounded on anastasop-gochess/pgn.go's hand
// written tokenizer, generalized from its tree-building parser into the
// flat event stream spec.md §4.1 specifies (begin-tags, tag,
// begin-movetext, san, comment, begin-variation, outcome, end-game), and
// cross-checked on tag-pair line handling against the vendored
// corentings/chess v2 pgn.go fragment in other_examples/.
package pgn

// EventType identifies one step of the PGN event stream spec.md §4.1
// describes the Visitor as consuming.
type EventType int

const (
	EventBeginTags EventType = iota
	EventTag
	EventBeginMovetext
	EventSAN
	EventComment
	EventBeginVariation
	EventOutcome
	EventEndGame
)

func (t EventType) String() string {
	switch t {
	case EventBeginTags:
		return "begin-tags"
	case EventTag:
		return "tag"
	case EventBeginMovetext:
		return "begin-movetext"
	case EventSAN:
		return "san"
	case EventComment:
		return "comment"
	case EventBeginVariation:
		return "begin-variation"
	case EventOutcome:
		return "outcome"
	case EventEndGame:
		return "end-game"
	default:
		return "unknown"
	}
}

// Event is one step of the stream. Only the fields relevant to Type are
// populated; the rest are zero.
type Event struct {
	Type     EventType
	TagName  string
	TagValue string
	San      string
	Comment  string
	Outcome  string

	// Err is set on an EventEndGame that was forced early by a mid-stream
	// parser failure (spec.md §7 item 4, "per-game parser failure"). The
	// game up to that point is still reported via the events already
	// emitted; the caller should finalize with this error rather than
	// discard the partial game.
	Err error
}
