package pgn

// ReadGame drives one game's worth of events from s into v and returns the
// resulting GameRecord. Returns io.EOF (with a nil record) once the stream
// is exhausted. A mid-stream parser failure does not surface as a Go error:
// per spec.md §7 item 4, it is folded into the record via
// Visitor.FinalizeWithError and the row is still returned.
func ReadGame(s *Scanner, v *Visitor) (*GameRecord, error) {
	sawBeginTags := false
	for {
		ev, err := s.Next()
		if err != nil {
			if !sawBeginTags {
				return nil, err
			}
			// stream ended mid-game; finalize what we have.
			return v.FinalizeWithError("stream ended unexpectedly: " + err.Error()), nil
		}
		switch ev.Type {
		case EventBeginTags:
			v.BeginTags()
			sawBeginTags = true
		case EventTag:
			v.Tag(ev.TagName, ev.TagValue)
		case EventBeginMovetext:
			v.BeginMovetext()
		case EventSAN:
			v.SAN(ev.San)
		case EventComment:
			v.Comment(ev.Comment)
		case EventBeginVariation:
			v.BeginVariation()
		case EventOutcome:
			v.Outcome(ev.Outcome)
		case EventEndGame:
			if ev.Err != nil {
				return v.FinalizeWithError(ev.Err.Error()), nil
			}
			return v.EndGame(), nil
		}
	}
}
