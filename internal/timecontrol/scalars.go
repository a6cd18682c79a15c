package timecontrol

import (
	"encoding/json"
)

// Normalize drives the chess_timecontrol_normalize scalar: canonical text,
// or nil on failure.
func Normalize(raw string) *string {
	return Parse(raw).Normalized
}

// CategoryOf drives chess_timecontrol_category: the Lichess speed class, or
// nil if the parse isn't a categorizable normal-mode TimeControl.
func CategoryOf(raw string) *string {
	p := Parse(raw)
	c := Category(p)
	if c == "" {
		return nil
	}
	return &c
}

// jsonStage mirrors Stage's shape in the wire JSON; moves is omitted when
// the stage carries no move cutoff, matching periods like "5400+30".
type jsonStage struct {
	Moves     int `json:"moves,omitempty"`
	Base      int `json:"base"`
	Increment int `json:"increment"`
}

type jsonRecord struct {
	Raw        string      `json:"raw"`
	Normalized *string     `json:"normalized"`
	Mode       string      `json:"mode"`
	Periods    []jsonStage `json:"periods"`
	Warnings   []string    `json:"warnings"`
	Inferred   bool        `json:"inferred"`
}

// JSON drives chess_timecontrol_json: a compact JSON object
// {raw, normalized, mode, periods, warnings, inferred}.
func JSON(raw string) string {
	p := Parse(raw)
	rec := jsonRecord{
		Raw:        p.Raw,
		Normalized: p.Normalized,
		Mode:       p.Mode.String(),
		Warnings:   p.Warnings,
		Inferred:   p.Inferred,
	}
	if rec.Warnings == nil {
		rec.Warnings = []string{}
	}
	rec.Periods = make([]jsonStage, len(p.Periods))
	for i, s := range p.Periods {
		rec.Periods[i] = jsonStage{Moves: s.Moves, Base: s.Base, Increment: s.Increment}
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return "{}"
	}
	return string(b)
}
