package hostio

import (
	"github.com/kyleboon/chessdb/internal/diag"
	"github.com/kyleboon/chessdb/internal/pgn"
)

// ChunkWriter is the narrow interface between one GameRecord and the host's
// column vectors for the chunk currently being filled. Implementations
// cover the concrete value shapes spec.md §9 lists; WriteRow is the single
// entry point the reader's execution loop calls per game, so the mapping
// from GameRecord field to column lives in one place driven by Schema.
type ChunkWriter interface {
	SetText(col int, v string)
	SetOptionalText(col int, v *string)
	SetU32(col int, v uint32)
	SetOptionalU32(col int, v *uint32)
	SetDate(col int, v pgn.Date)
	SetOptionalDate(col int, v *pgn.Date)
	SetTimeTZ(col int, v pgn.TimeOfDay)
	SetOptionalTimeTZ(col int, v *pgn.TimeOfDay)
	SetNull(col int)

	// Len reports how many rows have been written so far in this chunk.
	Len() int

	// RowsWritten is an ambient observability hook (not a spec column): the
	// same count as Len under a second name. The TUI dashboard does not read
	// it; it counts rows from the events it receives.
	RowsWritten() int
}

// WriteRow pours one GameRecord through w according to Schema, so a new
// GameRecord field only needs a case added here rather than at every
// call site that constructs a chunk. Interior-NUL bytes in any text field
// are sanitized (see sanitizeText) and folded into the row's parse_error
// rather than silently dropped.
func WriteRow(w ChunkWriter, rec *pgn.GameRecord, source *string) {
	var accum diag.Accumulator
	if rec.ParseError != nil {
		accum.Push(*rec.ParseError)
	}

	setOptionalTextChecked := func(col int, name string, v *string) {
		if v == nil {
			w.SetNull(col)
			return
		}
		clean, sanitized := sanitizeText(*v)
		if sanitized {
			accum.Pushf("%s contained an interior NUL byte; sanitized", name)
		}
		w.SetText(col, clean)
	}

	setOptionalTextChecked(ColumnIndex("Event"), "Event", rec.Event)
	setOptionalTextChecked(ColumnIndex("Site"), "Site", rec.Site)
	setOptionalTextChecked(ColumnIndex("White"), "White", rec.White)
	setOptionalTextChecked(ColumnIndex("Black"), "Black", rec.Black)
	setOptionalTextChecked(ColumnIndex("Result"), "Result", rec.Result)
	setOptionalTextChecked(ColumnIndex("WhiteTitle"), "WhiteTitle", rec.WhiteTitle)
	setOptionalTextChecked(ColumnIndex("BlackTitle"), "BlackTitle", rec.BlackTitle)
	w.SetOptionalU32(ColumnIndex("WhiteElo"), rec.WhiteElo)
	w.SetOptionalU32(ColumnIndex("BlackElo"), rec.BlackElo)
	w.SetOptionalDate(ColumnIndex("UTCDate"), rec.UTCDate)
	w.SetOptionalTimeTZ(ColumnIndex("UTCTime"), rec.UTCTime)
	setOptionalTextChecked(ColumnIndex("ECO"), "ECO", rec.ECO)
	setOptionalTextChecked(ColumnIndex("Opening"), "Opening", rec.Opening)
	setOptionalTextChecked(ColumnIndex("Termination"), "Termination", rec.Termination)
	setOptionalTextChecked(ColumnIndex("TimeControl"), "TimeControl", rec.TimeControl)

	movetext, movetextSanitized := sanitizeText(rec.Movetext)
	if movetextSanitized {
		accum.Pushf("movetext contained an interior NUL byte; sanitized")
	}
	w.SetText(ColumnIndex("movetext"), movetext)

	w.SetOptionalText(ColumnIndex("parse_error"), accum.Take())
	setOptionalTextChecked(ColumnIndex("Source"), "Source", source)
}
