package hostio

import (
	"strings"

	"github.com/kyleboon/chessdb/internal/pgn"
)

// This resolves the open question spec.md §9 leaves to the implementer:
// the host's text vector encoding cannot carry an embedded NUL. Rather than
// reject the row outright (which would silently drop real game data over
// one corrupt byte), text is sanitized by replacing NUL with U+FFFD. This
// mirrors the existing lossy-decode policy for invalid UTF-8 (spec.md
// §6.2) rather than introducing a second failure mode alongside it.
// WriteRow (writer.go) is what actually folds the sanitization diagnostic
// into parse_error, since only it has the field name to attribute the
// diagnostic to; SetText's own check below is a second line of defense for
// callers that bypass WriteRow.
const nulReplacement = "�"

func sanitizeText(s string) (clean string, sanitized bool) {
	if !strings.ContainsRune(s, 0) {
		return s, false
	}
	return strings.ReplaceAll(s, "\x00", nulReplacement), true
}

// MemChunk is an in-memory reference ChunkWriter standing in for the host's
// real vector memory (explicitly out of scope per spec.md §1). Column
// storage is one slice of `any` per declared column, with a parallel
// null-mask slice, in the spirit of the column-batch shape
// kyleboon-gochess/internal/db/sqlite.go builds before a single
// transactional insert.
type MemChunk struct {
	columns [][]any
	null    [][]bool
	rows    int

	// NULSanitized counts SetText calls whose value needed NUL-stripping, for
	// callers that want to fold it into parse_error without threading a
	// diagnostic return value through every setter.
	NULSanitized int
}

// NewMemChunk allocates a chunk with one column slot per entry in Schema.
func NewMemChunk() *MemChunk {
	c := &MemChunk{
		columns: make([][]any, len(Schema)),
		null:    make([][]bool, len(Schema)),
	}
	return c
}

func (c *MemChunk) grow(col int) {
	for len(c.columns[col]) <= c.rows {
		c.columns[col] = append(c.columns[col], nil)
		c.null[col] = append(c.null[col], false)
	}
}

// StartRow must be called once before each row's setters, advancing the
// chunk's row cursor. WriteRow's caller (the reader's execution loop) is
// responsible for calling this between games.
func (c *MemChunk) StartRow() {
	c.rows++
	for i := range c.columns {
		c.grow(i)
	}
}

func (c *MemChunk) Len() int { return c.rows }

// RowsWritten reports the same count as Len, as an ambient observability
// hook (SPEC_FULL.md SUPPLEMENTED FEATURES; not a spec column). Nothing in
// this module calls it.
func (c *MemChunk) RowsWritten() int { return c.rows }

func (c *MemChunk) row() int { return c.rows - 1 }

func (c *MemChunk) SetText(col int, v string) {
	clean, sanitized := sanitizeText(v)
	if sanitized {
		c.NULSanitized++
	}
	c.columns[col][c.row()] = clean
	c.null[col][c.row()] = false
}

func (c *MemChunk) SetOptionalText(col int, v *string) {
	if v == nil {
		c.SetNull(col)
		return
	}
	c.SetText(col, *v)
}

func (c *MemChunk) SetU32(col int, v uint32) {
	c.columns[col][c.row()] = v
	c.null[col][c.row()] = false
}

func (c *MemChunk) SetOptionalU32(col int, v *uint32) {
	if v == nil {
		c.SetNull(col)
		return
	}
	c.SetU32(col, *v)
}

func (c *MemChunk) SetDate(col int, v pgn.Date) {
	c.columns[col][c.row()] = v
	c.null[col][c.row()] = false
}

func (c *MemChunk) SetOptionalDate(col int, v *pgn.Date) {
	if v == nil {
		c.SetNull(col)
		return
	}
	c.SetDate(col, *v)
}

func (c *MemChunk) SetTimeTZ(col int, v pgn.TimeOfDay) {
	c.columns[col][c.row()] = v
	c.null[col][c.row()] = false
}

func (c *MemChunk) SetOptionalTimeTZ(col int, v *pgn.TimeOfDay) {
	if v == nil {
		c.SetNull(col)
		return
	}
	c.SetTimeTZ(col, *v)
}

func (c *MemChunk) SetNull(col int) {
	c.columns[col][c.row()] = nil
	c.null[col][c.row()] = true
}

// Get returns the value stored for (row, column name) and whether it is
// null. Used by tests and by the chunk consumers in cmd/chessdb (watch) and
// internal/dbindex.
func (c *MemChunk) Get(row int, name string) (any, bool) {
	idx := ColumnIndex(name)
	if idx < 0 || row >= c.rows {
		return nil, true
	}
	return c.columns[idx][row], c.null[idx][row]
}
