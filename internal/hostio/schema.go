// Package hostio is the narrow boundary between this module and the host
// database's vector memory model (spec.md §1 lists the vector model itself
// as out of scope). It provides a single schema descriptor, a ChunkWriter
// abstraction over that descriptor (spec.md §9 "chunk writer abstraction"),
// and an in-memory reference vector implementation standing in for the
// host's real column storage, grounded on the ordered-struct-of-slices
// shape kyleboon-gochess/internal/db/sqlite.go uses for its own row
// batching before a transactional insert.
package hostio

// ColumnType is the semantic type of one output column.
type ColumnType int

const (
	TypeText ColumnType = iota
	TypeU32
	TypeDate
	TypeTimeTZ
)

func (t ColumnType) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeU32:
		return "u32"
	case TypeDate:
		return "date"
	case TypeTimeTZ:
		return "time_tz"
	default:
		return "unknown"
	}
}

// Column is one (name, type, nullable) declaration.
type Column struct {
	Name     string
	Type     ColumnType
	Nullable bool
}

// Schema is the single ordered column descriptor read_pgn's bind phase
// registers and its execution phase writes against (spec.md §9 "column
// schema as a single descriptor" — never hardcode column numbers in more
// than one place).
var Schema = []Column{
	{Name: "Event", Type: TypeText, Nullable: true},
	{Name: "Site", Type: TypeText, Nullable: true},
	{Name: "White", Type: TypeText, Nullable: true},
	{Name: "Black", Type: TypeText, Nullable: true},
	{Name: "Result", Type: TypeText, Nullable: true},
	{Name: "WhiteTitle", Type: TypeText, Nullable: true},
	{Name: "BlackTitle", Type: TypeText, Nullable: true},
	{Name: "WhiteElo", Type: TypeU32, Nullable: true},
	{Name: "BlackElo", Type: TypeU32, Nullable: true},
	{Name: "UTCDate", Type: TypeDate, Nullable: true},
	{Name: "UTCTime", Type: TypeTimeTZ, Nullable: true},
	{Name: "ECO", Type: TypeText, Nullable: true},
	{Name: "Opening", Type: TypeText, Nullable: true},
	{Name: "Termination", Type: TypeText, Nullable: true},
	{Name: "TimeControl", Type: TypeText, Nullable: true},
	{Name: "movetext", Type: TypeText, Nullable: false},
	{Name: "parse_error", Type: TypeText, Nullable: true},
	{Name: "Source", Type: TypeText, Nullable: true},
}

// ColumnIndex returns the 0-based index of a column by name, or -1 if no
// column has that name. WriteRow resolves every column it writes through
// this lookup, as do MemChunk.Get and the tests.
func ColumnIndex(name string) int {
	for i, c := range Schema {
		if c.Name == name {
			return i
		}
	}
	return -1
}
