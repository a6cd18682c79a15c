package pgn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kyleboon/chessdb/internal/chesscore"
	"github.com/kyleboon/chessdb/internal/diag"
)

// Visitor consumes a Scanner's event stream and produces one GameRecord per
// game (spec.md §4.1). It owns the board position used to validate moves.
type Visitor struct {
	gameCounter int

	headers map[string]string // first-value-wins, set during Tag()
	fenRaw  string

	board             *chesscore.Board
	appliedSAN        []string
	comments          map[int]string // ply -> formatted " { text }"
	resultMarker      string
	validationFailed  bool
	accum             diag.Accumulator
	ply               int
}

// NewVisitor returns a ready-to-use Visitor.
func NewVisitor() *Visitor {
	v := &Visitor{}
	v.BeginTags()
	return v
}

var knownHeaderOrder = []string{
	"Event", "Site", "White", "Black", "Result", "WhiteTitle", "BlackTitle",
	"ECO", "Opening", "Termination", "TimeControl", "Source",
	"WhiteElo", "BlackElo",
	"UTCDate", "Date", "EventDate",
	"UTCTime", "Time",
	"FEN",
}

// BeginTags resets all per-game state except the game counter, and
// increments the game counter (spec.md §4.1 "begin_tags").
func (v *Visitor) BeginTags() {
	v.gameCounter++
	v.headers = make(map[string]string, len(knownHeaderOrder))
	v.fenRaw = ""
	v.board = nil
	v.appliedSAN = nil
	v.comments = make(map[int]string)
	v.resultMarker = ""
	v.validationFailed = false
	v.ply = 0
}

// Tag records a header value. First value wins for duplicate known tags;
// unknown tags are discarded (spec.md §4.1 "tag").
func (v *Visitor) Tag(name, value string) {
	if name == "FEN" {
		if v.fenRaw == "" {
			v.fenRaw = value
		}
		return
	}
	if !isKnownHeader(name) {
		return
	}
	if _, exists := v.headers[name]; !exists {
		v.headers[name] = value
	}
}

func isKnownHeader(name string) bool {
	for _, h := range knownHeaderOrder {
		if h == name {
			return true
		}
	}
	return false
}

// BeginMovetext commits the starting position, either the standard start
// or from a FEN tag (spec.md §4.1 "begin_movetext").
func (v *Visitor) BeginMovetext() {
	if v.fenRaw != "" {
		b, err := chesscore.NewBoardFromFEN(v.fenRaw)
		if err != nil {
			v.accum.Pushf("FEN tag conversion error: invalid FEN %q: %s", v.fenRaw, err)
			v.board = chesscore.NewBoard()
			return
		}
		v.board = b
		return
	}
	v.board = chesscore.NewBoard()
}

// SAN validates sanPlus against the current position (spec.md §4.1 "san").
func (v *Visitor) SAN(sanPlus string) {
	if v.board == nil {
		v.board = chesscore.NewBoard()
	}
	v.ply++
	mv, err := v.board.ApplySAN(sanPlus)
	if err != nil {
		v.accum.Pushf("Illegal move %q at ply %d from position %s: %s", sanPlus, v.ply, v.board.FEN(), err)
		v.validationFailed = true
		v.ply--
		return
	}
	v.appliedSAN = append(v.appliedSAN, mv.San)
}

// Comment stores a formatted comment anchored to the current ply (spec.md
// §4.1 "comment"). Decoding is lossy for invalid UTF-8, matching §6.2's
// "bytes not valid UTF-8 are decoded with replacement characters".
func (v *Visitor) Comment(raw string) {
	text := strings.Join(strings.Fields(strings.ToValidUTF8(raw, "�")), " ")
	if text == "" {
		return
	}
	existing, ok := v.comments[v.ply]
	if ok {
		v.comments[v.ply] = existing + " { " + text + " }"
	} else {
		v.comments[v.ply] = " { " + text + " }"
	}
}

// BeginVariation is a no-op: the Scanner already excludes variation
// subtrees from the event stream (spec.md §4.1 "begin_variation — skip the
// entire variation subtree").
func (v *Visitor) BeginVariation() {}

// Outcome records the game's terminal marker (spec.md §4.1 "outcome").
func (v *Visitor) Outcome(marker string) {
	v.resultMarker = marker
}

// EndGame synthesizes the GameRecord for the game just consumed (spec.md
// §4.1 "end_game").
func (v *Visitor) EndGame() *GameRecord {
	rec := &GameRecord{
		Movetext: v.buildMovetext(),
	}
	v.fillTextFields(rec)
	v.fillElo(rec)
	v.fillDate(rec)
	v.fillTime(rec)
	if rec.Result == nil && v.resultMarker != "" {
		m := v.resultMarker
		rec.Result = &m
	}
	rec.ParseError = v.accum.Take()
	return rec
}

// FinalizeWithError accumulates a mid-stream parser failure message and
// emits whatever partial record the game accumulated so far (spec.md §4.2
// policy, §7 item 4).
func (v *Visitor) FinalizeWithError(msg string) *GameRecord {
	v.accum.Push(msg)
	return v.EndGame()
}

func (v *Visitor) buildMovetext() string {
	var sb strings.Builder
	if c, ok := v.comments[0]; ok {
		sb.WriteString(strings.TrimSpace(c))
	}
	for i, san := range v.appliedSAN {
		ply := i + 1
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		if ply%2 == 1 {
			sb.WriteString(strconv.Itoa(ply/2 + 1))
			sb.WriteString(". ")
		}
		sb.WriteString(san)
		if c, ok := v.comments[ply]; ok {
			sb.WriteByte(' ')
			sb.WriteString(strings.TrimSpace(c))
		}
	}
	return sb.String()
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (v *Visitor) fillTextFields(rec *GameRecord) {
	rec.Event = optStr(v.headers["Event"])
	rec.Site = optStr(v.headers["Site"])
	rec.White = optStr(v.headers["White"])
	rec.Black = optStr(v.headers["Black"])
	rec.Result = optStr(v.headers["Result"])
	rec.WhiteTitle = optStr(v.headers["WhiteTitle"])
	rec.BlackTitle = optStr(v.headers["BlackTitle"])
	rec.ECO = optStr(v.headers["ECO"])
	rec.Opening = optStr(v.headers["Opening"])
	rec.Termination = optStr(v.headers["Termination"])
	rec.TimeControl = optStr(v.headers["TimeControl"])
	rec.Source = optStr(v.headers["Source"])
}

func (v *Visitor) fillElo(rec *GameRecord) {
	rec.WhiteElo = v.convertElo("White", v.headers["WhiteElo"])
	rec.BlackElo = v.convertElo("Black", v.headers["BlackElo"])
}

func (v *Visitor) convertElo(side, raw string) *uint32 {
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		v.accum.Pushf("%sElo conversion error: invalid literal %q", side, raw)
		return nil
	}
	val := uint32(n)
	return &val
}

// dateCandidate is one entry in the UTCDate/Date/EventDate fallback chain.
type dateCandidate struct {
	header string
	raw    string
}

func (v *Visitor) fillDate(rec *GameRecord) {
	candidates := []dateCandidate{
		{"UTCDate", v.headers["UTCDate"]},
		{"Date", v.headers["Date"]},
		{"EventDate", v.headers["EventDate"]},
	}
	var best *Date
	bestScore := -1
	for _, c := range candidates {
		if c.raw == "" {
			continue
		}
		d, score, err := parseDateCandidate(c.raw)
		if err != nil {
			v.accum.Pushf("%s conversion error: %q (%s)", c.header, c.raw, err)
			continue
		}
		if d == nil {
			continue // "????" year: unknown, no diagnostic
		}
		if score > bestScore {
			best, bestScore = d, score
		}
	}
	rec.UTCDate = best
}

// parseDateCandidate normalizes and parses one date tag value. Returns
// (nil, _, nil) for an all-unknown year ("????"), contributing no
// diagnostic (spec.md §4.1.1).
func parseDateCandidate(raw string) (*Date, int, error) {
	norm := strings.ReplaceAll(raw, ".", "-")
	parts := strings.SplitN(norm, "-", 3)
	for len(parts) < 3 {
		parts = append(parts, "??")
	}
	yearStr, monthStr, dayStr := parts[0], parts[1], parts[2]
	if yearStr == "????" || yearStr == "" {
		return nil, 0, nil
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid year %q", yearStr)
	}
	score := 0
	month := 1
	if monthStr != "??" && monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid month %q", monthStr)
		}
		if m < 1 || m > 12 {
			return nil, 0, fmt.Errorf("month %d out of range", m)
		}
		month = m
		score = 1
	}
	day := 1
	if dayStr != "??" && dayStr != "" {
		d, err := strconv.Atoi(dayStr)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid day %q", dayStr)
		}
		day = d
		if score == 1 {
			score = 2
		}
	}
	last := lastDayOfMonth(year, month)
	if day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return &Date{Year: year, Month: month, Day: day}, score, nil
}

type timeCandidate struct {
	header string
	raw    string
}

func (v *Visitor) fillTime(rec *GameRecord) {
	candidates := []timeCandidate{
		{"UTCTime", v.headers["UTCTime"]},
		{"Time", v.headers["Time"]},
	}
	for _, c := range candidates {
		if c.raw == "" {
			continue
		}
		t, err := parseTimeCandidate(c.raw)
		if err != nil {
			v.accum.Pushf("%s conversion error: %q (%s)", c.header, c.raw, err)
			continue
		}
		rec.UTCTime = t
		return
	}
}

func parseTimeCandidate(raw string) (*TimeOfDay, error) {
	s := strings.TrimSpace(raw)
	offsetMinutes := 0
	if strings.HasSuffix(s, "Z") {
		s = s[:len(s)-1]
	} else if idx := strings.IndexAny(s, "+-"); idx > 0 {
		sign := 1
		if s[idx] == '-' {
			sign = -1
		}
		offStr := s[idx+1:]
		s = s[:idx]
		offParts := strings.Split(offStr, ":")
		oh, err := strconv.Atoi(offParts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid offset %q", offStr)
		}
		om := 0
		if len(offParts) > 1 {
			om, err = strconv.Atoi(offParts[1])
			if err != nil {
				return nil, fmt.Errorf("invalid offset %q", offStr)
			}
		}
		offsetMinutes = sign * (oh*60 + om)
	}
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("expected HH:MM:SS")
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return nil, fmt.Errorf("invalid hour %q", parts[0])
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return nil, fmt.Errorf("invalid minute %q", parts[1])
	}
	sec, err := strconv.Atoi(parts[2])
	if err != nil || sec < 0 || sec > 60 {
		return nil, fmt.Errorf("invalid second %q", parts[2])
	}
	return &TimeOfDay{Hour: h, Minute: m, Second: sec, OffsetMinutes: offsetMinutes}, nil
}
