// Package movetext implements the chess_* scalar kernels (spec.md §4.4) as
// thin Visitor-less adapters directly over internal/pgn's exported
// ScanMovetext tokenizer and internal/chesscore's Board: each kernel drives
// the engine over a bare movetext string (no tag-pair framing) and folds
// its event stream into one scalar result, mirroring how internal/pgn's own
// Visitor folds a full event stream into a GameRecord.
package movetext

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/kyleboon/chessdb/internal/chesscore"
	"github.com/kyleboon/chessdb/internal/pgn"
)

// Normalize drives chess_moves_normalize. Null input returns nil; empty
// input returns an empty string; an input the engine cannot make any
// progress on also returns an empty string.
func Normalize(movetext *string) *string {
	if movetext == nil {
		return nil
	}
	if *movetext == "" {
		s := ""
		return &s
	}
	sans, outcome, err := mainline(*movetext)
	if err != nil && len(sans) == 0 {
		s := ""
		return &s
	}
	s := buildMovetext(sans, outcome)
	return &s
}

func buildMovetext(sans []string, outcome string) string {
	var parts []string
	for i, san := range sans {
		if i%2 == 0 {
			parts = append(parts, moveNumberToken(i/2+1))
		}
		parts = append(parts, san)
	}
	if outcome != "" {
		parts = append(parts, outcome)
	}
	return strings.Join(parts, " ")
}

func moveNumberToken(n int) string {
	return strconv.Itoa(n) + "."
}

// PlyCount drives chess_ply_count. Null input returns nil; empty or fully
// unparseable input returns 0.
func PlyCount(movetext *string) *int64 {
	if movetext == nil {
		return nil
	}
	if *movetext == "" {
		zero := int64(0)
		return &zero
	}
	events, _ := pgn.ScanMovetext([]byte(*movetext))
	var n int64
	for _, ev := range events {
		if ev.Type == pgn.EventSAN {
			n++
		}
	}
	return &n
}

// Hash drives chess_moves_hash: the Zobrist key of the last position
// reached before the first illegal or unparseable SAN token, or of the
// starting position if no move applies cleanly. Null/empty input ⇒ nil.
func Hash(movetext *string) *uint64 {
	if movetext == nil || *movetext == "" {
		return nil
	}
	events, _ := pgn.ScanMovetext([]byte(*movetext))
	board := chesscore.NewBoard()
	for _, ev := range events {
		if ev.Type != pgn.EventSAN {
			continue
		}
		if _, err := board.ApplySAN(ev.San); err != nil {
			break
		}
	}
	h := board.Hash()
	return &h
}

type plyRecord struct {
	Ply int    `json:"ply"`
	Move string `json:"move"`
	Fen  string `json:"fen"`
	Epd  string `json:"epd"`
}

// JSON drives chess_moves_json. Both a nil and an empty movetext return the
// literal "[]" (this kernel does not distinguish null from empty, per
// spec.md §4.4). maxPly <= 0 also short-circuits to "[]"; maxPly == nil
// means "all plies".
func JSON(movetext *string, maxPly *int64) string {
	if movetext == nil || *movetext == "" {
		return "[]"
	}
	if maxPly != nil && *maxPly <= 0 {
		return "[]"
	}
	limit := int64(-1)
	if maxPly != nil {
		limit = *maxPly
	}
	events, _ := pgn.ScanMovetext([]byte(*movetext))
	board := chesscore.NewBoard()
	var recs []plyRecord
	ply := 0
	for _, ev := range events {
		if ev.Type != pgn.EventSAN {
			continue
		}
		if limit >= 0 && int64(ply) >= limit {
			break
		}
		if _, err := board.ApplySAN(ev.San); err != nil {
			break
		}
		ply++
		fen := board.FEN()
		epd, _ := chesscore.EPD(fen)
		recs = append(recs, plyRecord{Ply: ply, Move: ev.San, Fen: fen, Epd: epd})
	}
	if recs == nil {
		recs = []plyRecord{}
	}
	b, err := json.Marshal(recs)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// mainline tokenizes s and separates its mainline SAN tokens from its
// outcome marker, for the kernels that need both.
func mainline(s string) (sans []string, outcome string, err error) {
	events, scanErr := pgn.ScanMovetext([]byte(s))
	for _, ev := range events {
		switch ev.Type {
		case pgn.EventSAN:
			sans = append(sans, ev.San)
		case pgn.EventOutcome:
			outcome = ev.Outcome
		}
	}
	return sans, outcome, scanErr
}

// FenEpd drives chess_fen_epd: the first four space-separated fields of a
// FEN string. Nil/empty/invalid ⇒ nil.
func FenEpd(fen *string) *string {
	if fen == nil || *fen == "" {
		return nil
	}
	epd, err := chesscore.EPD(*fen)
	if err != nil {
		return nil
	}
	return &epd
}

// --- chess_moves_subset ------------------------------------------------
//
// The conservative fast path triggers only when the input contains none of
// '{', '(', '$' and every whitespace-split token is a move-number token
// (digits followed by one or more '.'), a result marker (skipped wherever
// it appears) or a SAN-shaped token; any other token shape forces the
// parser-backed path. This mirrors the boundary documented for this
// kernel's fast path.

var (
	moveNumberTokenRe = regexp.MustCompile(`^[0-9]+\.+$`)
	sanTokenRe        = regexp.MustCompile(`^((O-O-O|O-O)|((P?|[RNBQK])[a-h]?[1-8]?x?[a-h][1-8](=[PRNBQK])?))(\+|#)?$`)
	resultTokenRe     = regexp.MustCompile(`^(1-0|0-1|1/2-1/2|\*)$`)
)

// Subset drives chess_moves_subset. Null arguments propagate nil. Otherwise
// a non-null argument that cannot be parsed at all returns false.
func Subset(short, long *string) *bool {
	if short == nil || long == nil {
		return nil
	}

	if fast, ok := fastSubset(*short, *long); ok {
		return &fast
	}

	shortSans, ok1 := sanMainline(*short)
	if !ok1 {
		f := false
		return &f
	}
	longSans, ok2 := sanMainline(*long)
	if !ok2 {
		f := false
		return &f
	}
	result := isPrefix(shortSans, longSans)
	return &result
}

func isPrefix(short, long []string) bool {
	if len(short) > len(long) {
		return false
	}
	for i, m := range short {
		if long[i] != m {
			return false
		}
	}
	return true
}

// sanMainline returns the mainline SAN tokens of s via the parser-backed
// path. ok is false only when s is non-empty and the engine could make no
// progress on it at all.
func sanMainline(s string) (sans []string, ok bool) {
	if s == "" {
		return nil, true
	}
	events, err := pgn.ScanMovetext([]byte(s))
	for _, ev := range events {
		if ev.Type == pgn.EventSAN {
			sans = append(sans, ev.San)
		}
	}
	if err != nil && len(sans) == 0 {
		return nil, false
	}
	return sans, true
}

// fastSubset attempts the textual prefix check. ok reports whether both
// inputs were eligible for the fast path at all; when ok is false the
// caller must fall back to the parser-backed path.
func fastSubset(short, long string) (result bool, ok bool) {
	shortTokens, ok1 := fastTokens(short)
	if !ok1 {
		return false, false
	}
	longTokens, ok2 := fastTokens(long)
	if !ok2 {
		return false, false
	}
	return isPrefix(shortTokens, longTokens), true
}

// fastTokens returns the SAN-only tokens of s (move numbers and result
// markers stripped) if s is "obviously clean": no braces, parens, or NAGs,
// and every whitespace-split token matches the move-number, result-marker
// or SAN token shape.
func fastTokens(s string) (sans []string, ok bool) {
	if strings.ContainsAny(s, "{($") {
		return nil, false
	}
	fields := strings.Fields(s)
	for _, tok := range fields {
		switch {
		case moveNumberTokenRe.MatchString(tok):
			continue
		case resultTokenRe.MatchString(tok):
			continue
		case sanTokenRe.MatchString(tok):
			sans = append(sans, tok)
		default:
			return nil, false
		}
	}
	return sans, true
}
