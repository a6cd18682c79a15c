package chesscore

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewBoardFromFEN parses a full six-field FEN string into a Board. Grounded
// on kyleboon-gochess/internal/fen.go's field-by-field structure, adapted
// onto this package's mailbox representation and explicit castling flags.
func NewBoardFromFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fmt.Errorf("fen: expected 6 space-separated fields, got %d", len(fields))
	}
	b := newEmptyBoard()

	if err := parsePlacement(b, fields[0]); err != nil {
		return nil, err
	}
	switch fields[1] {
	case "w":
		b.sideToMove = White
	case "b":
		b.sideToMove = Black
	default:
		return nil, fmt.Errorf("fen: invalid active color %q", fields[1])
	}
	if err := parseCastlingField(b, fields[2]); err != nil {
		return nil, err
	}
	if fields[3] == "-" {
		b.epSquare = NoSquare
	} else {
		sq := SquareFromString(fields[3])
		if sq == NoSquare {
			return nil, fmt.Errorf("fen: invalid en-passant target %q", fields[3])
		}
		b.epSquare = sq
	}
	halfmove, err := strconv.Atoi(fields[4])
	if err != nil || halfmove < 0 {
		return nil, fmt.Errorf("fen: invalid halfmove clock %q", fields[4])
	}
	b.halfmove = halfmove
	fullmove, err := strconv.Atoi(fields[5])
	if err != nil || fullmove < 1 {
		return nil, fmt.Errorf("fen: invalid fullmove number %q", fields[5])
	}
	b.fullmove = fullmove
	return b, nil
}

func parsePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("fen: expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if file >= 8 {
				return fmt.Errorf("fen: rank %d overflows 8 files", rank+1)
			}
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			t := pieceTypeFromLetter(byte(strings.ToUpper(string(ch))[0]))
			if t == NoPieceType {
				return fmt.Errorf("fen: invalid piece letter %q", ch)
			}
			color := White
			if ch >= 'a' && ch <= 'z' {
				color = Black
			}
			b.set(NewSquare(file, rank), makePiece(color, t))
			file++
		}
		if file != 8 {
			return fmt.Errorf("fen: rank %d has %d files, want 8", rank+1, file)
		}
	}
	return nil
}

func parseCastlingField(b *Board, castling string) error {
	for i := range b.castle {
		b.castle[i] = false
	}
	if castling == "-" {
		return nil
	}
	for _, ch := range castling {
		switch ch {
		case 'K':
			b.castle[castleWK] = true
		case 'Q':
			b.castle[castleWQ] = true
		case 'k':
			b.castle[castleBK] = true
		case 'q':
			b.castle[castleBQ] = true
		default:
			return fmt.Errorf("fen: invalid castling availability %q", castling)
		}
	}
	return nil
}

// FEN serializes the board to a full six-field FEN string.
func (b *Board) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empties := 0
		for file := 0; file < 8; file++ {
			p := b.Get(NewSquare(file, rank))
			if p.IsEmpty() {
				empties++
				continue
			}
			if empties > 0 {
				sb.WriteString(strconv.Itoa(empties))
				empties = 0
			}
			sb.WriteByte(p.FENChar())
		}
		if empties > 0 {
			sb.WriteString(strconv.Itoa(empties))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(b.sideToMove.String())

	sb.WriteByte(' ')
	any := false
	if b.castle[castleWK] {
		sb.WriteByte('K')
		any = true
	}
	if b.castle[castleWQ] {
		sb.WriteByte('Q')
		any = true
	}
	if b.castle[castleBK] {
		sb.WriteByte('k')
		any = true
	}
	if b.castle[castleBQ] {
		sb.WriteByte('q')
		any = true
	}
	if !any {
		sb.WriteByte('-')
	}

	sb.WriteByte(' ')
	sb.WriteString(b.epSquare.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullmove))

	return sb.String()
}

// EPD returns the first four space-separated fields of a FEN string: board,
// side to move, castling rights, en-passant target. Shared by chess_fen_epd
// and the per-ply chess_moves_json trace so the two call sites cannot drift
// (SPEC_FULL.md § SUPPLEMENTED FEATURES).
func EPD(fen string) (string, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return "", fmt.Errorf("fen: need at least 4 fields for epd, got %d", len(fields))
	}
	return strings.Join(fields[:4], " "), nil
}

// EPD returns this board's position key (the first four FEN fields).
func (b *Board) EPD() string {
	epd, _ := EPD(b.FEN())
	return epd
}
