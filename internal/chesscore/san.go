package chesscore

import (
	"regexp"
	"strings"
)

// sanPattern decomposes a SAN token into piece letter, disambiguation file,
// disambiguation rank, capture flag, destination square and promotion
// piece. More explicit than anastasop-gochess/pgn.go's rSANRE (which folds
// file and rank disambiguation into one loosely-matched group); splitting
// them lets ApplySAN disambiguate by file and rank independently, as real
// SAN requires (e.g. "R1e2" vs "Rde2" vs the rare fully-qualified "Rd1e2").
var sanPattern = regexp.MustCompile(`^([NBRQK]?)([a-h]?)([1-8]?)(x?)([a-h][1-8])(=[NBRQK])?$`)

// ApplySAN validates and applies a SAN move token against the current
// position, mutating the board on success. On failure the board is left
// unchanged and an *IllegalMoveError is returned (spec.md §4.1 "san").
func (b *Board) ApplySAN(sanPlus string) (Move, error) {
	bare, _, _ := sanResultSuffix(strings.TrimSpace(sanPlus))
	color := b.sideToMove

	if bare == "O-O" || bare == "0-0" {
		return b.applyCastleChecked(true, sanPlus)
	}
	if bare == "O-O-O" || bare == "0-0-0" {
		return b.applyCastleChecked(false, sanPlus)
	}

	m := sanPattern.FindStringSubmatch(bare)
	if m == nil {
		return Move{}, &IllegalMoveError{San: sanPlus, Reason: "does not match SAN grammar"}
	}
	pieceLetter, fileHint, rankHint, captureFlag, destStr, promoStr := m[1], m[2], m[3], m[4], m[5], m[6]

	pieceType := Pawn
	if pieceLetter != "" {
		pieceType = pieceTypeFromLetter(pieceLetter[0])
	}
	dest := SquareFromString(destStr)
	if dest == NoSquare {
		return Move{}, &IllegalMoveError{San: sanPlus, Reason: "invalid destination square"}
	}
	promotion := NoPieceType
	if promoStr != "" {
		promotion = pieceTypeFromLetter(promoStr[1])
	}
	if pieceType == Pawn && promotion == NoPieceType && (dest.Rank() == 0 || dest.Rank() == 7) {
		return Move{}, &IllegalMoveError{San: sanPlus, Reason: "pawn reaches last rank without promotion"}
	}

	destIdx := mailboxIndex(dest)
	var candidates []int
	if pieceType == Pawn {
		candidates = b.pawnCandidates(dest, color, captureFlag != "", fileHint)
	} else {
		for _, from := range b.candidatesMovableTo(destIdx, color) {
			if b.at(from).Type() == pieceType {
				candidates = append(candidates, from)
			}
		}
	}

	var qualified []int
	for _, from := range candidates {
		fromSq := squareFromMailbox(from)
		if fileHint != "" && rune(fileHint[0])-'a' != rune(fromSq.File()) {
			continue
		}
		if rankHint != "" && rune(rankHint[0])-'1' != rune(fromSq.Rank()) {
			continue
		}
		trial := b.Clone()
		trial.rawApply(fromSq, dest, promotion)
		if trial.isAttacked(trial.kingSq[color], color.Opposite()) {
			continue
		}
		qualified = append(qualified, from)
	}

	switch len(qualified) {
	case 0:
		return Move{}, &IllegalMoveError{San: sanPlus, Reason: "no legal piece can reach " + destStr}
	case 1:
		// fall through
	default:
		return Move{}, &IllegalMoveError{San: sanPlus, Reason: "ambiguous move, multiple candidates reach " + destStr}
	}

	fromSq := squareFromMailbox(qualified[0])
	mv := b.rawApply(fromSq, dest, promotion)
	mv.San = sanPlus
	b.advanceMoveCounters()
	mv.GivesCheck = b.InCheck()
	return mv, nil
}

// pawnCandidates narrows candidatesMovableTo's generic result to the
// capture/non-capture distinction a pawn SAN token encodes explicitly.
func (b *Board) pawnCandidates(dest Square, color Color, isCapture bool, fileHint string) []int {
	destIdx := mailboxIndex(dest)
	if isCapture {
		var out []int
		for _, from := range b.attackersOf(destIdx, color) {
			if b.at(from).Type() == Pawn {
				out = append(out, from)
			}
		}
		return out
	}
	var out []int
	for _, from := range b.candidatesMovableTo(destIdx, color) {
		if b.at(from).Type() != Pawn {
			continue
		}
		// a non-capturing pawn SAN must come straight down the file.
		if squareFromMailbox(from).File() == dest.File() {
			out = append(out, from)
		}
	}
	return out
}

func (b *Board) applyCastleChecked(kingside bool, sanPlus string) (Move, error) {
	color := b.sideToMove
	rank := 0
	if color == Black {
		rank = 7
	}
	kRight, qRight := castleWK, castleWQ
	if color == Black {
		kRight, qRight = castleBK, castleBQ
	}
	if kingside && !b.castle[kRight] {
		return Move{}, &IllegalMoveError{San: sanPlus, Reason: "kingside castling right not available"}
	}
	if !kingside && !b.castle[qRight] {
		return Move{}, &IllegalMoveError{San: sanPlus, Reason: "queenside castling right not available"}
	}

	kingPassSquares := []Square{NewSquare(4, rank), NewSquare(5, rank), NewSquare(6, rank)}
	emptySquares := []Square{NewSquare(5, rank), NewSquare(6, rank)}
	if !kingside {
		kingPassSquares = []Square{NewSquare(4, rank), NewSquare(3, rank), NewSquare(2, rank)}
		emptySquares = []Square{NewSquare(1, rank), NewSquare(2, rank), NewSquare(3, rank)}
	}
	for _, sq := range emptySquares {
		if !b.Get(sq).IsEmpty() {
			return Move{}, &IllegalMoveError{San: sanPlus, Reason: "castling path is not empty"}
		}
	}
	for _, sq := range kingPassSquares {
		if b.isAttacked(sq, color.Opposite()) {
			return Move{}, &IllegalMoveError{San: sanPlus, Reason: "king starts, passes through, or ends in check"}
		}
	}
	mv := b.applyCastle(kingside)
	mv.San = sanPlus
	b.advanceMoveCounters()
	mv.GivesCheck = b.InCheck()
	return mv, nil
}
