package pgn

import (
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// chessComFixture is a real chess.com export: [%clk ...] clock annotations
// inside move comments, which spec.md §6.2 requires the Visitor to
// tolerate transparently (they are comments like any other).
const chessComFixture = `[Event "Live Chess"]
[Site "Chess.com"]
[Date "2025.04.07"]
[Round "-"]
[White "kyle_b81"]
[Black "danpin"]
[Result "0-1"]
[ECO "B13"]
[UTCDate "2025.04.07"]
[UTCTime "14:10:29"]
[WhiteElo "1472"]
[BlackElo "1466"]
[TimeControl "600"]
[Termination "danpin won on time"]

1. e4 {[%clk 0:09:57]} 1... c6 {[%clk 0:09:59.9]} 2. d4 {[%clk 0:09:54.6]} 2... d5 {[%clk 0:09:56.2]} 3. exd5 {[%clk 0:09:53.9]} 3... cxd5 {[%clk 0:09:54.6]} 0-1
`

func TestReadGameChessComFixture(t *testing.T) {
	s := NewScanner(strings.NewReader(chessComFixture))
	v := NewVisitor()
	rec, err := ReadGame(s, v)
	require.NoError(t, err)
	require.NotNil(t, rec)

	require.NotNil(t, rec.White)
	assert.Equal(t, "kyle_b81", *rec.White)
	require.NotNil(t, rec.Result)
	assert.Equal(t, "0-1", *rec.Result)
	require.NotNil(t, rec.WhiteElo)
	assert.Equal(t, uint32(1472), *rec.WhiteElo)
	require.NotNil(t, rec.UTCDate)
	assert.Equal(t, Date{Year: 2025, Month: 4, Day: 7}, *rec.UTCDate)
	assert.Nil(t, rec.ParseError)
	assert.Contains(t, rec.Movetext, "%clk")
	assert.NotContains(t, rec.Movetext, "0-1")
	assert.Equal(t, "1. e4 c6 2. d4 d5 3. exd5 cxd5", stripMoveComments(rec.Movetext))

	_, err = ReadGame(s, v)
	assert.ErrorIs(t, err, io.EOF)
}

// stripMoveComments removes the clock-annotation braces this fixture
// carries so the assertion only checks the SAN/move-number skeleton.
func stripMoveComments(movetext string) string {
	var sb strings.Builder
	depth := 0
	for _, r := range movetext {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		default:
			if depth == 0 {
				sb.WriteRune(r)
			}
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

func TestIllegalMoveStillEmitsRow(t *testing.T) {
	pgnText := "[Event \"Test\"]\n\n1. e4 e5 2. Qh5 g6 3. Qxh8 Nf6\n\n"
	s := NewScanner(strings.NewReader(pgnText))
	v := NewVisitor()
	rec, err := ReadGame(s, v)
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.NotNil(t, rec.ParseError)
	assert.Contains(t, *rec.ParseError, "Illegal move")
}

func TestDateFallbackChain(t *testing.T) {
	pgnText := "[Event \"Test\"]\n[UTCDate \"????.??.??\"]\n[Date \"2000.06.15\"]\n\n1. e4\n\n"
	s := NewScanner(strings.NewReader(pgnText))
	v := NewVisitor()
	rec, err := ReadGame(s, v)
	require.NoError(t, err)
	require.NotNil(t, rec.UTCDate)
	assert.Equal(t, Date{Year: 2000, Month: 6, Day: 15}, *rec.UTCDate)
	assert.Nil(t, rec.ParseError)
}

func TestDateClamping(t *testing.T) {
	pgnText := "[Event \"Test\"]\n[UTCDate \"2015.11.31\"]\n\n1. e4\n\n"
	s := NewScanner(strings.NewReader(pgnText))
	v := NewVisitor()
	rec, err := ReadGame(s, v)
	require.NoError(t, err)
	require.NotNil(t, rec.UTCDate)
	assert.Equal(t, Date{Year: 2015, Month: 11, Day: 30}, *rec.UTCDate)
	assert.Nil(t, rec.ParseError)
}

func TestVariationsAreSkipped(t *testing.T) {
	pgnText := "[Event \"Test\"]\n\n1. e4 (1. d4 d5) e5 2. Nf3 Nc6\n\n"
	s := NewScanner(strings.NewReader(pgnText))
	v := NewVisitor()
	rec, err := ReadGame(s, v)
	require.NoError(t, err)
	assert.Equal(t, "1. e4 e5 2. Nf3 Nc6", rec.Movetext)
}

func TestMultipleGamesInOneStream(t *testing.T) {
	pgnText := "[Event \"A\"]\n\n1. e4 e5 1-0\n\n[Event \"B\"]\n\n1. d4 d5 1/2-1/2\n\n"
	s := NewScanner(strings.NewReader(pgnText))
	v := NewVisitor()

	rec1, err := ReadGame(s, v)
	require.NoError(t, err)
	want1 := &GameRecord{Event: ptr("A"), Result: ptr("1-0"), Movetext: "1. e4 e5"}
	if diff := cmp.Diff(want1, rec1); diff != "" {
		t.Errorf("first game record mismatch (-want +got):\n%s", diff)
	}

	rec2, err := ReadGame(s, v)
	require.NoError(t, err)
	want2 := &GameRecord{Event: ptr("B"), Result: ptr("1/2-1/2"), Movetext: "1. d4 d5"}
	if diff := cmp.Diff(want2, rec2); diff != "" {
		t.Errorf("second game record mismatch (-want +got):\n%s", diff)
	}

	_, err = ReadGame(s, v)
	assert.ErrorIs(t, err, io.EOF)
}
