package movetext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestNormalizeNullAndEmpty(t *testing.T) {
	assert.Nil(t, Normalize(nil))
	require.NotNil(t, Normalize(ptr("")))
	assert.Equal(t, "", *Normalize(ptr("")))
}

func TestNormalizeBasic(t *testing.T) {
	got := Normalize(ptr("1. e4 e5 2. Nf3 Nc6"))
	require.NotNil(t, got)
	assert.Equal(t, "1. e4 e5 2. Nf3 Nc6", *got)
}

func TestNormalizeAppendsOutcome(t *testing.T) {
	got := Normalize(ptr("1. e4 e5 1-0"))
	require.NotNil(t, got)
	assert.Equal(t, "1. e4 e5 1-0", *got)
}

func TestPlyCount(t *testing.T) {
	assert.Nil(t, PlyCount(nil))
	require.NotNil(t, PlyCount(ptr("")))
	assert.EqualValues(t, 0, *PlyCount(ptr("")))

	got := PlyCount(ptr("1. e4 e5 2. Nf3 Nc6"))
	require.NotNil(t, got)
	assert.EqualValues(t, 4, *got)
}

func TestPlyCountDoesNotValidateLegality(t *testing.T) {
	got := PlyCount(ptr("1. e4 e5 2. Qh5 g6 3. Qxh8 Nf6"))
	require.NotNil(t, got)
	assert.EqualValues(t, 6, *got)
}

func TestHashTransposition(t *testing.T) {
	a := Hash(ptr("1. Nf3 d5 2. g3"))
	b := Hash(ptr("1. g3 d5 2. Nf3"))
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, *a, *b)
}

func TestHashNullAndEmpty(t *testing.T) {
	assert.Nil(t, Hash(nil))
	assert.Nil(t, Hash(ptr("")))
}

func TestHashStopsAtFirstIllegalMove(t *testing.T) {
	withIllegal := Hash(ptr("1. e4 e5 2. Qh5 g6 3. Qxh8 Nf6"))
	stoppedEarly := Hash(ptr("1. e4 e5 2. Qh5 g6"))
	require.NotNil(t, withIllegal)
	require.NotNil(t, stoppedEarly)
	assert.Equal(t, *stoppedEarly, *withIllegal)
}

func TestJSONNullAndEmpty(t *testing.T) {
	assert.Equal(t, "[]", JSON(nil, nil))
	assert.Equal(t, "[]", JSON(ptr(""), nil))
}

func TestJSONBasic(t *testing.T) {
	out := JSON(ptr("1. e4 e5"), nil)
	assert.Contains(t, out, `"ply":1`)
	assert.Contains(t, out, `"move":"e4"`)
	assert.Contains(t, out, `"ply":2`)
	assert.Contains(t, out, `"move":"e5"`)
}

func TestJSONMaxPly(t *testing.T) {
	zero := int64(0)
	assert.Equal(t, "[]", JSON(ptr("1. e4 e5"), &zero))

	one := int64(1)
	out := JSON(ptr("1. e4 e5 2. Nf3 Nc6"), &one)
	assert.Contains(t, out, `"ply":1`)
	assert.NotContains(t, out, `"ply":2`)
}

func TestSubsetNullPropagation(t *testing.T) {
	assert.Nil(t, Subset(nil, ptr("1. e4")))
	assert.Nil(t, Subset(ptr("1. e4"), nil))
}

func TestSubsetTruePrefix(t *testing.T) {
	got := Subset(ptr("1. e4 e5"), ptr("1. e4 e5 2. Nf3 Nc6"))
	require.NotNil(t, got)
	assert.True(t, *got)
}

func TestSubsetEqualIsSubset(t *testing.T) {
	got := Subset(ptr("1. e4 e5"), ptr("1. e4 e5"))
	require.NotNil(t, got)
	assert.True(t, *got)
}

func TestSubsetFalseWhenDiverges(t *testing.T) {
	got := Subset(ptr("1. e4 c5"), ptr("1. e4 e5 2. Nf3"))
	require.NotNil(t, got)
	assert.False(t, *got)
}

func TestSubsetIgnoresCommentsAndVariations(t *testing.T) {
	short := ptr("1. e4 {best by test} e5")
	long := ptr("1. e4 (1. d4) e5 2. Nf3 Nc6")
	got := Subset(short, long)
	require.NotNil(t, got)
	assert.True(t, *got)
}

func TestSubsetUnparseableReturnsFalse(t *testing.T) {
	got := Subset(ptr("this is not chess notation at all"), ptr("1. e4 e5"))
	require.NotNil(t, got)
	assert.False(t, *got)
}

func TestFenEpd(t *testing.T) {
	fen := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	got := FenEpd(&fen)
	require.NotNil(t, got)
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3", *got)

	assert.Nil(t, FenEpd(nil))
	empty := ""
	assert.Nil(t, FenEpd(&empty))
}
