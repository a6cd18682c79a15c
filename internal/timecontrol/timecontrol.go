// Package timecontrol implements the lenient TimeControl tag parser: a pure
// function from a raw PGN TimeControl string to a structured parse (mode,
// stages, warnings, canonical form). No example repo in the pack parses PGN
// TimeControl tags; this package follows the preprocess-then-strict-then-
// inference pipeline laid out for that tag's dialects, in the same
// regex-driven, warning-accumulating style internal/pgn uses for its own
// tag normalization (see internal/pgn/visitor.go's fillDate/fillTime).
package timecontrol

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Mode is the outer shape of a parsed TimeControl.
type Mode int

const (
	ModeUnknown Mode = iota
	ModeUnlimited
	ModeSandclock
	ModeNormal
)

func (m Mode) String() string {
	switch m {
	case ModeUnknown:
		return "unknown"
	case ModeUnlimited:
		return "unlimited"
	case ModeSandclock:
		return "sandclock"
	case ModeNormal:
		return "normal"
	default:
		return "unknown"
	}
}

// Stage is one period of a normal-mode TimeControl: optional move cutoff,
// base seconds, optional per-move increment seconds.
type Stage struct {
	Moves     int // 0 means "no move cutoff" (applies to the rest of the game)
	Base      int
	Increment int
}

func (s Stage) String() string {
	var sb strings.Builder
	if s.Moves > 0 {
		fmt.Fprintf(&sb, "%d/%d", s.Moves, s.Base)
	} else {
		fmt.Fprintf(&sb, "%d", s.Base)
	}
	if s.Increment != 0 {
		fmt.Fprintf(&sb, "+%d", s.Increment)
	}
	return sb.String()
}

// Parsed is the structured result of parsing one raw TimeControl string.
type Parsed struct {
	Raw        string
	Normalized *string
	Mode       Mode
	Periods    []Stage
	Warnings   []string
	Inferred   bool
}

func (p *Parsed) warn(code string) {
	p.Warnings = append(p.Warnings, code)
}

func normalizeStages(mode Mode, sandclockSeconds int, periods []Stage) string {
	switch mode {
	case ModeUnknown:
		return "?"
	case ModeUnlimited:
		return "-"
	case ModeSandclock:
		return fmt.Sprintf("*%d", sandclockSeconds)
	case ModeNormal:
		parts := make([]string, len(periods))
		for i, s := range periods {
			parts[i] = s.String()
		}
		return strings.Join(parts, ":")
	default:
		return "?"
	}
}

// Parse runs the full preprocess -> strict-parse -> inference pipeline on
// raw and returns the structured result. Never fails: an unparseable input
// yields a Parsed with Normalized == nil and Mode == ModeNormal with no
// periods, per spec "failure" handling.
func Parse(raw string) *Parsed {
	p := &Parsed{Raw: raw}

	cleaned := preprocess(raw, p)

	if cleaned == "?" {
		p.Mode = ModeUnknown
		s := "?"
		p.Normalized = &s
		return p
	}
	if cleaned == "-" {
		p.Mode = ModeUnlimited
		s := "-"
		p.Normalized = &s
		return p
	}
	if secs, ok := parseSandclock(cleaned); ok {
		p.Mode = ModeSandclock
		s := fmt.Sprintf("*%d", secs)
		p.Normalized = &s
		return p
	}
	if periods, ok := parseStrictStages(cleaned); ok {
		p.Mode = ModeNormal
		p.Periods = periods
		s := normalizeStages(ModeNormal, 0, periods)
		p.Normalized = &s
		return p
	}

	periods, warn, ok := tryInference(cleaned)
	if ok {
		p.Mode = ModeNormal
		p.Periods = periods
		p.Inferred = true
		if warn != "" {
			p.warn(warn)
		}
		s := normalizeStages(ModeNormal, 0, periods)
		p.Normalized = &s
		return p
	}
	if warn != "" {
		p.warn(warn)
	}

	p.Mode = ModeNormal
	p.Periods = nil
	p.Normalized = nil
	return p
}

// --- preprocessing -------------------------------------------------------

var (
	outerQuotesRe     = regexp.MustCompile(`^"(.*)"$`)
	spaceAroundOpRe   = regexp.MustCompile(`\s*([+/:])\s*`)
	connectorRe       = regexp.MustCompile(`[|_]`)
	trailingQualRe    = regexp.MustCompile(`^(.*[0-9])\s+([A-Za-z][A-Za-z ]*)$`)
	trailingHasDigit  = regexp.MustCompile(`[0-9]`)
	trailingHasOpChar = regexp.MustCompile(`[+/:]`)
)

// preprocess applies the documented textual cleanups and records a warning
// for each transform actually applied.
func preprocess(raw string, p *Parsed) string {
	s := strings.TrimSpace(raw)

	if m := outerQuotesRe.FindStringSubmatch(s); m != nil && len(m[1]) > 0 {
		s = m[1]
		p.warn("stripped_outer_quotes")
	}

	if connectorRe.MatchString(s) {
		s = connectorRe.ReplaceAllString(s, "+")
		p.warn("normalized_connector_to_plus")
	}

	if spaceAroundOpRe.MatchString(s) {
		tight := spaceAroundOpRe.ReplaceAllString(s, "$1")
		if tight != s {
			s = tight
			p.warn("stripped_operator_whitespace")
		}
	}

	if m := trailingQualRe.FindStringSubmatch(s); m != nil {
		qualifier := m[2]
		if !trailingHasDigit.MatchString(qualifier) && !trailingHasOpChar.MatchString(qualifier) {
			candidate := strings.TrimSpace(m[1])
			if looksParseable(candidate) {
				s = candidate
				p.warn("stripped_trailing_qualifier")
			}
		}
	}

	return s
}

// looksParseable is a cheap pre-check used only to decide whether stripping
// a trailing qualifier is safe: the residue must still look like a
// TimeControl token (digits plus at most the structural operators).
func looksParseable(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '+' && r != '/' && r != ':' {
			return false
		}
	}
	return true
}

// --- strict grammar parse -------------------------------------------------

var stageRe = regexp.MustCompile(`^(?:([0-9]+)/)?([0-9]+)(?:\+([0-9]+))?$`)

// strictBaseFloor is the smallest base (in seconds) parseStrictStages will
// accept for a bare N or N+I chunk without a move-count qualifier. Below it
// the grammar is ambiguous with a minutes shorthand (e.g. "3" could mean 3
// seconds or 3 minutes), so parseStrictStages defers to tryInference, which
// applies the same threshold for its minutes interpretation.
const strictBaseFloor = 60

func parseSandclock(s string) (int, bool) {
	if !strings.HasPrefix(s, "*") {
		return 0, false
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func parseStrictStages(s string) ([]Stage, bool) {
	if s == "" || s == "?" || s == "-" {
		return nil, false
	}
	chunks := strings.Split(s, ":")
	stages := make([]Stage, 0, len(chunks))
	for _, c := range chunks {
		m := stageRe.FindStringSubmatch(c)
		if m == nil {
			return nil, false
		}
		st := Stage{}
		if m[1] != "" {
			moves, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, false
			}
			st.Moves = moves
		}
		base, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, false
		}
		st.Base = base
		if m[3] != "" {
			inc, err := strconv.Atoi(m[3])
			if err != nil {
				return nil, false
			}
			st.Increment = inc
		}
		if st.Moves == 0 && st.Base < strictBaseFloor {
			return nil, false
		}
		stages = append(stages, st)
	}
	return stages, true
}

// --- checked arithmetic ---------------------------------------------------

// addChecked32 mirrors 32-bit checked addition: returns false on overflow
// past math.MaxInt32, per the "every ... composition ... uses checked 32-bit
// arithmetic" requirement.
func addChecked32(a, b int) (int, bool) {
	sum := a + b
	if sum > math.MaxInt32 || sum < math.MinInt32 {
		return 0, false
	}
	return sum, true
}

func mulChecked32(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	product := a * b
	if product/a != b || product > math.MaxInt32 || product < math.MinInt32 {
		return 0, false
	}
	return product, true
}

// --- inference rules -------------------------------------------------------

var (
	plainIntRe        = regexp.MustCompile(`^([0-9]+)$`)
	basePlusIncRe     = regexp.MustCompile(`^([0-9]+)\+([0-9]+)$`)
	apostropheMinRe   = regexp.MustCompile(`^([0-9]+)'$`)
	apostropheSecRe   = regexp.MustCompile(`^([0-9]+)''$`)
	apostropheCombRe  = regexp.MustCompile(`^([0-9]+)'\+([0-9]+)''$`)
	gPrefixRe         = regexp.MustCompile(`(?i)^g(?:ame)?\s*([0-9]+)\s*\+\s*([0-9]+)(?:\s*(?:inc|seconds per move|seconds added per move))?$`)
	compactAbbrevRe   = regexp.MustCompile(`(?i)^(?:standard:\s*)?([0-9]+)\s*m(?:in(?:s)?)?\s*\+\s*([0-9]+)\s*s(?:ec(?:ond)?(?:s)?)?(?:\s*increment)?$`)
	clockStyleRe      = regexp.MustCompile(`^([0-9]+):([0-9]{2})(?:\.([0-9]{2}))?\+([0-9]+)(?:\s*seconds increment)?(?:\s*from move 1)?$`)
	fideTwoStageRe    = regexp.MustCompile(`(?i)^90'?/40\s*(?:m|moves)?\s*\+\s*30'?(?:/(?:end|move))?\s*\+\s*30''?\s*(?:bonus\s*)?(?:increment)?$`)
	fideAltFormRe     = regexp.MustCompile(`(?i)^90\s*mins?\s*\+\s*30\s*second(?:s)?\s*additional\s*\+\s*30\s*mins?\s*after\s*move\s*40$`)
	fideShortFormRe   = regexp.MustCompile(`^90\+30/30\+30$`)
	fideSimpleSumRe   = regexp.MustCompile(`^90\s*\+\s*30\s*\+\s*30\s*s(?:\s*per\s*move)?$`)
	stagedNoQualRe    = regexp.MustCompile(`^([0-9]+)\+([0-9]+)/([0-9]+)\+([0-9]+)$`)
)

// tryInference attempts the closed list of inference rules in the order
// spec.md lists them, returning the stages, the inference warning code to
// attach (besides "inferred=true"), and whether any rule matched.
func tryInference(s string) ([]Stage, string, bool) {
	if m := plainIntRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n < 60 {
			base, ok := mulChecked32(n, 60)
			if !ok {
				return nil, "inference_arithmetic_overflow", false
			}
			return []Stage{{Base: base}}, "interpreted_small_base_as_minutes", true
		}
	}

	if m := basePlusIncRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		inc, _ := strconv.Atoi(m[2])
		if n < 60 && inc <= 60 {
			base, ok := mulChecked32(n, 60)
			if !ok {
				return nil, "inference_arithmetic_overflow", false
			}
			return []Stage{{Base: base, Increment: inc}}, "interpreted_minutes_plus_seconds", true
		}
		if (n == 75 || n == 90) && inc == 30 {
			base, ok := mulChecked32(n, 60)
			if !ok {
				return nil, "inference_arithmetic_overflow", false
			}
			base, ok = addChecked32(base, 30)
			if !ok {
				return nil, "inference_arithmetic_overflow", false
			}
			return []Stage{{Base: base}}, "interpreted_75_90_plus_30_as_minutes", true
		}
	}

	if m := apostropheCombRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		inc, _ := strconv.Atoi(m[2])
		base, ok := mulChecked32(n, 60)
		if !ok {
			return nil, "inference_arithmetic_overflow", false
		}
		return []Stage{{Base: base, Increment: inc}}, "interpreted_apostrophe_units", true
	}
	if m := apostropheMinRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		base, ok := mulChecked32(n, 60)
		if !ok {
			return nil, "inference_arithmetic_overflow", false
		}
		return []Stage{{Base: base}}, "interpreted_apostrophe_units", true
	}
	if m := apostropheSecRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return []Stage{{Base: n}}, "interpreted_apostrophe_units", true
	}

	if m := gPrefixRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		inc, _ := strconv.Atoi(m[2])
		base, ok := mulChecked32(n, 60)
		if !ok {
			return nil, "inference_arithmetic_overflow", false
		}
		return []Stage{{Base: base, Increment: inc}}, "interpreted_g_prefix_as_minutes", true
	}

	if m := compactAbbrevRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		inc, _ := strconv.Atoi(m[2])
		base, ok := mulChecked32(n, 60)
		if !ok {
			return nil, "inference_arithmetic_overflow", false
		}
		return []Stage{{Base: base, Increment: inc}}, "interpreted_compact_abbreviation", true
	}

	if m := clockStyleRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		inc, _ := strconv.Atoi(m[4])
		base, ok := mulChecked32(h, 3600)
		if !ok {
			return nil, "inference_arithmetic_overflow", false
		}
		minSecs, ok := mulChecked32(mm, 60)
		if !ok {
			return nil, "inference_arithmetic_overflow", false
		}
		base, ok = addChecked32(base, minSecs)
		if !ok {
			return nil, "inference_arithmetic_overflow", false
		}
		if m[3] != "" {
			secs, _ := strconv.Atoi(m[3])
			base, ok = addChecked32(base, secs)
			if !ok {
				return nil, "inference_arithmetic_overflow", false
			}
		}
		return []Stage{{Base: base, Increment: inc}}, "interpreted_clock_style_base", true
	}

	if fideTwoStageRe.MatchString(s) || fideAltFormRe.MatchString(s) || fideSimpleSumRe.MatchString(s) {
		return []Stage{{Moves: 40, Base: 5400, Increment: 30}, {Base: 1800, Increment: 30}},
			"interpreted_fide_two_stage_shorthand", true
	}
	if fideShortFormRe.MatchString(s) {
		return []Stage{{Base: 5400, Increment: 30}, {Base: 1800, Increment: 30}},
			"staged_without_move_qualifier", true
	}
	if m := stagedNoQualRe.FindStringSubmatch(s); m != nil {
		n1, _ := strconv.Atoi(m[1])
		i1, _ := strconv.Atoi(m[2])
		n2, _ := strconv.Atoi(m[3])
		i2, _ := strconv.Atoi(m[4])
		b1, ok := mulChecked32(n1, 60)
		if !ok {
			return nil, "inference_arithmetic_overflow", false
		}
		b2, ok := mulChecked32(n2, 60)
		if !ok {
			return nil, "inference_arithmetic_overflow", false
		}
		return []Stage{{Base: b1, Increment: i1}, {Base: b2, Increment: i2}},
			"staged_without_move_qualifier", true
	}

	return nil, "", false
}

// --- category --------------------------------------------------------------

// Category derives the Lichess speed class from a successful normal-mode
// parse with at least one stage. Returns "" if the parse has no
// categorizable stages (any other mode, or a failed parse).
func Category(p *Parsed) string {
	if p.Mode != ModeNormal || len(p.Periods) == 0 || p.Normalized == nil {
		return ""
	}
	first := p.Periods[0]
	estimate := first.Base + 40*first.Increment
	switch {
	case estimate <= 29:
		return "ultrabullet"
	case estimate <= 179:
		return "bullet"
	case estimate <= 479:
		return "blitz"
	case estimate <= 1499:
		return "rapid"
	default:
		return "classical"
	}
}
