package grammar

import (
	"strconv"
	"strings"
)

// segment is one position in a fixed-length digit sequence: either an exact
// literal run of digits or an inclusive digit class.
type segment struct {
	literal  string
	isClass  bool
	lo, hi   byte
}

func literalSeg(s string) segment { return segment{literal: s} }

func classSeg(lo, hi byte) segment {
	if lo == hi {
		return segment{literal: string(lo)}
	}
	return segment{isClass: true, lo: lo, hi: hi}
}

// fixedLengthAlternatives returns, for two equal-length decimal strings a
// and b (a <= b, same length, no leading-zero concerns beyond what the
// caller already guarantees), every minimal alternative digit-sequence
// whose union matches exactly the decimal strings in [a, b]. This is the
// classic segmented decomposition: split on the leading digit, recurse on
// the remaining positions.
func fixedLengthAlternatives(a, b string) [][]segment {
	if a == b {
		return [][]segment{{literalSeg(a)}}
	}
	if len(a) == 1 {
		return [][]segment{{classSeg(a[0], b[0])}}
	}
	if a[0] == b[0] {
		subs := fixedLengthAlternatives(a[1:], b[1:])
		out := make([][]segment, 0, len(subs))
		for _, s := range subs {
			out = append(out, prepend(literalSeg(string(a[0])), s))
		}
		return out
	}

	var out [][]segment
	maxTail := strings.Repeat("9", len(a)-1)
	minTail := strings.Repeat("0", len(a)-1)

	for _, s := range fixedLengthAlternatives(a[1:], maxTail) {
		out = append(out, prepend(literalSeg(string(a[0])), s))
	}
	if b[0]-a[0] > 1 {
		mid := append([]segment{classSeg(a[0]+1, b[0]-1)}, anyDigits(len(a)-1)...)
		out = append(out, mid)
	}
	for _, s := range fixedLengthAlternatives(minTail, b[1:]) {
		out = append(out, prepend(literalSeg(string(b[0])), s))
	}
	return out
}

func prepend(head segment, tail []segment) []segment {
	out := make([]segment, 0, len(tail)+1)
	out = append(out, head)
	out = append(out, tail...)
	return out
}

func anyDigits(n int) []segment {
	segs := make([]segment, n)
	for i := range segs {
		segs[i] = classSeg('0', '9')
	}
	return segs
}

func minForLen(n int) string {
	if n <= 1 {
		return "0"
	}
	return "1" + strings.Repeat("0", n-1)
}

func maxForLen(n int) string {
	return strings.Repeat("9", n)
}

// positiveAlternatives returns the digit-segment alternatives matching every
// non-negative integer in [lo, hi].
func positiveAlternatives(lo, hi int) [][]segment {
	los, his := strconv.Itoa(lo), strconv.Itoa(hi)
	if len(los) == len(his) {
		return fixedLengthAlternatives(los, his)
	}

	var out [][]segment
	for length := len(los); length <= len(his); length++ {
		subLo, subHi := minForLen(length), maxForLen(length)
		if length == len(los) {
			subLo = los
		}
		if length == len(his) {
			subHi = his
		}
		out = append(out, fixedLengthAlternatives(subLo, subHi)...)
	}
	return out
}

// renderSegments merges adjacent literal segments and renders the sequence
// as a space-separated GBNF token stream (concatenation).
func renderSegments(segs []segment) string {
	var merged []segment
	for _, s := range segs {
		if !s.isClass && len(merged) > 0 && !merged[len(merged)-1].isClass {
			merged[len(merged)-1].literal += s.literal
			continue
		}
		merged = append(merged, s)
	}

	tokens := make([]string, len(merged))
	for i, s := range merged {
		if s.isClass {
			tokens[i] = "[" + string(s.lo) + "-" + string(s.hi) + "]"
		} else {
			tokens[i] = quoteGBNF(s.literal)
		}
	}
	return strings.Join(tokens, " ")
}

// intRangeAlternatives returns the rendered GBNF alternatives (not yet
// joined by " | " or wrapped in parens) matching every integer in
// [min, max], including a literal "-" prefix for the negative half when
// min < 0.
func intRangeAlternatives(min, max int) []string {
	var alts [][]segment

	if min < 0 {
		negHi := -min
		negLo := 1
		if max < 0 {
			negLo = -max
		}
		if negLo <= negHi {
			for _, s := range positiveAlternatives(negLo, negHi) {
				alts = append(alts, prepend(literalSeg("-"), s))
			}
		}
	}
	if max >= 0 {
		posLo := 0
		if min > 0 {
			posLo = min
		}
		if posLo <= max {
			alts = append(alts, positiveAlternatives(posLo, max)...)
		}
	}

	rendered := make([]string, len(alts))
	for i, a := range alts {
		rendered[i] = renderSegments(a)
	}
	return rendered
}
