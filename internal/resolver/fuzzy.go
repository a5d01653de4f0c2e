package resolver

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/xrash/smetrics"
)

const (
	unbaseScale  = 0.95
	partialScale = 0.90
	// Beyond this length ratio partial matches are worth much less.
	farPartialScale = 0.6
)

// Similarity is the weighted ratio of a and b on a 0-100 scale. Both sides
// are normalised to lowercase alphanumeric tokens, so "jupiter" is compared
// with "jupiter exchange solana" rather than the raw id. When one side is at
// least 1.5x longer, the best-aligned window of the longer string also
// counts, scaled by 0.9 (0.6 past 8x). Token-sorted and token-set variants
// count at a further 0.95.
func Similarity(a, b string) int {
	return weightedRatio(normalise(a), normalise(b))
}

func weightedRatio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}

	base := float64(ratio(a, b))
	short, long := len(a), len(b)
	if short > long {
		short, long = long, short
	}
	lenRatio := float64(long) / float64(short)

	if lenRatio < 1.5 {
		best := math.Max(base, float64(tokenSortRatio(a, b, ratio))*unbaseScale)
		best = math.Max(best, float64(tokenSetRatio(a, b, ratio))*unbaseScale)
		return roundScore(best)
	}

	scale := partialScale
	if lenRatio > 8 {
		scale = farPartialScale
	}
	best := math.Max(base, float64(partialRatio(a, b))*scale)
	best = math.Max(best, float64(tokenSortRatio(a, b, partialRatio))*unbaseScale*scale)
	best = math.Max(best, float64(tokenSetRatio(a, b, partialRatio))*unbaseScale*scale)
	return roundScore(best)
}

// ratio is the Levenshtein ratio with substitutions costing two edits.
func ratio(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	return roundScore(rawRatio(a, b) * 100)
}

func rawRatio(a, b string) float64 {
	total := len(a) + len(b)
	dist := smetrics.WagnerFischer(a, b, 1, 1, 2)
	return float64(total-dist) / float64(total)
}

// partialRatio scores the shorter string against every window of the same
// length in the longer one and keeps the best.
func partialRatio(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	short, long := a, b
	if len(short) > len(long) {
		short, long = long, short
	}

	best := 0.0
	for start := 0; start+len(short) <= len(long); start++ {
		r := rawRatio(short, long[start:start+len(short)])
		if r > 0.995 {
			return 100
		}
		best = math.Max(best, r)
	}
	return roundScore(best * 100)
}

func tokenSortRatio(a, b string, score func(string, string) int) int {
	return score(sortedTokens(a), sortedTokens(b))
}

// tokenSetRatio compares the shared tokens against each side's full token
// set, so extra words on one side cost nothing.
func tokenSetRatio(a, b string, score func(string, string) int) int {
	ta, tb := tokenSet(a), tokenSet(b)

	var shared, onlyA, onlyB []string
	for t := range ta {
		if _, ok := tb[t]; ok {
			shared = append(shared, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range tb {
		if _, ok := ta[t]; !ok {
			onlyB = append(onlyB, t)
		}
	}
	sort.Strings(shared)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	sect := strings.Join(shared, " ")
	withA := strings.TrimSpace(sect + " " + strings.Join(onlyA, " "))
	withB := strings.TrimSpace(sect + " " + strings.Join(onlyB, " "))

	best := score(sect, withA)
	if s := score(sect, withB); s > best {
		best = s
	}
	if s := score(withA, withB); s > best {
		best = s
	}
	return best
}

func sortedTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range strings.Fields(s) {
		set[t] = struct{}{}
	}
	return set
}

// normalise lowercases s, turns anything that is not a letter or digit into
// a space and collapses runs of spaces.
func normalise(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}

func roundScore(v float64) int {
	return int(math.RoundToEven(v))
}
