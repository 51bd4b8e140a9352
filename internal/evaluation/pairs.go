package evaluation

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// Pair is one left/right association of a matching answer, 0-based.
type Pair struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

func comparePairs(a, b Pair) int {
	if c := cmp.Compare(a.Left, b.Left); c != 0 {
		return c
	}
	return cmp.Compare(a.Right, b.Right)
}

// NormalizePair coerces v into a Pair. It accepts a Pair, or any two-element
// sequence whose members are integers or numeric strings.
func NormalizePair(v any) (Pair, bool) {
	switch t := v.(type) {
	case Pair:
		return t, true
	case [2]int:
		return Pair{Left: t[0], Right: t[1]}, true
	case []int:
		if len(t) != 2 {
			return Pair{}, false
		}
		return Pair{Left: t[0], Right: t[1]}, true
	case []any:
		if len(t) != 2 {
			return Pair{}, false
		}
		left, ok := pairMember(t[0])
		if !ok {
			return Pair{}, false
		}
		right, ok := pairMember(t[1])
		if !ok {
			return Pair{}, false
		}
		return Pair{Left: left, Right: right}, true
	default:
		return Pair{}, false
	}
}

func pairMember(v any) (int, bool) {
	if s, ok := v.(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return asInt(v)
}

// NormalizeMatchingKey converts a matching answer key into canonical 0-based
// pairs. Accepted shapes are an array of pairs and a record mapping a numeric
// left index to a numeric right index. Left and right sides are shifted down
// by one independently when their minimum is above zero, which covers keys
// authored as "1-A, 2-C, 3-B". ok is false for any other shape or an empty key.
func NormalizeMatchingKey(v any) ([]Pair, bool) {
	var raw []Pair
	switch t := v.(type) {
	case []Pair:
		// Already canonical: a []Pair only comes out of this function.
		if len(t) == 0 {
			return nil, false
		}
		return slices.Clone(t), true
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		raw = make([]Pair, 0, len(t))
		for _, k := range keys {
			p, ok := NormalizePair([]any{k, t[k]})
			if !ok {
				return nil, false
			}
			raw = append(raw, p)
		}
		slices.SortStableFunc(raw, func(a, b Pair) int { return cmp.Compare(a.Left, b.Left) })
	default:
		items, ok := asSlice(v)
		if !ok {
			return nil, false
		}
		raw = make([]Pair, 0, len(items))
		for _, it := range items {
			p, ok := NormalizePair(it)
			if !ok {
				return nil, false
			}
			raw = append(raw, p)
		}
	}
	if len(raw) == 0 {
		return nil, false
	}

	minLeft, minRight := raw[0].Left, raw[0].Right
	for _, p := range raw[1:] {
		minLeft = min(minLeft, p.Left)
		minRight = min(minRight, p.Right)
	}
	shiftLeft := 0
	if minLeft > 0 {
		shiftLeft = 1
	}
	shiftRight := 0
	if minRight > 0 {
		shiftRight = 1
	}

	out := make([]Pair, len(raw))
	for i, p := range raw {
		out[i] = Pair{Left: p.Left - shiftLeft, Right: p.Right - shiftRight}
	}
	return out, true
}

// normalizeSubmittedPairs runs every submitted association through
// NormalizePair without the base correction applied to keys.
func normalizeSubmittedPairs(v any) ([]Pair, bool) {
	items, ok := asSlice(v)
	if !ok {
		return nil, false
	}
	out := make([]Pair, 0, len(items))
	for _, it := range items {
		p, ok := NormalizePair(it)
		if !ok {
			return nil, false
		}
		out = append(out, p)
	}
	return out, true
}
