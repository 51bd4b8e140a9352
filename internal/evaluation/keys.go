package evaluation

import "slices"

// Key parsers shared by the checkers and InspectKey. Each returns ok=false for
// a key that cannot be trusted; an empty key is never trusted because it would
// make an empty submission correct.

type trueFalseReasonKey struct {
	answer bool
	reason int
}

type twoStepKey struct {
	step1   int
	mapping map[string]int
}

type constructKey struct {
	blocks []int
	order  []int
}

func parseIndexKey(v any) (int, bool) {
	return asInt(v)
}

func parseIndexListKey(v any) ([]int, bool) {
	xs, ok := asIntSlice(v)
	if !ok || len(xs) == 0 {
		return nil, false
	}
	return xs, true
}

func parseGroupKey(v any) (map[string][]int, bool) {
	g, ok := parseGroupRecord(v)
	if !ok || len(g) == 0 {
		return nil, false
	}
	return g, true
}

func parseCellKey(v any) (map[string]int, bool) {
	c, ok := parseCellRecord(v)
	if !ok || len(c) == 0 {
		return nil, false
	}
	return c, true
}

func parseTrueFalseReason(v any) (trueFalseReasonKey, bool) {
	obj, ok := asObject(v)
	if !ok {
		return trueFalseReasonKey{}, false
	}
	answer, ok := asBool(obj["answer"])
	if !ok {
		return trueFalseReasonKey{}, false
	}
	reason, ok := asInt(obj["reason"])
	if !ok {
		return trueFalseReasonKey{}, false
	}
	return trueFalseReasonKey{answer: answer, reason: reason}, true
}

func parseTwoStepKey(v any) (twoStepKey, bool) {
	obj, ok := asObject(v)
	if !ok {
		return twoStepKey{}, false
	}
	step1, ok := asInt(obj["step1"])
	if !ok {
		return twoStepKey{}, false
	}
	mapping, ok := parseCellRecord(obj["step2Mapping"])
	if !ok || len(mapping) == 0 {
		return twoStepKey{}, false
	}
	return twoStepKey{step1: step1, mapping: mapping}, true
}

func parseConstruct(v any) (constructKey, bool) {
	obj, ok := asObject(v)
	if !ok {
		return constructKey{}, false
	}
	blocks, ok := asIntSlice(obj["blocks"])
	if !ok {
		return constructKey{}, false
	}
	order, ok := asIntSlice(obj["order"])
	if !ok {
		return constructKey{}, false
	}
	return constructKey{blocks: blocks, order: order}, true
}

func parseConstructKey(v any) (constructKey, bool) {
	k, ok := parseConstruct(v)
	if !ok || len(k.blocks) == 0 || len(k.order) == 0 {
		return constructKey{}, false
	}
	return k, true
}

// parseGroupRecord reads a record of label -> index list.
func parseGroupRecord(v any) (map[string][]int, bool) {
	obj, ok := asObject(v)
	if !ok {
		return nil, false
	}
	out := make(map[string][]int, len(obj))
	for label, members := range obj {
		xs, ok := asIntSlice(members)
		if !ok {
			return nil, false
		}
		out[label] = xs
	}
	return out, true
}

// parseCellRecord reads a record of row -> single index.
func parseCellRecord(v any) (map[string]int, bool) {
	obj, ok := asObject(v)
	if !ok {
		return nil, false
	}
	out := make(map[string]int, len(obj))
	for row, col := range obj {
		n, ok := asInt(col)
		if !ok {
			return nil, false
		}
		out[row] = n
	}
	return out, true
}

func sameKeySet[V any](a, b map[string]V) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func sortedPairs(ps []Pair) []Pair {
	out := slices.Clone(ps)
	slices.SortFunc(out, comparePairs)
	return out
}
