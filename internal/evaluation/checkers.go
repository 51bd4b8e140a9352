package evaluation

import (
	"strconv"
	"strings"
)

// Every checker is a pure predicate over a submitted answer and the
// authoritative key. A nil submission or any malformed input yields false.

func CheckSingleChoice(submitted, key any) bool {
	if submitted == nil {
		return false
	}
	want, ok := parseIndexKey(key)
	if !ok {
		return false
	}
	got, ok := asInt(submitted)
	if !ok {
		return false
	}
	return got == want
}

func CheckMultiSelect(submitted, key any) bool {
	if submitted == nil {
		return false
	}
	want, ok := parseIndexListKey(key)
	if !ok {
		return false
	}
	got, ok := asIntSlice(submitted)
	if !ok {
		return false
	}
	return UnorderedEqual(got, want)
}

func CheckOrdering(submitted, key any) bool {
	if submitted == nil {
		return false
	}
	want, ok := parseIndexListKey(key)
	if !ok {
		return false
	}
	got, ok := asIntSlice(submitted)
	if !ok {
		return false
	}
	return OrderedEqual(got, want)
}

// CheckMatching compares association sets: the key is normalized to
// canonical pairs, and both sides are sorted so pair order does not matter.
func CheckMatching(submitted, key any) bool {
	if submitted == nil {
		return false
	}
	want, ok := NormalizeMatchingKey(key)
	if !ok {
		return false
	}
	got, ok := normalizeSubmittedPairs(submitted)
	if !ok || len(got) != len(want) {
		return false
	}
	return OrderedEqual(sortedPairs(got), sortedPairs(want))
}

// CheckGrouping requires the same category labels on both sides and the same
// members in every category, in any order.
func CheckGrouping(submitted, key any) bool {
	if submitted == nil {
		return false
	}
	want, ok := parseGroupKey(key)
	if !ok {
		return false
	}
	got, ok := parseGroupRecord(submitted)
	if !ok || !sameKeySet(got, want) {
		return false
	}
	for label, members := range want {
		if !UnorderedEqual(got[label], members) {
			return false
		}
	}
	return true
}

func CheckTrueFalseReason(submitted, key any) bool {
	if submitted == nil {
		return false
	}
	want, ok := parseTrueFalseReason(key)
	if !ok {
		return false
	}
	got, ok := parseTrueFalseReason(submitted)
	if !ok {
		return false
	}
	return got == want
}

// CheckCloze compares the selected option index of every gap. When indices
// differ, the option texts at that gap are compared instead, case-insensitive
// and accepting either text as a prefix of the other, so duplicate options
// authored at different indices grade alike.
func CheckCloze(submitted, key any, gaps [][]string) bool {
	if submitted == nil {
		return false
	}
	want, ok := parseIndexListKey(key)
	if !ok {
		return false
	}
	got, ok := asIntSlice(submitted)
	if !ok || len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] == want[i] {
			continue
		}
		gotText, ok := gapOption(gaps, i, got[i])
		if !ok {
			return false
		}
		wantText, ok := gapOption(gaps, i, want[i])
		if !ok {
			return false
		}
		if !equivalentOptionText(gotText, wantText) {
			return false
		}
	}
	return true
}

func gapOption(gaps [][]string, gap, idx int) (string, bool) {
	if gap < 0 || gap >= len(gaps) {
		return "", false
	}
	opts := gaps[gap]
	if idx < 0 || idx >= len(opts) {
		return "", false
	}
	return opts[idx], true
}

func equivalentOptionText(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	// An empty option is a prefix of everything.
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}

func CheckSelectErrors(submitted, key any) bool {
	if submitted == nil {
		return false
	}
	want, ok := parseIndexListKey(key)
	if !ok {
		return false
	}
	got, ok := asIntSlice(submitted)
	if !ok {
		return false
	}
	return UnorderedEqual(got, want)
}

// CheckTwoStep grades a conditional question: the correct second answer is
// looked up from the learner's actual first choice, not the key's.
func CheckTwoStep(submitted, key any) bool {
	if submitted == nil {
		return false
	}
	want, ok := parseTwoStepKey(key)
	if !ok {
		return false
	}
	obj, ok := asObject(submitted)
	if !ok {
		return false
	}
	step1, ok := asInt(obj["step1"])
	if !ok {
		return false
	}
	step2, ok := asInt(obj["step2"])
	if !ok {
		return false
	}
	if step1 != want.step1 {
		return false
	}
	expected, ok := want.mapping[strconv.Itoa(step1)]
	if !ok {
		return false
	}
	return step2 == expected
}

func CheckMatrixSingle(submitted, key any) bool {
	if submitted == nil {
		return false
	}
	want, ok := parseCellKey(key)
	if !ok {
		return false
	}
	got, ok := parseCellRecord(submitted)
	if !ok || !sameKeySet(got, want) {
		return false
	}
	for row, col := range want {
		if got[row] != col {
			return false
		}
	}
	return true
}

func CheckMatrixMulti(submitted, key any) bool {
	return CheckGrouping(submitted, key)
}

func CheckBestExample(submitted, key any) bool {
	return CheckSingleChoice(submitted, key)
}

// CheckScenario delegates to the rule of the scenario's declared action.
func CheckScenario(submitted, key any, action ScenarioAction) bool {
	switch action {
	case ScenarioChoice:
		return CheckSingleChoice(submitted, key)
	case ScenarioOrder:
		return CheckOrdering(submitted, key)
	case ScenarioMatch:
		return CheckMatching(submitted, key)
	default:
		return false
	}
}

func CheckConstruct(submitted, key any) bool {
	if submitted == nil {
		return false
	}
	want, ok := parseConstructKey(key)
	if !ok {
		return false
	}
	got, ok := parseConstruct(submitted)
	if !ok {
		return false
	}
	return UnorderedEqual(got.blocks, want.blocks) && OrderedEqual(got.order, want.order)
}
