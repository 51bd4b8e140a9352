package evaluation

import (
	"errors"
	"fmt"
)

// ErrMalformedKey reports an answer key whose shape does not fit its mechanic.
var ErrMalformedKey = errors.New("malformed answer key")

// CheckAnswer grades submitted against key for question q. It returns true
// only for a fully correct answer; a nil question or submission is false.
// It is safe for concurrent use.
func CheckAnswer(q Question, submitted, key any) bool {
	if q == nil || submitted == nil {
		return false
	}
	return q.accept(grader{submitted: submitted, key: key})
}

type grader struct {
	submitted any
	key       any
}

func (g grader) singleChoice(*SingleChoice) bool { return CheckSingleChoice(g.submitted, g.key) }
func (g grader) multiSelect(*MultiSelect) bool   { return CheckMultiSelect(g.submitted, g.key) }
func (g grader) ordering(*Ordering) bool         { return CheckOrdering(g.submitted, g.key) }
func (g grader) matching(*Matching) bool         { return CheckMatching(g.submitted, g.key) }
func (g grader) grouping(*Grouping) bool         { return CheckGrouping(g.submitted, g.key) }
func (g grader) classification(*Classification) bool {
	return CheckGrouping(g.submitted, g.key)
}
func (g grader) trueFalseReason(*TrueFalseReason) bool {
	return CheckTrueFalseReason(g.submitted, g.key)
}
func (g grader) cloze(q *Cloze) bool             { return CheckCloze(g.submitted, g.key, q.Gaps) }
func (g grader) selectErrors(*SelectErrors) bool { return CheckSelectErrors(g.submitted, g.key) }
func (g grader) twoStep(*TwoStep) bool           { return CheckTwoStep(g.submitted, g.key) }
func (g grader) bestExample(*BestExample) bool   { return CheckBestExample(g.submitted, g.key) }
func (g grader) scenario(q *Scenario) bool       { return CheckScenario(g.submitted, g.key, q.Action) }
func (g grader) construct(*Construct) bool       { return CheckConstruct(g.submitted, g.key) }

func (g grader) matrix(q *Matrix) bool {
	switch q.Mode {
	case MatrixSingle, "":
		return CheckMatrixSingle(g.submitted, g.key)
	case MatrixMulti:
		return CheckMatrixMulti(g.submitted, g.key)
	default:
		return false
	}
}

// InspectKey reports whether key has the shape q's mechanic expects, without
// grading anything. Scoring layers use it to tell an author error apart from a
// wrong answer.
func InspectKey(q Question, key any) error {
	if q == nil {
		return fmt.Errorf("%w: no question", ErrMalformedKey)
	}
	if !q.accept(keyInspector{key: key}) {
		return fmt.Errorf("%w: %s", ErrMalformedKey, q.Mechanic())
	}
	return nil
}

type keyInspector struct {
	key any
}

func (k keyInspector) index() bool {
	_, ok := parseIndexKey(k.key)
	return ok
}

func (k keyInspector) indexList() bool {
	_, ok := parseIndexListKey(k.key)
	return ok
}

func (k keyInspector) pairs() bool {
	_, ok := NormalizeMatchingKey(k.key)
	return ok
}

func (k keyInspector) groups() bool {
	_, ok := parseGroupKey(k.key)
	return ok
}

func (k keyInspector) singleChoice(*SingleChoice) bool     { return k.index() }
func (k keyInspector) multiSelect(*MultiSelect) bool       { return k.indexList() }
func (k keyInspector) ordering(*Ordering) bool             { return k.indexList() }
func (k keyInspector) matching(*Matching) bool             { return k.pairs() }
func (k keyInspector) grouping(*Grouping) bool             { return k.groups() }
func (k keyInspector) classification(*Classification) bool { return k.groups() }
func (k keyInspector) selectErrors(*SelectErrors) bool     { return k.indexList() }
func (k keyInspector) bestExample(*BestExample) bool       { return k.index() }

func (k keyInspector) trueFalseReason(*TrueFalseReason) bool {
	_, ok := parseTrueFalseReason(k.key)
	return ok
}

func (k keyInspector) cloze(q *Cloze) bool {
	xs, ok := parseIndexListKey(k.key)
	return ok && len(xs) == len(q.Gaps)
}

func (k keyInspector) twoStep(*TwoStep) bool {
	_, ok := parseTwoStepKey(k.key)
	return ok
}

func (k keyInspector) matrix(q *Matrix) bool {
	switch q.Mode {
	case MatrixSingle, "":
		_, ok := parseCellKey(k.key)
		return ok
	case MatrixMulti:
		return k.groups()
	default:
		return false
	}
}

func (k keyInspector) scenario(q *Scenario) bool {
	switch q.Action {
	case ScenarioChoice:
		return k.index()
	case ScenarioOrder:
		return k.indexList()
	case ScenarioMatch:
		return k.pairs()
	default:
		return false
	}
}

func (k keyInspector) construct(*Construct) bool {
	_, ok := parseConstructKey(k.key)
	return ok
}
