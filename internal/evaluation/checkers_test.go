package evaluation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

type checkCase struct {
	name      string
	submitted string
	key       string
	want      bool
}

func runCheckCases(t *testing.T, check func(submitted, key any) bool, cases []checkCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := check(decodeJSON(t, tc.submitted), decodeJSON(t, tc.key))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCheckSingleChoice(t *testing.T) {
	for _, n := range []int{-3, 0, 1, 7, 42} {
		assert.True(t, CheckSingleChoice(n, n), "n=%d", n)
		assert.True(t, CheckSingleChoice(float64(n), json.Number("0")) == (n == 0), "n=%d", n)
	}

	runCheckCases(t, CheckSingleChoice, []checkCase{
		{name: "correct", submitted: `2`, key: `2`, want: true},
		{name: "wrong", submitted: `1`, key: `2`},
		{name: "null", submitted: `null`, key: `2`},
		{name: "string submission", submitted: `"2"`, key: `2`},
		{name: "fraction submission", submitted: `2.5`, key: `2`},
		{name: "array submission", submitted: `[2]`, key: `2`},
		{name: "malformed key", submitted: `2`, key: `"2"`},
		{name: "missing key", submitted: `2`, key: `null`},
	})
}

func TestCheckMultiSelect(t *testing.T) {
	runCheckCases(t, CheckMultiSelect, []checkCase{
		{name: "same order", submitted: `[0,2,3]`, key: `[0,2,3]`, want: true},
		{name: "permutation", submitted: `[3,0,2]`, key: `[0,2,3]`, want: true},
		{name: "double digits", submitted: `[10,2,1]`, key: `[1,2,10]`, want: true},
		{name: "superset", submitted: `[0,2,3,4]`, key: `[0,2,3]`},
		{name: "subset", submitted: `[0,2]`, key: `[0,2,3]`},
		{name: "duplicate instead of distinct", submitted: `[0,0,3]`, key: `[0,2,3]`},
		{name: "empty submission", submitted: `[]`, key: `[0]`},
		{name: "empty key", submitted: `[]`, key: `[]`},
		{name: "scalar submission", submitted: `0`, key: `[0]`},
		{name: "non numeric member", submitted: `[0,"x"]`, key: `[0,1]`},
		{name: "null", submitted: `null`, key: `[0]`},
	})
}

func TestCheckOrdering(t *testing.T) {
	runCheckCases(t, CheckOrdering, []checkCase{
		{name: "exact", submitted: `[0,1,2]`, key: `[0,1,2]`, want: true},
		{name: "reversed", submitted: `[2,1,0]`, key: `[0,1,2]`},
		{name: "short", submitted: `[0,1]`, key: `[0,1,2]`},
		{name: "object key", submitted: `[0,1]`, key: `{"0":0}`},
	})
}

func TestCheckMatching(t *testing.T) {
	runCheckCases(t, CheckMatching, []checkCase{
		{name: "same pairs", submitted: `[[0,0],[1,1],[2,2]]`, key: `[[0,0],[1,1],[2,2]]`, want: true},
		{name: "reordered pairs", submitted: `[[2,2],[0,0],[1,1]]`, key: `[[0,0],[1,1],[2,2]]`, want: true},
		{name: "swapped rights", submitted: `[[0,0],[1,2],[2,1]]`, key: `[[0,0],[1,1],[2,2]]`},
		{name: "one based key", submitted: `[[1,2],[0,0],[2,1]]`, key: `[[1,1],[2,3],[3,2]]`, want: true},
		{name: "record key", submitted: `[[0,1],[1,0]]`, key: `{"1":"2","2":"1"}`, want: true},
		{name: "string submission pairs", submitted: `[["0","1"],["1","0"]]`, key: `[[0,1],[1,0]]`, want: true},
		{name: "missing pair", submitted: `[[0,0],[1,1]]`, key: `[[0,0],[1,1],[2,2]]`},
		{name: "extra pair", submitted: `[[0,0],[1,1],[2,2],[2,0]]`, key: `[[0,0],[1,1],[2,2]]`},
		{name: "empty submission", submitted: `[]`, key: `[[0,0]]`},
		{name: "malformed submission pair", submitted: `[[0,0],[1]]`, key: `[[0,0],[1,1]]`},
		{name: "malformed key", submitted: `[[0,0]]`, key: `[[0,"x"]]`},
		{name: "empty key", submitted: `[]`, key: `[]`},
		{name: "null", submitted: `null`, key: `[[0,0]]`},
	})
}

func TestCheckGrouping(t *testing.T) {
	runCheckCases(t, CheckGrouping, []checkCase{
		{name: "exact", submitted: `{"mammals":[0,2],"birds":[1]}`, key: `{"mammals":[0,2],"birds":[1]}`, want: true},
		{name: "member order ignored", submitted: `{"birds":[1],"mammals":[2,0]}`, key: `{"mammals":[0,2],"birds":[1]}`, want: true},
		{name: "moved member", submitted: `{"mammals":[0],"birds":[1,2]}`, key: `{"mammals":[0,2],"birds":[1]}`},
		{name: "missing label", submitted: `{"mammals":[0,1,2]}`, key: `{"mammals":[0,2],"birds":[1]}`},
		{name: "extra label", submitted: `{"mammals":[0,2],"birds":[1],"fish":[]}`, key: `{"mammals":[0,2],"birds":[1]}`},
		{name: "renamed label", submitted: `{"mammals":[0,2],"bird":[1]}`, key: `{"mammals":[0,2],"birds":[1]}`},
		{name: "array submission", submitted: `[[0,2],[1]]`, key: `{"mammals":[0,2],"birds":[1]}`},
		{name: "empty key", submitted: `{}`, key: `{}`},
		{name: "malformed key members", submitted: `{"a":[0]}`, key: `{"a":0}`},
	})
}

func TestCheckTrueFalseReason(t *testing.T) {
	runCheckCases(t, CheckTrueFalseReason, []checkCase{
		{name: "both right", submitted: `{"answer":true,"reason":2}`, key: `{"answer":true,"reason":2}`, want: true},
		{name: "wrong reason", submitted: `{"answer":true,"reason":1}`, key: `{"answer":true,"reason":2}`},
		{name: "wrong answer", submitted: `{"answer":false,"reason":2}`, key: `{"answer":true,"reason":2}`},
		{name: "string answer", submitted: `{"answer":"true","reason":2}`, key: `{"answer":true,"reason":2}`},
		{name: "missing reason", submitted: `{"answer":true}`, key: `{"answer":true,"reason":2}`},
		{name: "malformed key", submitted: `{"answer":true,"reason":2}`, key: `{"answer":true}`},
	})
}

func TestCheckCloze(t *testing.T) {
	gaps := [][]string{
		{"low", "lower", "high"},
		{"acid", "base", "Acidic"},
	}

	tests := []struct {
		name      string
		submitted string
		key       string
		gaps      [][]string
		want      bool
	}{
		{name: "same indices", submitted: `[1,0]`, key: `[1,0]`, gaps: gaps, want: true},
		{name: "prefix text at other index", submitted: `[0,0]`, key: `[1,0]`, gaps: gaps, want: true},
		{name: "key text is prefix of submitted", submitted: `[1,0]`, key: `[0,0]`, gaps: gaps, want: true},
		{name: "case insensitive prefix", submitted: `[1,2]`, key: `[1,0]`, gaps: gaps, want: true},
		{name: "non overlapping texts", submitted: `[2,0]`, key: `[1,0]`, gaps: gaps},
		{name: "high versus low", submitted: `[0]`, key: `[1]`, gaps: [][]string{{"high", "low"}}},
		{name: "second gap wrong", submitted: `[1,1]`, key: `[1,0]`, gaps: gaps},
		{name: "index out of range", submitted: `[7,0]`, key: `[1,0]`, gaps: gaps},
		{name: "no gap options", submitted: `[0,0]`, key: `[1,0]`, gaps: nil},
		{name: "empty option text", submitted: `[0]`, key: `[1]`, gaps: [][]string{{"", "low"}}},
		{name: "length mismatch", submitted: `[1]`, key: `[1,0]`, gaps: gaps},
		{name: "null", submitted: `null`, key: `[1,0]`, gaps: gaps},
		{name: "empty key", submitted: `[]`, key: `[]`, gaps: gaps},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CheckCloze(decodeJSON(t, tc.submitted), decodeJSON(t, tc.key), tc.gaps)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCheckSelectErrors(t *testing.T) {
	runCheckCases(t, CheckSelectErrors, []checkCase{
		{name: "any order", submitted: `[12,3]`, key: `[3,12]`, want: true},
		{name: "missed span", submitted: `[3]`, key: `[3,12]`},
		{name: "extra span", submitted: `[3,12,4]`, key: `[3,12]`},
	})
}

func TestCheckTwoStep(t *testing.T) {
	key := `{"step1":1,"step2Mapping":{"0":2,"1":0}}`
	runCheckCases(t, CheckTwoStep, []checkCase{
		{name: "conditional second step", submitted: `{"step1":1,"step2":0}`, key: key, want: true},
		{name: "second step from other branch", submitted: `{"step1":1,"step2":2}`, key: key},
		{name: "wrong first step", submitted: `{"step1":0,"step2":2}`, key: key},
		{name: "missing second step", submitted: `{"step1":1}`, key: key},
		{name: "mapping lacks branch", submitted: `{"step1":1,"step2":0}`, key: `{"step1":1,"step2Mapping":{"0":2}}`},
		{name: "malformed mapping", submitted: `{"step1":1,"step2":0}`, key: `{"step1":1,"step2Mapping":[2,0]}`},
	})
}

func TestCheckMatrix(t *testing.T) {
	runCheckCases(t, CheckMatrixSingle, []checkCase{
		{name: "single exact", submitted: `{"0":1,"1":0}`, key: `{"1":0,"0":1}`, want: true},
		{name: "single wrong cell", submitted: `{"0":1,"1":1}`, key: `{"0":1,"1":0}`},
		{name: "single missing row", submitted: `{"0":1}`, key: `{"0":1,"1":0}`},
		{name: "single extra row", submitted: `{"0":1,"1":0,"2":0}`, key: `{"0":1,"1":0}`},
		{name: "single list cell", submitted: `{"0":[1],"1":0}`, key: `{"0":1,"1":0}`},
	})
	runCheckCases(t, CheckMatrixMulti, []checkCase{
		{name: "multi any order", submitted: `{"0":[2,1],"1":[0]}`, key: `{"0":[1,2],"1":[0]}`, want: true},
		{name: "multi missing cell", submitted: `{"0":[1],"1":[0]}`, key: `{"0":[1,2],"1":[0]}`},
	})
}

func TestCheckScenario(t *testing.T) {
	assert.True(t, CheckScenario(decodeJSON(t, `1`), decodeJSON(t, `1`), ScenarioChoice))
	assert.True(t, CheckScenario(decodeJSON(t, `[2,0,1]`), decodeJSON(t, `[2,0,1]`), ScenarioOrder))
	assert.False(t, CheckScenario(decodeJSON(t, `[0,1,2]`), decodeJSON(t, `[2,0,1]`), ScenarioOrder))
	assert.True(t, CheckScenario(decodeJSON(t, `[[1,0],[0,1]]`), decodeJSON(t, `[[1,2],[2,1]]`), ScenarioMatch))
	assert.False(t, CheckScenario(decodeJSON(t, `1`), decodeJSON(t, `1`), ScenarioAction("drag")))
}

func TestCheckConstruct(t *testing.T) {
	key := `{"blocks":[4,1,2],"order":[2,4,1]}`
	runCheckCases(t, CheckConstruct, []checkCase{
		{name: "correct", submitted: `{"blocks":[1,2,4],"order":[2,4,1]}`, key: key, want: true},
		{name: "wrong order", submitted: `{"blocks":[1,2,4],"order":[1,2,4]}`, key: key},
		{name: "wrong blocks", submitted: `{"blocks":[1,2,3],"order":[2,4,1]}`, key: key},
		{name: "missing order", submitted: `{"blocks":[1,2,4]}`, key: key},
		{name: "empty key", submitted: `{"blocks":[],"order":[]}`, key: `{"blocks":[],"order":[]}`},
	})
}
