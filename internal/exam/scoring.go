package exam

import (
	"encoding/json"
	"slices"
	"strings"

	"worldtests/internal/evaluation"
	"worldtests/internal/question"
)

const (
	ReasonCorrect         = "correct"
	ReasonWrong           = "wrong"
	ReasonUnanswered      = "unanswered"
	ReasonMalformedKey    = "malformed_answer_key"
	ReasonMalformedAnswer = "malformed_payload"
	ReasonInvalidQuestion = "invalid_question"
)

type ScoreResult struct {
	Mechanic string `json:"mechanic"`
	Answered bool   `json:"answered"`
	Correct  bool   `json:"correct"`
	Reason   string `json:"reason"`
	// Err carries the decode or key failure behind an author-side reason.
	Err error `json:"-"`
}

// ScoreQuestion grades one submitted payload against a stored question.
// Anything that cannot be decoded or trusted is scored as not correct; the
// reason tells the author-side failures apart from a wrong answer.
func ScoreQuestion(rec question.Record, payload json.RawMessage) ScoreResult {
	q, err := question.Decode(rec)
	if err != nil {
		return ScoreResult{Mechanic: mechanicLabel(rec.Mechanic), Answered: isAnswered(payload), Reason: ReasonInvalidQuestion, Err: err}
	}
	out := ScoreResult{Mechanic: string(q.Mechanic())}

	submitted, payloadErr := question.DecodeKey(payload)
	out.Answered = payloadErr != nil || submitted != nil

	key, err := question.DecodeKey(rec.AnswerKey)
	if err == nil {
		err = evaluation.InspectKey(q, key)
	}
	if err != nil {
		out.Reason = ReasonMalformedKey
		out.Err = err
		return out
	}

	switch {
	case payloadErr != nil:
		out.Reason = ReasonMalformedAnswer
	case !out.Answered:
		out.Reason = ReasonUnanswered
	case evaluation.CheckAnswer(q, submitted, key):
		out.Correct = true
		out.Reason = ReasonCorrect
	default:
		out.Reason = ReasonWrong
	}
	return out
}

func isAnswered(payload json.RawMessage) bool {
	v, err := question.DecodeKey(payload)
	return err != nil || v != nil
}

// mechanicLabel keeps metric labels bounded to the known mechanics.
func mechanicLabel(raw string) string {
	m := evaluation.Mechanic(strings.TrimSpace(strings.ToLower(raw)))
	if slices.Contains(evaluation.Mechanics, m) {
		return string(m)
	}
	return "unknown"
}
