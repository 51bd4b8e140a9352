package question

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"worldtests/internal/evaluation"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrTestNotFound    = errors.New("test not found")
	ErrUnknownMechanic = errors.New("unknown mechanic")
)

// Record is one question of a test as stored, with its definition and key
// still encoded.
type Record struct {
	ID        int64           `json:"id"`
	TestID    int64           `json:"test_id"`
	Seq       int             `json:"seq"`
	Mechanic  string          `json:"mechanic"`
	Body      json.RawMessage `json:"body"`
	AnswerKey json.RawMessage `json:"answer_key,omitempty"`
}

// PublicQuestion is what a learner may see of a question.
type PublicQuestion struct {
	ID       int64           `json:"id"`
	Seq      int             `json:"seq"`
	Mechanic string          `json:"mechanic"`
	Body     json.RawMessage `json:"body"`
}

func PublicView(rec Record) PublicQuestion {
	return PublicQuestion{
		ID:       rec.ID,
		Seq:      rec.Seq,
		Mechanic: normalizeMechanic(rec.Mechanic),
		Body:     rec.Body,
	}
}

func PublicViews(recs []Record) []PublicQuestion {
	out := make([]PublicQuestion, 0, len(recs))
	for _, rec := range recs {
		out = append(out, PublicView(rec))
	}
	return out
}

func normalizeMechanic(v string) string {
	return strings.TrimSpace(strings.ToLower(v))
}

// Decode builds the typed question of rec and validates its definition.
func Decode(rec Record) (evaluation.Question, error) {
	mechanic := evaluation.Mechanic(normalizeMechanic(rec.Mechanic))
	q, ok := evaluation.New(mechanic)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMechanic, rec.Mechanic)
	}
	if len(rec.Body) == 0 || !json.Valid(rec.Body) {
		return nil, fmt.Errorf("%w: %s body must be valid json", ErrInvalidInput, mechanic)
	}
	if err := json.Unmarshal(rec.Body, q); err != nil {
		return nil, fmt.Errorf("%w: decode %s body: %v", ErrInvalidInput, mechanic, err)
	}
	if err := validateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

// DecodeKey decodes an answer key or a submitted answer into the untyped form
// the checkers read. Numbers stay exact as json.Number. An empty payload or a
// JSON null decodes to nil.
func DecodeKey(raw json.RawMessage) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after json value", ErrInvalidInput)
	}
	return v, nil
}
