package exam

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"worldtests/internal/question"
)

type mockCheckService struct {
	checkFn         func(ctx context.Context, in CheckInput) (*CheckResult, error)
	listQuestionsFn func(ctx context.Context, testID int64) ([]question.PublicQuestion, error)
}

func (m *mockCheckService) Check(ctx context.Context, in CheckInput) (*CheckResult, error) {
	if m.checkFn == nil {
		return nil, errors.New("not implemented")
	}
	return m.checkFn(ctx, in)
}

func (m *mockCheckService) ListQuestions(ctx context.Context, testID int64) ([]question.PublicQuestion, error) {
	if m.listQuestionsFn == nil {
		return nil, errors.New("not implemented")
	}
	return m.listQuestionsFn(ctx, testID)
}

func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return env
}

func TestCheckPassesAnswersThrough(t *testing.T) {
	var got CheckInput
	h := &Handler{svc: &mockCheckService{
		checkFn: func(ctx context.Context, in CheckInput) (*CheckResult, error) {
			got = in
			return &CheckResult{TestID: in.TestID, UserID: in.UserID, Correct: 1, Total: 2, Score: 50}, nil
		},
	}}

	payload := []byte(`{"user_id":7,"answers":{"11":[[0,1],[1,0]],"12":null}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tests/5/check", bytes.NewReader(payload))
	req = withChiParam(req, "testID", "5")
	w := httptest.NewRecorder()

	h.Check(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got.TestID != 5 || got.UserID != 7 {
		t.Fatalf("unexpected check input: %+v", got)
	}
	if string(got.Answers["11"]) != `[[0,1],[1,0]]` {
		t.Fatalf("answer payload not passed through: %s", got.Answers["11"])
	}
	env := decodeEnvelope(t, w)
	var res CheckResult
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if !env.OK || res.Score != 50 {
		t.Fatalf("unexpected response: %s", w.Body.String())
	}
}

func TestCheckRejectsBadRequests(t *testing.T) {
	called := false
	h := &Handler{svc: &mockCheckService{
		checkFn: func(ctx context.Context, in CheckInput) (*CheckResult, error) {
			called = true
			return &CheckResult{}, nil
		},
	}}

	tests := []struct {
		name   string
		testID string
		body   string
	}{
		{name: "non numeric test id", testID: "abc", body: `{"user_id":1}`},
		{name: "zero test id", testID: "0", body: `{"user_id":1}`},
		{name: "invalid body", testID: "5", body: `{"user_id":`},
		{name: "missing user", testID: "5", body: `{"answers":{}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/tests/x/check", bytes.NewReader([]byte(tc.body)))
			req = withChiParam(req, "testID", tc.testID)
			w := httptest.NewRecorder()

			h.Check(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if env := decodeEnvelope(t, w); env.OK || env.Error == nil || env.Error.Code != "invalid_request" {
				t.Fatalf("unexpected error envelope: %s", w.Body.String())
			}
		})
	}
	if called {
		t.Fatalf("service should not be called for bad requests")
	}
}

func TestCheckMapsServiceErrors(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{err: question.ErrTestNotFound, code: http.StatusNotFound},
		{err: question.ErrInvalidInput, code: http.StatusBadRequest},
		{err: errors.New("db down"), code: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		h := &Handler{svc: &mockCheckService{
			checkFn: func(ctx context.Context, in CheckInput) (*CheckResult, error) { return nil, tc.err },
		}}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/tests/5/check", bytes.NewReader([]byte(`{"user_id":1}`)))
		req = withChiParam(req, "testID", "5")
		w := httptest.NewRecorder()

		h.Check(w, req)

		if w.Code != tc.code {
			t.Fatalf("expected %d for %v, got %d", tc.code, tc.err, w.Code)
		}
	}
}

func TestListQuestionsOK(t *testing.T) {
	h := &Handler{svc: &mockCheckService{
		listQuestionsFn: func(ctx context.Context, testID int64) ([]question.PublicQuestion, error) {
			if testID != 9 {
				t.Fatalf("unexpected test id %d", testID)
			}
			return []question.PublicQuestion{{ID: 1, Seq: 1, Mechanic: "ordering", Body: json.RawMessage(`{"items":["a","b"]}`)}}, nil
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tests/9/questions", nil)
	req = withChiParam(req, "testID", "9")
	w := httptest.NewRecorder()

	h.ListQuestions(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var items []question.PublicQuestion
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(items) != 1 || items[0].Mechanic != "ordering" {
		t.Fatalf("unexpected items: %+v", items)
	}
}
