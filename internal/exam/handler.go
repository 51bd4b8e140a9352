package exam

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"worldtests/internal/app/apiresp"
	"worldtests/internal/question"
)

type Handler struct {
	svc checkService
}

type checkService interface {
	Check(ctx context.Context, in CheckInput) (*CheckResult, error)
	ListQuestions(ctx context.Context, testID int64) ([]question.PublicQuestion, error)
}

type checkRequest struct {
	UserID  int64                      `json:"user_id"`
	Answers map[string]json.RawMessage `json:"answers"`
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	testID, ok := parseTestID(w, r)
	if !ok {
		return
	}

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID <= 0 {
		apiresp.WriteError(w, r, http.StatusBadRequest, "user_id is required")
		return
	}

	res, err := h.svc.Check(r.Context(), CheckInput{
		TestID:  testID,
		UserID:  req.UserID,
		Answers: req.Answers,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	apiresp.WriteOK(w, r, http.StatusOK, res)
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	testID, ok := parseTestID(w, r)
	if !ok {
		return
	}

	items, err := h.svc.ListQuestions(r.Context(), testID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	apiresp.WriteOK(w, r, http.StatusOK, items)
}

func parseTestID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	testID, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "testID")), 10, 64)
	if err != nil || testID <= 0 {
		apiresp.WriteError(w, r, http.StatusBadRequest, "invalid test id")
		return 0, false
	}
	return testID, true
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, question.ErrInvalidInput):
		apiresp.WriteError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, question.ErrTestNotFound):
		apiresp.WriteError(w, r, http.StatusNotFound, "test not found")
	default:
		apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
	}
}
