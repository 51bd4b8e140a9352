package apiresp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
)

func TestWriteErrorEnvelope(t *testing.T) {
	h := middleware.RequestID(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		WriteError(rw, r, http.StatusNotFound, "")
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"error":{"code":"not_found","message":"Not Found"}`)
	assert.Contains(t, w.Body.String(), `"request_id":"`)
	assert.NotContains(t, w.Body.String(), `"data"`)
}

func TestWriteOKEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	WriteOK(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, map[string]int{"score": 100})

	assert.JSONEq(t, `{"ok":true,"data":{"score":100},"meta":{}}`, w.Body.String())
}
