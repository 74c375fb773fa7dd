package respond

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestError_MapsKindAndLogsServerErrors(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	rec := httptest.NewRecorder()
	Error(rec, log, apperr.NotFound("hostel"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrorBody{Error: "hostel not found", Code: "NOT_FOUND"}, body)
	assert.Equal(t, 0, logs.Len(), "client errors are not logged")

	rec = httptest.NewRecorder()
	Error(rec, log, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL", body.Code)
	assert.Equal(t, "internal error", body.Error)
	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestDecode(t *testing.T) {
	type payload struct {
		Name string `json:"name" validate:"required"`
	}

	var p payload
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Unity"}`))
	require.NoError(t, DecodeValid(r, &p))
	assert.Equal(t, "Unity", p.Name)

	r = httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Unity","extra":1}`))
	assert.True(t, errors.Is(Decode(r, &p), apperr.ErrInvalid), "unknown field")

	r = httptest.NewRequest("POST", "/", strings.NewReader(`{`))
	assert.True(t, errors.Is(Decode(r, &p), apperr.ErrInvalid), "malformed")

	p = payload{}
	r = httptest.NewRequest("POST", "/", strings.NewReader(`{}`))
	err := DecodeValid(r, &p)
	assert.Equal(t, "name is required", apperr.Message(err))
}

func TestObjectIDParam(t *testing.T) {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "64b7f0c2a1b2c3d4e5f60718")
	rctx.URLParams.Add("bad", "xyz")
	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

	id, err := ObjectIDParam(r, "id")
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", id.Hex())

	_, err = ObjectIDParam(r, "bad")
	assert.True(t, errors.Is(err, apperr.ErrInvalid))
}
