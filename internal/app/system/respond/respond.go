// Package respond writes JSON responses and maps application errors to
// HTTP status codes.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/app/system/limits"
	"github.com/hostelhub/hostelhub/internal/app/system/validate"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error maps err to a status and writes an ErrorBody. Server-side
// failures are logged; client errors are not.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	status := apperr.HTTPStatus(err)
	code := string(apperr.KindOf(err))
	if code == "" {
		code = "INTERNAL"
	}
	if status >= http.StatusInternalServerError && log != nil {
		log.Error("request failed", zap.String("kind", code), zap.Error(err))
	}
	JSON(w, status, ErrorBody{Error: apperr.Message(err), Code: code})
}

// Decode reads a JSON body into v. Unknown fields are rejected.
func Decode(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, limits.MaxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperr.Invalid("request body too large", err)
		}
		return apperr.Invalid("malformed JSON body", err)
	}
	return nil
}

// DecodeValid decodes a JSON body into v and validates its struct tags.
func DecodeValid(r *http.Request, v any) error {
	if err := Decode(r, v); err != nil {
		return err
	}
	return validate.Struct(v)
}

// ObjectIDParam parses the chi URL parameter name as an ObjectID.
func ObjectIDParam(r *http.Request, name string) (primitive.ObjectID, error) {
	raw := chi.URLParam(r, name)
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperr.Invalid("invalid "+name+": "+raw, err)
	}
	return id, nil
}
