// internal/app/system/httpjson/httpjson.go

// Package httpjson holds the request-decoding and response-envelope
// helpers shared by all feature handlers. Every error response uses the
// uniform {success:false, message} body.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/letkeeper/letkeeper/internal/app/system/apperr"
	"go.uber.org/zap"
)

// Request bodies above this size are rejected outright.
const maxBodyBytes = 1 << 20 // 1 MiB

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode reads the JSON request body into dst and validates it against
// its `validate` struct tags. Failures come back as Validation errors.
func Decode(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return apperr.Wrap(apperr.Validation, "Invalid request body", err)
	}
	if err := validate.Struct(dst); err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) && len(verr) > 0 {
			return apperr.Wrap(apperr.Validation, "Missing or invalid field: "+verr[0].Field(), err)
		}
		return apperr.Wrap(apperr.Validation, "Invalid request body", err)
	}
	return nil
}

// Respond writes v as JSON with the given status.
func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the uniform failure envelope.
type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Fail maps err to its HTTP status and writes the failure envelope.
// Internal errors are logged; the client only sees the safe message.
func Fail(w http.ResponseWriter, log *zap.Logger, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError && log != nil {
		log.Error("request failed", zap.Error(err))
	}
	Respond(w, status, errorBody{Success: false, Message: apperr.SafeMessage(err)})
}
