// internal/common/http/json.go
package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"rfp-dashboard/internal/common/errors"
	"rfp-dashboard/internal/common/validation"
)

// DefaultMaxBodyBytes bounds request bodies that carry base64 file content.
const DefaultMaxBodyBytes int64 = 50 << 20

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeAndValidate reads a JSON object body, checks it against schema and
// decodes it into dst. Failures are VALIDATION_FAILED or INVALID_REQUEST errors.
func DecodeAndValidate(r *http.Request, maxBytes int64, schema validation.JSONSchema, dst interface{}) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
	if err != nil {
		return errors.NewInvalidRequestError(err)
	}
	if int64(len(raw)) > maxBytes {
		return errors.NewInvalidRequestError(fmt.Errorf("request body exceeds %d bytes", maxBytes))
	}

	var variables map[string]interface{}
	if err := json.Unmarshal(raw, &variables); err != nil || variables == nil {
		return errors.NewInvalidRequestError(fmt.Errorf("request body must be a JSON object"))
	}

	result := validation.ValidateInput(variables, schema)
	if !result.Valid {
		return errors.NewValidationFailedError(strings.Join(result.GetErrorMessages(), "; "))
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return errors.NewInvalidRequestError(err)
	}
	return nil
}
