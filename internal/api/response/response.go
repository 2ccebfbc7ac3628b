// Package response renders the dashboard API's JSON envelopes. Every
// handler goes through here so clients see one shape for data and one
// for errors.
package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/flipdeck/flipdeck/internal/core"
)

// Meta rides along with every successful payload.
type Meta struct {
	Timestamp time.Time `json:"timestamp"`
}

// SuccessResponse wraps handler output under a data key.
type SuccessResponse struct {
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

// ErrorDetail is the client-facing view of a core.Error.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   string `json:"cause,omitempty"`
}

// ErrorResponse wraps an ErrorDetail under an error key.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// JSON writes data inside the success envelope, stamped with the
// current UTC time.
func JSON(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, SuccessResponse{
		Data: data,
		Meta: Meta{Timestamp: time.Now().UTC()},
	})
}

// Error writes err inside the error envelope. Structured core errors
// pass their code and message through; anything else collapses to
// INTERNAL_ERROR so internals never leak to clients.
func Error(w http.ResponseWriter, status int, err error) {
	detail := ErrorDetail{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
	}

	var coreErr *core.Error
	if errors.As(err, &coreErr) {
		detail.Code = coreErr.Code
		detail.Message = coreErr.Message
		if coreErr.Cause != nil {
			detail.Cause = coreErr.Cause.Error()
		}
	}

	writeJSON(w, status, ErrorResponse{Error: detail})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
