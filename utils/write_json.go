package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
)

// ResponseResource is the object returned in an error case
type ResponseResource struct {
	Message string `json:"message"`
}

// NewMessageResponse - convenience function for creating a response resource
func NewMessageResponse(message string) *ResponseResource {
	return &ResponseResource{Message: message}
}

// ValidationResponseResource is the object returned when submitted refund
// request input fails a collecting-stage check
type ValidationResponseResource struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewValidationResponse - convenience function for creating a validation
// response resource
func NewValidationResponse(code, message string) *ValidationResponseResource {
	return &ValidationResponseResource{Code: code, Message: message}
}

// WriteJSONWithStatus writes the interface as a json string with the supplied status.
func WriteJSONWithStatus(w http.ResponseWriter, r *http.Request, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		log.ErrorR(r, fmt.Errorf("error writing response: %v", err))
	}
}
