package apperror

import (
	"encoding/json"
	"net/http"

	"github.com/user/recipefinder-go/logging"
)

var discard = logging.Discard()

// WriteJSON serializes `data` to JSON and writes it with the given `status`.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Avoid writing nil, which would result in a "null" response body.
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"message":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError converts any error into the standardized ErrorResponse envelope.
// Errors that are not already an *AppError are reported as a generic internal error;
// their details go to the request logger, not to the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := FromError(err)
	if !ok {
		appErr = NewInternalError("The operation failed!", err)
	}

	if appErr.StatusCode() >= http.StatusInternalServerError {
		logging.FromContext(r.Context(), discard).Error(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", appErr.Error())
	}

	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
