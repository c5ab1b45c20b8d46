package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hongminglow/eventos-be/internal/apperr"
)

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// MessageBody is the shape of responses that only confirm an action.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON writes payload as the response body.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("respond: encode payload failed")
	}
}

// Message writes {"message": message}.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, MessageBody{Message: message})
}

// Error writes {"error": message}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Error: message})
}

// AppError maps err to its status and error body. Errors that are not
// *apperr.Error become 500 "internal error".
func AppError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperr.As(err)
	if !ok {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("unhandled error")
		appErr = apperr.Internal(err)
	}
	if appErr.Status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(appErr).Str("code", string(appErr.Code)).Msg("request failed")
	}
	JSON(w, appErr.Status, ErrorBody{Error: appErr.Message, Details: appErr.Details})
}
