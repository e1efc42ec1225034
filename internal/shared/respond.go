package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the JSON response shape for every endpoint.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

// Respond writes a JSON envelope with the given status.
func Respond(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// RespondError maps a structured error to its HTTP representation.
//
// Identity-not-found and invalid-credentials collapse into the same 401
// response so the transport never reveals whether an account exists.
// Expired tokens keep a distinct message so clients can prompt a fresh
// login instead of treating the session as never established.
func RespondError(logger *slog.Logger, w http.ResponseWriter, err error) {
	switch KindOf(err) {
	case KindDuplicateIdentity, KindConflict:
		Respond(w, http.StatusConflict, err.Error(), nil)
	case KindIdentityNotFound, KindInvalidCredentials:
		Respond(w, http.StatusUnauthorized, ErrInvalidCredentials.Message, nil)
	case KindTokenExpired:
		Respond(w, http.StatusUnauthorized, ErrTokenExpired.Message, nil)
	case KindTokenMalformed, KindTokenBadSignature, KindUnauthenticated:
		Respond(w, http.StatusUnauthorized, ErrUnauthenticated.Message, nil)
	case KindInsufficientRole, KindInsufficientPermission:
		Respond(w, http.StatusForbidden, err.Error(), nil)
	case KindNotFound:
		Respond(w, http.StatusNotFound, err.Error(), nil)
	default:
		if logger != nil {
			logger.Error("internal error", slog.Any("error", err))
		}
		Respond(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), nil)
	}
}
