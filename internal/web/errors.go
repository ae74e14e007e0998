package web

// errors.go turns service errors into the {success, message} envelope.
//
// Errors that already carry a user-facing message (*core.PublicError and
// *roster.RejectError) are returned verbatim. Everything else goes through
// core.MapError, and the technical error is only logged.

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/portal/internal/core"
	"github.com/JonMunkholm/portal/internal/core/roster"
	"github.com/JonMunkholm/portal/internal/logging"
)

var (
	errRateLimited  = errors.New("rate limit exceeded")
	errInvalidBody  = errors.New("invalid request body")
	errNoFile       = errors.New("no file uploaded")
	errNoFileName   = errors.New("no file selected")
	errFileTooLarge = errors.New("request body too large")

	errInvalidID = &core.PublicError{Msg: "Invalid id", Code: "VAL006"}
)

// Response is the JSON envelope of every API call.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
	Action  string `json:"action,omitempty"`
}

func succeed(message string) Response {
	return Response{Success: true, Message: message}
}

func failure(msg core.UserMessage) Response {
	return Response{Message: msg.Message, Code: msg.Code, Action: msg.Action}
}

// respondError logs err and writes the failure envelope with the status
// statusFor picks.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := userMessage(err)

	log := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", msg.Code,
	}
	if status >= http.StatusInternalServerError {
		log.Error("request error", attrs...)
	} else {
		log.Info("request refused", attrs...)
	}

	writeJSON(w, status, failure(msg))
}

func userMessage(err error) core.UserMessage {
	var rejected *roster.RejectError
	if errors.As(err, &rejected) {
		msg := core.MapError(err)
		msg.Message = rejected.Msg
		return msg
	}
	return core.MapError(err)
}

func statusFor(err error) int {
	var (
		pe       *core.PublicError
		rejected *roster.RejectError
	)
	switch {
	case errors.Is(err, core.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, core.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, core.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, core.ErrTooManyImports):
		return http.StatusServiceUnavailable
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, errFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrUserNotFound),
		errors.Is(err, core.ErrPermissionNotFound),
		errors.Is(err, core.ErrClubEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &rejected):
		return http.StatusBadRequest
	case errors.As(err, &pe):
		if strings.HasPrefix(pe.Code, "VAL") {
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	case errors.Is(err, core.ErrWrongPassword),
		errors.Is(err, core.ErrPasswordMismatch),
		errors.Is(err, core.ErrNoFaculty),
		errors.Is(err, core.ErrNoClasses),
		errors.Is(err, errInvalidBody),
		errors.Is(err, errNoFile),
		errors.Is(err, errNoFileName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
