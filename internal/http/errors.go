package http

import (
	"errors"
	cl "media-catalog/pkg/catelog"
	"net/http"

	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/requestid"
)

var errUnauthorized = errors.New("a valid bearer token is required")

// statusFor maps catalog errors onto response codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, cl.ErrNotFound), errors.Is(err, cl.ErrAlbumNotFound):
		return http.StatusNotFound
	case errors.Is(err, cl.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, cl.ErrInvalidCredentials), errors.Is(err, errUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, cl.ErrInvalidID),
		errors.Is(err, cl.ErrInvalidTag),
		errors.Is(err, cl.ErrEmptyUpdate),
		errors.Is(err, cl.ErrInvalidCapacity):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err under op and writes the matching JSON error response.
// Internal errors are logged at error level, client errors at warn level.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	code := statusFor(err)
	msg := "[" + op + "] request failed"
	if code == http.StatusInternalServerError {
		h.Logger.Error(msg,
			"request_id", requestid.Get(r.Context()),
			"details", err.Error(),
		)
	} else {
		h.Logger.Warn(msg,
			"request_id", requestid.Get(r.Context()),
			"status", code,
			"details", err.Error(),
		)
	}
	_ = httputils.WriteJSONError(w, r.URL.Query(), err.Error(), code)
}
