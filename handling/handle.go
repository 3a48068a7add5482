package handling

import (
	"errors"
	"net/http"
	"ravvio_server/lib"

	"github.com/MonkyMars/gecho"
)

func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) *gecho.Response {
	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	return gecho.InternalServerError(w, gecho.Send())
}

// RespondServiceError maps a service layer error onto the matching HTTP
// response. Unclassified errors are logged and reported as 500.
func RespondServiceError(err error, logger *gecho.Logger, w http.ResponseWriter) *gecho.Response {
	switch {
	case errors.Is(err, lib.ErrValidation):
		return gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
	case errors.Is(err, lib.ErrNotFound):
		return gecho.NotFound(w, gecho.WithMessage(err.Error()), gecho.Send())
	case errors.Is(err, lib.ErrConflict):
		return gecho.Conflict(w, gecho.WithMessage(err.Error()), gecho.Send())
	case errors.Is(err, lib.ErrInvalidCredentials), errors.Is(err, lib.ErrInvalidToken):
		return gecho.Unauthorized(w, gecho.WithMessage(err.Error()), gecho.Send())
	default:
		return HandleError(err, "unhandled service error", logger, w)
	}
}
