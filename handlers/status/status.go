package status

import (
	"context"
	"errors"
	"net/http"

	"github.com/a-h/easyjapanese/completion"
	"github.com/a-h/easyjapanese/models"
	"github.com/a-h/easyjapanese/prompt"
)

// ClientClosedRequest is used when the caller went away before the pipeline finished.
const ClientClosedRequest = 499

// FromError maps a pipeline error to an HTTP status code and a message
// that's safe to show to the caller.
func FromError(err error) (code int, msg string) {
	var ve models.ValidationError
	var ue *completion.UpstreamError
	var te interface{ Timeout() bool }
	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Error()
	case errors.Is(err, prompt.ErrMissingValue):
		return http.StatusBadRequest, "article is required"
	case errors.Is(err, context.Canceled):
		return ClientClosedRequest, "request cancelled"
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &te) && te.Timeout():
		return http.StatusGatewayTimeout, "completion service timed out"
	case errors.As(err, &ue):
		// Provider errors can echo part of the caller's key, so the detail is only logged.
		return http.StatusBadGateway, "completion service request failed"
	}
	return http.StatusInternalServerError, "internal error"
}
