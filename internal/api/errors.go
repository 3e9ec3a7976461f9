package api

import (
	"errors"
	"net/http"

	"github.com/hbomb79/Siphon/internal/download"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body sent to the client for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusForFailure maps each kind of download failure to the HTTP status
// which should be reported to the client.
func statusForFailure(kind download.FailureKind) int {
	if kind == download.ValidationFailure {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// GetHTTPErrorHandler returns an echo HTTP error handler which understands
// how to render a download.Failure. Errors raised by echo itself (such as
// unknown routes or unsupported methods) are passed to the fallback handler
// provided. Any other error is treated as an unexpected internal failure.
func GetHTTPErrorHandler(fallbackHandler echo.HTTPErrorHandler) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			log.Warnf("%s request to %s failed after the response was committed: %v\n", ctx.Request().Method, ctx.Request().RequestURI, err)
			return
		}

		var failure *download.Failure
		if !errors.As(err, &failure) {
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				fallbackHandler(err, ctx)
				return
			}

			failure = download.AsInternal(err)
		}

		if failure.Cause != nil {
			log.Warnf("%s request to %s failed (%s): %v\n", ctx.Request().Method, ctx.Request().RequestURI, failure.Kind, failure.Cause)
		}

		if err := ctx.JSON(statusForFailure(failure.Kind), ErrorResponse{Error: failure.Error()}); err != nil {
			log.Errorf("Failed to write error response: %v\n", err)
		}
	}
}
