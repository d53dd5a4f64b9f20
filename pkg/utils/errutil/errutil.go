package errutil

import (
	"context"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemon-dev/mnemon/pkg/utils/logging"
)

// Handle logs the error with full internal detail and reports it to
// Sentry (no-op unless Sentry is initialized). The error is returned
// as-is; callers decide what crosses the service boundary.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	sentry.CaptureException(err)

	return err
}

// HandleHTTP logs the error and writes an HTTP error response. Intended
// for endpoints without a body contract of their own; the chat endpoint
// maps failures to its user-safe message instead.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	_ = Handle(ctx, err, "HTTP error")
	http.Error(w, http.StatusText(statusCode), statusCode)
}
