package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/foodorder/binder"
	"github.com/dmitrymomot/foodorder/pkg/logger"
	"github.com/dmitrymomot/foodorder/pkg/requestid"
	"github.com/dmitrymomot/foodorder/pkg/validator"
)

// GenericErrorMessage replaces unexpected error text outside development.
const GenericErrorMessage = "Something went wrong!"

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	// Development exposes the raw text of unexpected errors.
	Development bool
}

// ErrorInfo contains classified error information.
type ErrorInfo struct {
	StatusCode int
	Code       string
	Message    string
	Details    map[string][]string
	LogLevel   slog.Level
}

// Classify maps err onto a status, key and client message.
func Classify(err error, development bool) ErrorInfo {
	var (
		validationErr validator.ValidationErrors
		httpErr       HTTPError
	)

	switch {
	case errors.As(err, &validationErr):
		return ErrorInfo{
			StatusCode: http.StatusBadRequest,
			Code:       "validation_error",
			Message:    validationErr.Error(),
			Details:    validationErr.Map(),
			LogLevel:   slog.LevelWarn,
		}
	case errors.As(err, &httpErr):
		info := ErrorInfo{
			StatusCode: httpErr.Code,
			Code:       httpErr.Key,
			Message:    httpErr.Error(),
			LogLevel:   slog.LevelWarn,
		}
		// Only 500 hides its text; other 5xx report a known outage to the client.
		if httpErr.Code >= http.StatusInternalServerError {
			info.LogLevel = slog.LevelError
			if httpErr.Code == http.StatusInternalServerError && !development {
				info.Message = GenericErrorMessage
			}
		}
		return info
	case errors.Is(err, binder.ErrRequestTooLarge):
		return ErrorInfo{StatusCode: http.StatusRequestEntityTooLarge, Code: ErrRequestEntityTooLarge.Key, Message: err.Error(), LogLevel: slog.LevelWarn}
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		return ErrorInfo{StatusCode: http.StatusUnsupportedMediaType, Code: ErrUnsupportedMediaType.Key, Message: err.Error(), LogLevel: slog.LevelWarn}
	case binder.IsBindError(err):
		return ErrorInfo{StatusCode: http.StatusBadRequest, Code: ErrBadRequest.Key, Message: err.Error(), LogLevel: slog.LevelWarn}
	}

	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrInternalServerError.Key,
		Message:    GenericErrorMessage,
		LogLevel:   slog.LevelError,
	}
	if development {
		info.Message = err.Error()
	}
	return info
}

// NewErrorHandler logs every error with the request id and renders the
// JSON error envelope.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = logger.Noop()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		info := Classify(err, cfg.Development)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		resp := JSONError(info.StatusCode, &ErrorDetail{
			Code:    info.Code,
			Message: info.Message,
			Details: info.Details,
		})
		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response",
				logger.Error(renderErr),
				logger.Event("render_error"),
			)
		}
	}
}
