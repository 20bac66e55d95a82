package service

import (
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// ErrResponse is the body of every failed API call.
type ErrResponse struct {
	Error *MyError `json:"error,omitempty"`
}

// RegisterErrorHandler installs the MyError aware error handler on e.
func RegisterErrorHandler(e *echo.Echo, logger log.Logger) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(DefaultStatusCodes(), logger).Handler
}

// DefaultStatusCodes maps error codes to HTTP statuses. Unknown codes render as 500.
func DefaultStatusCodes() map[string]int {
	return map[string]int{
		ErrBadParameter:        http.StatusBadRequest,
		ErrEntityNotFound:      http.StatusNotFound,
		ErrInternalServerError: http.StatusInternalServerError,
		ErrUpstream:            http.StatusBadGateway,
	}
}

// HTTPErrorHandler renders handler errors as ErrResponse.
type HTTPErrorHandler struct {
	statusCodes map[string]int
	logger      log.Logger
}

func NewHTTPErrorHandler(statusCodes map[string]int, logger log.Logger) *HTTPErrorHandler {
	NilPanic(statusCodes, "statusCodes")
	NilPanic(logger, "logger")
	return &HTTPErrorHandler{
		statusCodes: statusCodes,
		logger:      logger,
	}
}

// Handler is an echo.HTTPErrorHandler.
func (h *HTTPErrorHandler) Handler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body, he := h.resolve(err)

	logf := level.Error
	if status < http.StatusInternalServerError {
		logf = level.Warn
	}
	logf(h.logger).Log(
		"msg", "HTTP request error",
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"status", status,
		"err", err,
	)

	if he != nil && c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, ErrResponse{Error: body})
}

// resolve picks the status and body for err. Echo's own errors (unknown
// route, bad method, request validation) keep their status; the rest are
// mapped by code.
func (h *HTTPErrorHandler) resolve(err error) (int, *MyError, *echo.HTTPError) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if inner, ok := he.Internal.(*echo.HTTPError); ok {
			he = inner
		}
		code := ErrInternalServerError
		var reqErr *openapi3filter.RequestError
		if errors.As(he.Internal, &reqErr) {
			code = ErrBadParameter
		} else if he.Code == http.StatusNotFound {
			code = ErrEntityNotFound
		}
		msg, _ := he.Message.(string)
		return he.Code, NewMyError(code, msg, err), he
	}

	body := ToMyError(err)
	if body == nil {
		return http.StatusInternalServerError, NewMyError(ErrInternalServerError, "an internal server error has occurred", err), nil
	}
	status, ok := h.statusCodes[body.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	return status, body, nil
}
