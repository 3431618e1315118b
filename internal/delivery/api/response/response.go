// Package response renders the JSON envelope shared by every endpoint:
// {"data": ..., "meta": {...}} on success and {"error": {...}, "meta": {...}}
// on failure.
package response

import (
	"net/http"

	deliverycontext "tasker/internal/delivery/context"
	domainerrors "tasker/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// bearerChallenge is sent with every 401 so clients know which scheme to retry with.
const bearerChallenge = "Bearer"

type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

// ErrorInfo is the client-facing error. Details is only populated for
// 4xx responses other than 401 and 403, e.g. validation field errors.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type MetaInfo struct {
	RequestID string `json:"request_id"`
}

func meta(c echo.Context) *MetaInfo {
	return &MetaInfo{RequestID: deliverycontext.GetRequestID(c)}
}

// Success writes data inside the success envelope.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, SuccessResponse{Data: data, Meta: meta(c)})
}

// NoContent answers 204 without a body, as after a delete.
func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// Error writes the error envelope. Details are dropped for server errors and
// for 401/403 so that nothing about accounts or resources leaks to callers.
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	switch {
	case statusCode == http.StatusUnauthorized:
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, bearerChallenge)
		details = nil
	case statusCode == http.StatusForbidden, statusCode >= http.StatusInternalServerError:
		details = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		Error: &ErrorInfo{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
		Meta: meta(c),
	})
}

// BindingError answers 400 for a request body that could not be decoded.
func BindingError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, nil)
}

func Unauthorized(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusUnauthorized, errorCode, message, nil)
}

// HandleAppError renders client errors (4xx AppErrors) directly. Server-side
// failures and unknown errors are returned with a stack trace so that the
// error middleware logs the cause before answering with an opaque body.
func HandleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPCode() < http.StatusInternalServerError {
		return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
