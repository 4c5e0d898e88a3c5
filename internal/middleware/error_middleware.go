package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/javamaster/internal/app/models/dto"
	"github.com/yigit/javamaster/internal/pkg/apperrors"
	"github.com/yigit/javamaster/internal/pkg/logger"
)

// errorMapping ties a sentinel error to its HTTP status and response code
type errorMapping struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// Order matters: checkout errors wrap ErrService, so they are matched first.
var errorMappings = []errorMapping{
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Bad request"},
	{apperrors.ErrPaymentVerification, http.StatusBadRequest, dto.ErrorCodePaymentVerification, "Payment verification failed"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found"},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
	{apperrors.ErrCourseNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found"},
	{apperrors.ErrOrderNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Order not found"},
	{apperrors.ErrCheckoutNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Checkout not found"},
	{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists"},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrCapacityExceeded, http.StatusConflict, dto.ErrorCodeCapacityExceeded, "Course is full"},
	{apperrors.ErrCheckoutAlreadyClosed, http.StatusConflict, dto.ErrorCodeConflict, "Checkout already closed"},
	{apperrors.ErrIllegalTransition, http.StatusConflict, dto.ErrorCodeConflict, "Checkout state conflict"},
	{apperrors.ErrNotReady, http.StatusServiceUnavailable, dto.ErrorCodeNotReady, "Profile not ready, please retry"},
	{apperrors.ErrGatewayOrder, http.StatusBadGateway, dto.ErrorCodeExternalServiceError, "Payment gateway error"},
	{apperrors.ErrPersist, http.StatusInternalServerError, dto.ErrorCodePersistFailed, "Order could not be recorded"},
	{apperrors.ErrService, http.StatusInternalServerError, dto.ErrorCodeDatabaseError, "Service error"},
}

// ErrorStatus maps err onto an HTTP status and the error detail sent to the client.
// The message of a CustomError replaces the generic one; unknown errors stay opaque.
func ErrorStatus(err error) (int, *dto.ErrorDetail) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		detail := dto.NewErrorDetail(m.code, m.message)
		var ce *apperrors.CustomError
		if errors.As(err, &ce) && ce.Message != "" {
			detail.Message = ce.Message
		}
		if fields := apperrors.DetailsOf(err); len(fields) > 0 {
			detail = detail.WithDetails(fields)
		}
		return m.status, detail
	}
	return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
}

// HandleAPIError writes err as an APIResponse with the mapped status
func HandleAPIError(c *gin.Context, err error) {
	status, detail := ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Msg("Request failed")
	}
	c.JSON(status, dto.APIResponse{Error: detail})
}
