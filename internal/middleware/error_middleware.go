package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
	"github.com/yigit/projecthub/internal/pkg/logger"
)

type errorMapping struct {
	targets []error
	status  int
	code    dto.ErrorCode
	message string
}

var errorMappings = []errorMapping{
	{[]error{apperrors.ErrInvalidCredentials}, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{[]error{apperrors.ErrTokenExpired}, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{[]error{apperrors.ErrTokenInvalid, apperrors.ErrTokenRevoked, apperrors.ErrInvalidFormat}, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{[]error{apperrors.ErrTokenNotFound}, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found"},
	{[]error{apperrors.ErrPermissionDenied}, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
	{[]error{
		apperrors.ErrResourceNotFound, apperrors.ErrUserNotFound, apperrors.ErrStudentNotFound,
		apperrors.ErrStaffNotFound, apperrors.ErrDepartmentNotFound, apperrors.ErrAcademicYearNotFound,
		apperrors.ErrProjectTypeNotFound, apperrors.ErrGroupNotFound, apperrors.ErrInvitationNotFound,
		apperrors.ErrReportNotFound, apperrors.ErrMeetingNotFound, apperrors.ErrNotificationNotFound,
	}, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{[]error{apperrors.ErrEmailAlreadyExists, apperrors.ErrResourceAlreadyExists, apperrors.ErrDuplicateName},
		http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{[]error{
		apperrors.ErrConflict, apperrors.ErrAlreadyInGroup, apperrors.ErrDuplicateInvite,
		apperrors.ErrDuplicateReport, apperrors.ErrHasRelations,
	}, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},
	{[]error{apperrors.ErrValidationFailed}, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{[]error{
		apperrors.ErrBadRequest, apperrors.ErrNotInGroup, apperrors.ErrReferenceNotExists,
		apperrors.ErrInvalidPasswordResetToken, apperrors.ErrPasswordResetTokenUsed, apperrors.ErrPasswordResetTokenExpired,
	}, http.StatusBadRequest, dto.ErrorCodeBadRequest, "Bad request"},
}

// HandleAPIError maps a service error onto a status code and the standard error envelope.
// User-facing messages carried by apperrors.CustomError are passed through.
func HandleAPIError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		for _, target := range m.targets {
			if !errors.Is(err, target) {
				continue
			}
			message := m.message
			if msg, ok := apperrors.Message(err); ok {
				message = msg
			}
			c.JSON(m.status, dto.NewErrorResponse(dto.NewErrorDetail(m.code, message)))
			return
		}
	}

	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
}

// HandleValidationError responds 400 for a request that failed binding
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}
