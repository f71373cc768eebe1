package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domainChip "electrotrack/internal/domain/chip"
	domainEmployee "electrotrack/internal/domain/employee"
	domainEquipment "electrotrack/internal/domain/equipment"
	domainLoan "electrotrack/internal/domain/loan"
	domainUser "electrotrack/internal/domain/user"
	"electrotrack/internal/logger"
	"electrotrack/internal/middleware"
	appErrors "electrotrack/pkg/errors"
	"electrotrack/pkg/utils"
)

var (
	notFoundErrors = []error{
		domainLoan.ErrLoanNotFound,
		domainEquipment.ErrEquipmentNotFound,
		domainChip.ErrChipNotFound,
		domainEmployee.ErrEmployeeNotFound,
		domainUser.ErrUserNotFound,
		appErrors.ErrUserNotFound,
	}
	conflictErrors = []error{
		domainLoan.ErrLoanNotActive,
		domainLoan.ErrLoanCancelled,
		domainLoan.ErrLoanHasReturns,
		domainLoan.ErrOrderIDExists,
		domainEquipment.ErrEquipmentUnavailable,
		domainEquipment.ErrEquipmentLoaned,
		domainEquipment.ErrEquipmentAlreadyExists,
		domainEquipment.ErrInvalidStatusTransition,
		domainChip.ErrChipUnavailable,
		domainChip.ErrChipLoaned,
		domainChip.ErrChipAlreadyExists,
		domainChip.ErrInvalidStatusTransition,
		domainEmployee.ErrEmployeeAlreadyExists,
		domainUser.ErrUserAlreadyExists,
		appErrors.ErrUserAlreadyExists,
	}
	badRequestErrors = []error{
		domainLoan.ErrItemNotInLoan,
		domainLoan.ErrIDMismatch,
		domainLoan.ErrNoItems,
		domainLoan.ErrLiabilityNotAccepted,
		domainLoan.ErrPersonNameRequired,
		domainLoan.ErrEquipmentRequired,
		domainLoan.ErrDuplicateEquipment,
		domainLoan.ErrDuplicateChip,
		domainLoan.ErrInvalidItem,
		domainLoan.ErrInvalidMission,
		domainLoan.ErrInvalidSignature,
		domainEquipment.ErrInvalidStatus,
		domainChip.ErrInvalidStatus,
		domainUser.ErrSelfDeactivation,
		domainUser.ErrInvalidUserRole,
		appErrors.ErrInvalidInput,
	}
	unauthorizedErrors = []error{
		appErrors.ErrInvalidCredentials,
		appErrors.ErrInvalidToken,
		appErrors.ErrUnauthorized,
	}
	forbiddenErrors = []error{
		domainUser.ErrUserInactive,
		appErrors.ErrUserInactive,
		appErrors.ErrInsufficientPermissions,
	}
)

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// statusFor maps domain sentinels to HTTP statuses; 0 means unknown.
func statusFor(err error) int {
	switch {
	case isAny(err, notFoundErrors):
		return http.StatusNotFound
	case isAny(err, conflictErrors):
		return http.StatusConflict
	case isAny(err, badRequestErrors):
		return http.StatusBadRequest
	case isAny(err, unauthorizedErrors):
		return http.StatusUnauthorized
	case isAny(err, forbiddenErrors):
		return http.StatusForbidden
	}
	return 0
}

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var appErr *appErrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Code == appErrors.CodeValidation && appErr.Err != nil {
			utils.ValidationErrorResponse(c, http.StatusBadRequest, appErr.Message, utils.ValidationMessages(appErr.Err))
			return
		}
		status := appErr.StatusCode()
		if sentinel := statusFor(appErr.Err); sentinel != 0 && appErr.Code != appErrors.CodeValidation {
			status = sentinel
		}
		utils.ErrorResponse(c, status, appErr.Message)
		return
	}

	if status := statusFor(err); status != 0 {
		utils.ErrorResponse(c, status, err.Error())
		return
	}

	logger.Error("Internal server error",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
}

// parseID reads a uuid path parameter and answers 400 when it is malformed.
func parseID(c *gin.Context, param, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// actor is the username recorded in audit entries and events.
func actor(c *gin.Context) string {
	_, username, _ := middleware.CurrentUser(c)
	return username
}
