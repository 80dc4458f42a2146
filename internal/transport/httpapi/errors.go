package httpapi

import (
	"errors"
	"net/http"

	"github.com/zwelix28/canna-bomb-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeServiceError maps service-layer errors onto the HTTP error envelope.
// Business-rule failures come back as 4xx, everything unrecognized is a 500.
func writeServiceError(c *gin.Context, log *zap.Logger, err error) {
	var stockErr *service.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusBadRequest, BaseError{
			Code:    "insufficient_stock",
			Message: stockErr.Error(),
			Details: stockErr.ProductID.String(),
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, NewUnauthorizedError("authentication required"))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, NewForbiddenError("admin access required"))
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, NewConflictError(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, NewUnauthorizedError(err.Error()))
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCartItemNotFound),
		errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, NewNotFoundError(err.Error()))
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidProduct),
		errors.Is(err, service.ErrInactiveProduct),
		errors.Is(err, service.ErrAmountMismatch),
		errors.Is(err, service.ErrInvalidCollection):
		c.JSON(http.StatusBadRequest, NewValidationError(err.Error()))
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, BaseError{Code: "invalid_status", Message: err.Error()})
	case errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, BaseError{Code: "invalid_transition", Message: err.Error()})
	default:
		log.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewInternalError(""))
	}
}
