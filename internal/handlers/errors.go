package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/fuelstation_backend/internal/apperrors"
	"github.com/SscSPs/fuelstation_backend/internal/utils/money"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ExceedsBalanceResponse tells the caller how much can still be paid.
type ExceedsBalanceResponse struct {
	Error    string       `json:"error"`
	CreditID int64        `json:"credit_id"`
	Balance  money.Amount `json:"balance"`
}

// respondWithError maps a service error onto an HTTP status. action is used
// in the message of unexpected failures, e.g. "pay credit".
func respondWithError(c *gin.Context, logger *slog.Logger, err error, action string) {
	var exceeds *apperrors.ExceedsBalanceError
	switch {
	case errors.As(err, &exceeds):
		logger.Warn("Payment exceeds balance", slog.Int64("credit_id", exceeds.CreditID), slog.String("balance", exceeds.Balance.StringFixed(2)))
		c.JSON(http.StatusBadRequest, ExceedsBalanceResponse{
			Error:    exceeds.Error(),
			CreditID: exceeds.CreditID,
			Balance:  money.NewAmount(exceeds.Balance),
		})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflict", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrStorage):
		logger.Error("Storage unavailable", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Temporary storage failure, please retry"})
	default:
		logger.Error("Unexpected failure", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}
