package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/fuelstation_backend/internal/core/ports/services"
	"github.com/SscSPs/fuelstation_backend/internal/dto"
	"github.com/SscSPs/fuelstation_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles sale and standalone payments and payment history.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// RegisterPaymentRoutes registers routes related to payments.
func RegisterPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade, paymentWrites ...gin.HandlerFunc) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.POST("", chain(paymentWrites, h.recordPayment)...)
		payments.GET("", h.listPayments)
	}
}

// chain copies mws so routes sharing the same middleware never share a backing array.
func chain(mws []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mws)+1)
	out = append(out, mws...)
	return append(out, h)
}

// recordPayment godoc
// @Summary Record a sale or standalone payment
// @Description Payments against credits go through /credits/{id}/pay instead.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   Idempotency-Key header string false "Replays the first response for a repeated key"
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} ErrorResponse "Invalid amount or payment type"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to record payment"
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	req.UserID = actingUserID(c, req.UserID)

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "record payment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// listPayments godoc
// @Summary List payments
// @Description Payment history newest first with token-based pagination
// @Tags payments
// @Produce  json
// @Param   credit_id query int false "Filter by credit"
// @Param   sale_id query int false "Filter by sale"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListPayments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.paymentService.ListPayments(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "list payments")
		return
	}

	c.JSON(http.StatusOK, resp)
}
