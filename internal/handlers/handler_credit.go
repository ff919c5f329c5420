package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/fuelstation_backend/internal/core/ports/services"
	"github.com/SscSPs/fuelstation_backend/internal/dto"
	"github.com/SscSPs/fuelstation_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// creditHandler handles HTTP requests related to credits and their payments.
type creditHandler struct {
	creditService  portssvc.CreditSvcFacade
	paymentService portssvc.PaymentSvcFacade
}

func newCreditHandler(cs portssvc.CreditSvcFacade, ps portssvc.PaymentSvcFacade) *creditHandler {
	return &creditHandler{
		creditService:  cs,
		paymentService: ps,
	}
}

// RegisterCreditRoutes registers routes related to credits. paymentWrites run
// in front of the payment-applying routes (rate limit, idempotency).
func RegisterCreditRoutes(rg *gin.RouterGroup, creditService portssvc.CreditSvcFacade, paymentService portssvc.PaymentSvcFacade, paymentWrites ...gin.HandlerFunc) {
	h := newCreditHandler(creditService, paymentService)

	credits := rg.Group("/credits")
	{
		credits.POST("", h.createCredit)
		credits.GET("", h.listCredits)
		credits.GET("/overdue", h.listOverdueCredits)
		credits.GET("/dashboard", h.getDashboard)
		credits.POST("/pay-bulk", chain(paymentWrites, h.payCreditsBulk)...)
		credits.GET("/:id", h.getCredit)
		credits.PUT("/:id", h.updateCredit)
		credits.DELETE("/:id", h.deleteCredit)
		credits.POST("/:id/pay", chain(paymentWrites, h.payCredit)...)
		credits.GET("/:id/payments", h.listCreditPayments)
	}
}

// parseCreditID reads the :id path parameter. It writes the 400 itself.
func parseCreditID(c *gin.Context, logger *slog.Logger) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		logger.Warn("Invalid credit id in path", slog.String("credit_id", raw))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid credit id"})
		return 0, false
	}
	return id, true
}

// createCredit godoc
// @Summary Open a new credit
// @Description Creates a pending credit owed by a client
// @Tags credits
// @Accept  json
// @Produce  json
// @Param   credit body dto.CreateCreditRequest true "Credit details"
// @Success 201 {object} dto.CreditResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create credit"
// @Security BearerAuth
// @Router /credits [post]
func (h *creditHandler) createCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCredit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	credit, err := h.creditService.CreateCredit(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "create credit")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCreditResponse(credit))
}

// listCredits godoc
// @Summary List credits
// @Description Lists credits ordered by due date. status filters on the derived status.
// @Tags credits
// @Produce  json
// @Param   status query string false "pending, paid or overdue"
// @Param   overdue query bool false "Only credits past due with a balance"
// @Param   client_id query int false "Owning client"
// @Success 200 {array} dto.CreditResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list credits"
// @Security BearerAuth
// @Router /credits [get]
func (h *creditHandler) listCredits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListCreditsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListCredits", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	credits, err := h.creditService.ListCredits(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondWithError(c, logger, err, "list credits")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCreditResponse(credits))
}

// listOverdueCredits godoc
// @Summary List overdue credits
// @Description Credits past their due date that still carry a balance
// @Tags credits
// @Produce  json
// @Success 200 {array} dto.CreditResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list overdue credits"
// @Security BearerAuth
// @Router /credits/overdue [get]
func (h *creditHandler) listOverdueCredits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	credits, err := h.creditService.ListOverdueCredits(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "list overdue credits")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCreditResponse(credits))
}

// getDashboard godoc
// @Summary Credit dashboard counts
// @Description Number of paid, overdue and pending credits
// @Tags credits
// @Produce  json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to load dashboard"
// @Security BearerAuth
// @Router /credits/dashboard [get]
func (h *creditHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	counts, err := h.creditService.GetDashboardCounts(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "load dashboard")
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(*counts))
}

// getCredit godoc
// @Summary Get a credit by ID
// @Tags credits
// @Produce  json
// @Param   id path int true "Credit ID"
// @Success 200 {object} dto.CreditResponse
// @Failure 400 {object} ErrorResponse "Invalid credit id"
// @Failure 404 {object} ErrorResponse "Credit not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve credit"
// @Security BearerAuth
// @Router /credits/{id} [get]
func (h *creditHandler) getCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditID, ok := parseCreditID(c, logger)
	if !ok {
		return
	}

	credit, err := h.creditService.GetCredit(c.Request.Context(), creditID)
	if err != nil {
		respondWithError(c, logger, err, "retrieve credit")
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditResponse(credit))
}

// updateCredit godoc
// @Summary Update a credit
// @Description Administrative change of client, sale, amount or due date. Paid amount and status cannot be set.
// @Tags credits
// @Accept  json
// @Produce  json
// @Param   id path int true "Credit ID"
// @Param   credit body dto.UpdateCreditRequest true "Fields to change"
// @Success 200 {object} dto.CreditResponse
// @Failure 400 {object} ErrorResponse "Invalid input or amount below paid"
// @Failure 404 {object} ErrorResponse "Credit not found"
// @Failure 503 {object} ErrorResponse "Credit is locked, retry"
// @Security BearerAuth
// @Router /credits/{id} [put]
func (h *creditHandler) updateCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditID, ok := parseCreditID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCredit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	credit, err := h.creditService.UpdateCredit(c.Request.Context(), creditID, req)
	if err != nil {
		respondWithError(c, logger, err, "update credit")
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditResponse(credit))
}

// deleteCredit godoc
// @Summary Delete a credit
// @Description Administrative removal. Payments keep their rows with credit_id cleared.
// @Tags credits
// @Param   id path int true "Credit ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid credit id"
// @Failure 404 {object} ErrorResponse "Credit not found"
// @Security BearerAuth
// @Router /credits/{id} [delete]
func (h *creditHandler) deleteCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditID, ok := parseCreditID(c, logger)
	if !ok {
		return
	}

	if err := h.creditService.DeleteCredit(c.Request.Context(), creditID); err != nil {
		respondWithError(c, logger, err, "delete credit")
		return
	}

	c.Status(http.StatusNoContent)
}

// payCredit godoc
// @Summary Pay a credit
// @Description Applies one payment to a credit under its row lock. Amount must not exceed the balance.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   id path int true "Credit ID"
// @Param   Idempotency-Key header string false "Replays the first response for a repeated key"
// @Param   payment body dto.PayCreditRequest true "Payment details"
// @Success 200 {object} dto.CreditResponse
// @Failure 400 {object} ExceedsBalanceResponse "Invalid amount or amount exceeds balance"
// @Failure 404 {object} ErrorResponse "Credit not found"
// @Failure 429 {object} ErrorResponse "Too many requests"
// @Failure 503 {object} ErrorResponse "Credit is locked, retry"
// @Security BearerAuth
// @Router /credits/{id}/pay [post]
func (h *creditHandler) payCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditID, ok := parseCreditID(c, logger)
	if !ok {
		return
	}
	var req dto.PayCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PayCredit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	req.UserID = actingUserID(c, req.UserID)

	logger.Info("Received request to pay credit", slog.Int64("credit_id", creditID), slog.String("amount", req.Amount.StringFixed(2)))
	credit, err := h.paymentService.PayCredit(c.Request.Context(), creditID, req)
	if err != nil {
		respondWithError(c, logger, err, "pay credit")
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditResponse(credit))
}

// payCreditsBulk godoc
// @Summary Pay several credits at once
// @Description All-or-nothing: one failing item rolls back every item. Duplicate credit ids are merged.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   Idempotency-Key header string false "Replays the first response for a repeated key"
// @Param   payments body dto.BulkPayRequest true "Items to pay"
// @Success 200 {object} dto.BulkPayResponse
// @Failure 400 {object} ExceedsBalanceResponse "Invalid items or an item exceeds its balance"
// @Failure 404 {object} ErrorResponse "A credit was not found"
// @Failure 503 {object} ErrorResponse "A credit is locked, retry"
// @Security BearerAuth
// @Router /credits/pay-bulk [post]
func (h *creditHandler) payCreditsBulk(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BulkPayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PayCreditsBulk", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	req.UserID = actingUserID(c, req.UserID)

	logger.Info("Received request to pay credits in bulk", slog.Int("items", len(req.Items)))
	result, err := h.paymentService.PayCreditsBulk(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "pay credits")
		return
	}

	c.JSON(http.StatusOK, dto.ToBulkPayResponse(result))
}

// listCreditPayments godoc
// @Summary List payments of a credit
// @Tags payments
// @Produce  json
// @Param   id path int true "Credit ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Security BearerAuth
// @Router /credits/{id}/payments [get]
func (h *creditHandler) listCreditPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditID, ok := parseCreditID(c, logger)
	if !ok {
		return
	}
	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListCreditPayments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	params.CreditID = &creditID

	resp, err := h.paymentService.ListPayments(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "list payments")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// actingUserID prefers the numeric JWT subject over a user id sent in the body.
func actingUserID(c *gin.Context, fromBody *int64) *int64 {
	if id, ok := middleware.GetNumericUserID(c); ok {
		return &id
	}
	return fromBody
}
