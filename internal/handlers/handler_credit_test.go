package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/fuelstation_backend/internal/apperrors"
	"github.com/SscSPs/fuelstation_backend/internal/core/domain"
	"github.com/SscSPs/fuelstation_backend/internal/dto"
	"github.com/SscSPs/fuelstation_backend/internal/handlers"
	"github.com/SscSPs/fuelstation_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockCreditService  *MockCreditService
	mockPaymentService *MockPaymentService
	idempotencyRepo    *memoryIdempotencyRepo
	jwtSecret          string
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func int64Ptr(v int64) *int64 {
	return &v
}

// generateTestToken creates a dummy JWT for testing.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "fuelstation-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.router.Use(middleware.StructuredLoggingMiddleware(quiet))

	suite.mockCreditService = new(MockCreditService)
	suite.mockPaymentService = new(MockPaymentService)
	suite.idempotencyRepo = newMemoryIdempotencyRepo()

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	idem := middleware.Idempotency(suite.idempotencyRepo)
	handlers.RegisterCreditRoutes(v1, suite.mockCreditService, suite.mockPaymentService, idem)
	handlers.RegisterPaymentRoutes(v1, suite.mockPaymentService, idem)
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.mockCreditService.AssertExpectations(suite.T())
	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) do(method, path, userID string, body any, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			suite.Require().NoError(err)
			raw = string(b)
		}
		reader = bytes.NewBufferString(raw)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func sampleCredit(id int64, amount, paid string, status domain.CreditStatus) *domain.Credit {
	return &domain.Credit{
		CreditID:     id,
		ClientID:     7,
		CreditAmount: dec(amount),
		AmountPaid:   dec(paid),
		DueDate:      time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Status:       status,
	}
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestCreateCredit_Success() {
	suite.mockCreditService.On("CreateCredit", mock.Anything, mock.MatchedBy(func(r dto.CreateCreditRequest) bool {
		return r.ClientID == 7 && r.CreditAmount.Equal(dec("100")) && r.DueDate.Format("2006-01-02") == "2024-07-01"
	})).Return(sampleCredit(1, "100", "0", domain.CreditStatusPending), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/credits", "42", `{"client_id":7,"credit_amount":"100.00","due_date":"2024-07-01"}`)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	resp := suite.decode(w)
	suite.Equal(float64(1), resp["credit_id"])
	suite.Equal(100.0, resp["credit_amount"])
	suite.Equal(100.0, resp["balance"])
	suite.Equal("pending", resp["status"])
	suite.Equal("2024-07-01", resp["due_date"])
}

func (suite *HandlerTestSuite) TestCreateCredit_MissingClient() {
	w := suite.do(http.MethodPost, "/api/v1/credits", "42", `{"credit_amount":100,"due_date":"2024-07-01"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCreditService.AssertNotCalled(suite.T(), "CreateCredit", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateCredit_ValidationFromService() {
	suite.mockCreditService.On("CreateCredit", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: credit amount must be at least 0.01", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPost, "/api/v1/credits", "42", `{"client_id":7,"credit_amount":0.001,"due_date":"2024-07-01"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.decode(w)["error"], "at least 0.01")
}

func (suite *HandlerTestSuite) TestUnauthorized() {
	w := suite.do(http.MethodGet, "/api/v1/credits", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/credits", nil)
	req.Header.Set("Authorization", "Token abc")
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestListCredits_Filters() {
	overdue := domain.CreditStatusOverdue
	suite.mockCreditService.On("ListCredits", mock.Anything, mock.MatchedBy(func(f domain.CreditFilter) bool {
		return f.Status != nil && *f.Status == overdue && f.ClientID != nil && *f.ClientID == 3 && f.Overdue == nil
	})).Return([]domain.Credit{*sampleCredit(4, "80", "20", overdue)}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/credits?status=overdue&client_id=3", "42", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp []map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal(60.0, resp[0]["balance"])
}

func (suite *HandlerTestSuite) TestListCredits_EmptyIsArray() {
	suite.mockCreditService.On("ListCredits", mock.Anything, domain.CreditFilter{}).Return([]domain.Credit{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/credits", "42", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
}

func (suite *HandlerTestSuite) TestListCredits_UnknownStatus() {
	w := suite.do(http.MethodGet, "/api/v1/credits?status=closed", "42", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListOverdue() {
	suite.mockCreditService.On("ListOverdueCredits", mock.Anything).
		Return([]domain.Credit{*sampleCredit(2, "10", "0", domain.CreditStatusOverdue)}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/credits/overdue", "42", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"status":"overdue"`)
}

func (suite *HandlerTestSuite) TestDashboard() {
	suite.mockCreditService.On("GetDashboardCounts", mock.Anything).
		Return(&domain.DashboardCounts{Paid: 2, Overdue: 1, Pending: 3, Total: 6}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/credits/dashboard", "42", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"paid":2,"overdue":1,"pending":3,"total":6}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestGetCredit() {
	suite.mockCreditService.On("GetCredit", mock.Anything, int64(9)).
		Return(nil, apperrors.NewNotFoundError("credit 9 not found")).Once()

	w := suite.do(http.MethodGet, "/api/v1/credits/9", "42", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/credits/abc", "42", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateCredit() {
	suite.mockCreditService.On("UpdateCredit", mock.Anything, int64(3), mock.MatchedBy(func(r dto.UpdateCreditRequest) bool {
		return r.CreditAmount != nil && r.CreditAmount.Equal(dec("150")) && r.ClientID == nil
	})).Return(sampleCredit(3, "150", "50", domain.CreditStatusPending), nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/credits/3", "42", `{"credit_amount":150}`)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal(100.0, suite.decode(w)["balance"])
}

func (suite *HandlerTestSuite) TestDeleteCredit() {
	suite.mockCreditService.On("DeleteCredit", mock.Anything, int64(3)).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/credits/3", "42", nil)
	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestPayCredit_UsesTokenSubject() {
	suite.mockPaymentService.On("PayCredit", mock.Anything, int64(5), mock.MatchedBy(func(r dto.PayCreditRequest) bool {
		return r.Amount.Equal(dec("25.5")) && r.UserID != nil && *r.UserID == 42
	})).Return(sampleCredit(5, "100", "25.50", domain.CreditStatusPending), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/credits/5/pay", "42", `{"amount":"25.50","user_id":9}`)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	resp := suite.decode(w)
	suite.Equal(25.5, resp["amount_paid"])
	suite.Equal(74.5, resp["balance"])
}

func (suite *HandlerTestSuite) TestPayCredit_NonNumericSubjectKeepsBodyUser() {
	suite.mockPaymentService.On("PayCredit", mock.Anything, int64(5), mock.MatchedBy(func(r dto.PayCreditRequest) bool {
		return r.UserID != nil && *r.UserID == 9
	})).Return(sampleCredit(5, "100", "10", domain.CreditStatusPending), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/credits/5/pay", "pos-terminal", `{"amount":10,"user_id":9}`)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestPayCredit_ExceedsBalance() {
	suite.mockPaymentService.On("PayCredit", mock.Anything, int64(5), mock.Anything).
		Return(nil, apperrors.NewExceedsBalanceError(5, dec("50"), dec("80"))).Once()

	w := suite.do(http.MethodPost, "/api/v1/credits/5/pay", "42", `{"amount":80}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	resp := suite.decode(w)
	suite.Equal(float64(5), resp["credit_id"])
	suite.Equal(50.0, resp["balance"])
	suite.Contains(resp["error"], "exceeds balance")
}

func (suite *HandlerTestSuite) TestPayCredit_InvalidAmount() {
	suite.mockPaymentService.On("PayCredit", mock.Anything, int64(5), mock.Anything).
		Return(nil, apperrors.ErrInvalidAmount).Once()

	w := suite.do(http.MethodPost, "/api/v1/credits/5/pay", "42", `{"amount":"abc"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestPayCredit_StorageFailure() {
	suite.mockPaymentService.On("PayCredit", mock.Anything, int64(5), mock.Anything).
		Return(nil, apperrors.NewStorageError("failed to fetch credit 5", fmt.Errorf("lock timeout"))).Once()

	w := suite.do(http.MethodPost, "/api/v1/credits/5/pay", "42", `{"amount":10}`)
	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *HandlerTestSuite) TestPayCredit_IdempotentReplay() {
	suite.mockPaymentService.On("PayCredit", mock.Anything, int64(5), mock.Anything).
		Return(sampleCredit(5, "100", "10", domain.CreditStatusPending), nil).Once()

	first := suite.do(http.MethodPost, "/api/v1/credits/5/pay", "42", `{"amount":10}`, middleware.IdempotencyKeyHeader, "k-1")
	second := suite.do(http.MethodPost, "/api/v1/credits/5/pay", "42", `{"amount":10}`, middleware.IdempotencyKeyHeader, "k-1")

	suite.Equal(http.StatusOK, first.Code)
	suite.Equal(http.StatusOK, second.Code)
	suite.Equal("true", second.Header().Get(middleware.IdempotencyHitHeader))
	suite.Empty(first.Header().Get(middleware.IdempotencyHitHeader))
	suite.JSONEq(first.Body.String(), second.Body.String())

	// same key on another route is a conflict
	third := suite.do(http.MethodPost, "/api/v1/credits/6/pay", "42", `{"amount":10}`, middleware.IdempotencyKeyHeader, "k-1")
	suite.Equal(http.StatusConflict, third.Code)
}

func (suite *HandlerTestSuite) TestPayCredit_SameKeyDifferentAmountRejected() {
	suite.mockPaymentService.On("PayCredit", mock.Anything, int64(5), mock.Anything).
		Return(sampleCredit(5, "100", "10", domain.CreditStatusPending), nil).Once()

	first := suite.do(http.MethodPost, "/api/v1/credits/5/pay", "42", `{"amount":10}`, middleware.IdempotencyKeyHeader, "k-3")
	second := suite.do(http.MethodPost, "/api/v1/credits/5/pay", "42", `{"amount":90}`, middleware.IdempotencyKeyHeader, "k-3")

	suite.Equal(http.StatusOK, first.Code)
	suite.Equal(http.StatusUnprocessableEntity, second.Code)
	suite.Empty(second.Header().Get(middleware.IdempotencyHitHeader))
	suite.mockPaymentService.AssertNumberOfCalls(suite.T(), "PayCredit", 1)
}

func (suite *HandlerTestSuite) TestPayCredit_FailedAttemptIsNotStored() {
	suite.mockPaymentService.On("PayCredit", mock.Anything, int64(5), mock.Anything).
		Return(nil, apperrors.NewStorageError("lock timeout", nil)).Once()
	suite.mockPaymentService.On("PayCredit", mock.Anything, int64(5), mock.Anything).
		Return(sampleCredit(5, "100", "10", domain.CreditStatusPending), nil).Once()

	first := suite.do(http.MethodPost, "/api/v1/credits/5/pay", "42", `{"amount":10}`, middleware.IdempotencyKeyHeader, "k-2")
	second := suite.do(http.MethodPost, "/api/v1/credits/5/pay", "42", `{"amount":10}`, middleware.IdempotencyKeyHeader, "k-2")

	suite.Equal(http.StatusServiceUnavailable, first.Code)
	suite.Equal(http.StatusOK, second.Code)
	suite.Empty(second.Header().Get(middleware.IdempotencyHitHeader))
}

func (suite *HandlerTestSuite) TestPayCreditsBulk() {
	suite.mockPaymentService.On("PayCreditsBulk", mock.Anything, mock.MatchedBy(func(r dto.BulkPayRequest) bool {
		return len(r.Items) == 2 && r.Items[0].CreditID == 3 && r.UserID != nil && *r.UserID == 42
	})).Return(&domain.BulkPaymentResult{
		Updated: []domain.Credit{*sampleCredit(3, "30", "30", domain.CreditStatusPaid), *sampleCredit(8, "50", "20", domain.CreditStatusPending)},
		Payments: []domain.Payment{
			{PaymentID: 1, Amount: dec("30"), CreditID: int64Ptr(3), PaymentType: domain.PaymentTypeCredit, Status: domain.PaymentStatusCompleted},
			{PaymentID: 2, Amount: dec("20"), CreditID: int64Ptr(8), PaymentType: domain.PaymentTypeCredit, Status: domain.PaymentStatusCompleted},
		},
		Count:       2,
		TotalAmount: dec("50"),
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/credits/pay-bulk", "42", `{"items":[{"credit_id":3,"amount":30},{"credit_id":8,"amount":"20"}]}`)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	resp := suite.decode(w)
	suite.Equal(float64(2), resp["count"])
	suite.Equal(50.0, resp["totalAmount"])
	suite.Len(resp["updated"], 2)
	suite.Len(resp["payments"], 2)
}

func (suite *HandlerTestSuite) TestPayCreditsBulk_ExceedsNamesCredit() {
	suite.mockPaymentService.On("PayCreditsBulk", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewExceedsBalanceError(8, dec("40"), dec("50"))).Once()

	w := suite.do(http.MethodPost, "/api/v1/credits/pay-bulk", "42", `{"items":[{"credit_id":8,"amount":30},{"credit_id":8,"amount":20}]}`)
	suite.Equal(http.StatusBadRequest, w.Code)
	resp := suite.decode(w)
	suite.Equal(float64(8), resp["credit_id"])
	suite.Equal(40.0, resp["balance"])
}

func (suite *HandlerTestSuite) TestListCreditPayments() {
	suite.mockPaymentService.On("ListPayments", mock.Anything, mock.MatchedBy(func(p dto.ListPaymentsParams) bool {
		return p.CreditID != nil && *p.CreditID == 5 && p.Limit == 20
	})).Return(&dto.ListPaymentsResponse{Payments: []dto.PaymentResponse{}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/credits/5/payments", "42", nil)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
