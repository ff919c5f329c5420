package handlers_test

import (
	"net/http"
	"time"

	"github.com/SscSPs/fuelstation_backend/internal/apperrors"
	"github.com/SscSPs/fuelstation_backend/internal/core/domain"
	"github.com/SscSPs/fuelstation_backend/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestRecordPayment_Sale() {
	saleID := int64(11)
	suite.mockPaymentService.On("RecordPayment", mock.Anything, mock.MatchedBy(func(r dto.RecordPaymentRequest) bool {
		return r.PaymentType == domain.PaymentTypeSale && r.SaleID != nil && *r.SaleID == saleID &&
			r.Amount.Equal(dec("45.1")) && r.UserID != nil && *r.UserID == 42
	})).Return(&domain.Payment{
		PaymentID:        3,
		Amount:           dec("45.10"),
		SaleID:           &saleID,
		PaymentType:      domain.PaymentTypeSale,
		Status:           domain.PaymentStatusCompleted,
		PaymentTimestamp: time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC),
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/payments", "42", `{"amount":45.1,"payment_type":"sale","sale_id":11}`)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	resp := suite.decode(w)
	suite.Equal(45.1, resp["amount"])
	suite.Equal("sale", resp["payment_type"])
	suite.Equal("completed", resp["status"])
	suite.Nil(resp["credit_id"])
}

func (suite *HandlerTestSuite) TestRecordPayment_UnknownType() {
	w := suite.do(http.MethodPost, "/api/v1/payments", "42", `{"amount":10,"payment_type":"voucher"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPaymentService.AssertNotCalled(suite.T(), "RecordPayment", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestRecordPayment_MissingSaleID() {
	suite.mockPaymentService.On("RecordPayment", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewAppError(http.StatusBadRequest, "sale payments require sale_id", nil)).Once()

	w := suite.do(http.MethodPost, "/api/v1/payments", "42", `{"amount":10,"payment_type":"sale"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("sale payments require sale_id", suite.decode(w)["error"])
}

func (suite *HandlerTestSuite) TestListPayments_TokenPassThrough() {
	next := "b3BhcXVl"
	suite.mockPaymentService.On("ListPayments", mock.Anything, mock.MatchedBy(func(p dto.ListPaymentsParams) bool {
		return p.Limit == 5 && p.NextToken != nil && *p.NextToken == "abc" && p.CreditID == nil
	})).Return(&dto.ListPaymentsResponse{Payments: []dto.PaymentResponse{}, NextToken: &next}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/payments?limit=5&nextToken=abc", "42", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal(next, suite.decode(w)["nextToken"])
}

func (suite *HandlerTestSuite) TestListPayments_LimitOutOfRange() {
	w := suite.do(http.MethodGet, "/api/v1/payments?limit=500", "42", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListPayments_BadToken() {
	suite.mockPaymentService.On("ListPayments", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", nil)).Once()

	w := suite.do(http.MethodGet, "/api/v1/payments?nextToken=not-a-token", "42", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}
