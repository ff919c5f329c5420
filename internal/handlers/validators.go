package handlers

import (
	"errors"

	"github.com/SscSPs/fuelstation_backend/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the ledger's custom binding tags to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator is not go-playground/validator")
	}
	if err := v.RegisterValidation("credit_status", validateCreditStatus); err != nil {
		return err
	}
	return v.RegisterValidation("payment_type", validatePaymentType)
}

func validateCreditStatus(fl validator.FieldLevel) bool {
	return domain.CreditStatus(fl.Field().String()).IsValid()
}

func validatePaymentType(fl validator.FieldLevel) bool {
	return domain.PaymentType(fl.Field().String()).IsValid()
}
