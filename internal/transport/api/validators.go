package api

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"

	"github.com/go-playground/validator/v10"
)

// validateDecimalGTZero тэг dgt0: поле типа decimal.Decimal должно быть строго больше нуля.
// Стандартный gt=0 с decimal не работает (структура, а не число).
func validateDecimalGTZero(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return value.IsPositive()
}

func registerValidators() error {
	v, _ := binding.Validator.Engine().(*validator.Validate)
	if err := v.RegisterValidation("dgt0", validateDecimalGTZero); err != nil {
		return fmt.Errorf("validator registration: %s", err.Error())
	}
	return nil
}
