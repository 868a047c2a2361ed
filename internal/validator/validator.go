// Package validator registers the custom binding tags used by request structs.
package validator

import (
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"spendwise/internal/engine"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("expense_kind", validateExpenseKind)
		_ = v.RegisterValidation("income_key", validateIncomeKey)
		_ = v.RegisterValidation("month", validateMonth)
		_ = v.RegisterValidation("period", validatePeriod)
		_ = v.RegisterValidation("decimal_gt0", validateDecimalGT0)
		_ = v.RegisterValidation("decimal_gte0", validateDecimalGTE0)
	}
}

func validateExpenseKind(fl validator.FieldLevel) bool {
	return engine.Kind(fl.Field().String()).Valid()
}

func validateIncomeKey(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "monthlyIncome", "yearlyIncome":
		return true
	}
	return false
}

// validateMonth accepts ints in [1, 12]. Pointer fields are dereferenced by
// the validator before this runs.
func validateMonth(fl validator.FieldLevel) bool {
	return engine.ValidMonth(int(fl.Field().Int()))
}

func validatePeriod(fl validator.FieldLevel) bool {
	return engine.Period(fl.Field().String()).Valid()
}

// decimalValue exposes decimal fields to tag validation as their exact string
// form; validator does not run field tags on struct values otherwise.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func parseDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(fl.Field().String())
	return d, err == nil
}

func validateDecimalGT0(fl validator.FieldLevel) bool {
	d, ok := parseDecimal(fl)
	return ok && d.IsPositive()
}

func validateDecimalGTE0(fl validator.FieldLevel) bool {
	d, ok := parseDecimal(fl)
	return ok && !d.IsNegative()
}
