package middleware

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	setupValidatorOnce sync.Once
	clockPattern       = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)
)

// SetupValidator registers the custom binding tags used by request DTOs:
//
//	dpositive    decimal strictly greater than zero
//	dnonnegative decimal zero or greater
//	dnonzero     decimal other than zero
//	clock        HH:MM or HH:MM:SS
//	sourcekind   a known journal source kind
//
// It is safe to call more than once.
func SetupValidator() {
	setupValidatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		// Use JSON tag names for field names in errors
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
		_ = v.RegisterValidation("dpositive", decimalCheck(func(d decimal.Decimal) bool { return d.IsPositive() }))
		_ = v.RegisterValidation("dnonnegative", decimalCheck(func(d decimal.Decimal) bool { return !d.IsNegative() }))
		_ = v.RegisterValidation("dnonzero", decimalCheck(func(d decimal.Decimal) bool { return !d.IsZero() }))
		_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			return clockPattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("sourcekind", func(fl validator.FieldLevel) bool {
			_, err := domain.ParseSourceKind(fl.Field().String())
			return err == nil
		})
	})
}

func decimalCheck(ok func(decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		switch d := fl.Field().Interface().(type) {
		case decimal.Decimal:
			return ok(d)
		case *decimal.Decimal:
			return d == nil || ok(*d)
		}
		return false
	}
}
