package http

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// coinIDPattern matches CoinGecko ids such as "bitcoin" or "usd-coin".
var coinIDPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("coinid", func(fl validator.FieldLevel) bool {
		return coinIDPattern.MatchString(fl.Field().String())
	})
	return v
}

// ReadAndValidateRequest binds path, query and body into req, fills defaults
// and validates it. A non-nil result is a []ValidationError ready to render.
func ReadAndValidateRequest(c echo.Context, req interface{}) interface{} {
	if err := c.Bind(req); err != nil {
		return toValidationErrors(err)
	}
	if err := defaults.Set(req); err != nil {
		return toValidationErrors(err)
	}
	if err := validate.StructCtx(c.Request().Context(), req); err != nil {
		return toValidationErrors(err)
	}
	return nil
}

func toValidationErrors(err error) []ValidationError {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		out := make([]ValidationError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			out = append(out, ValidationError{
				Code:    "ERR_" + strings.ToUpper(fe.Tag()),
				Field:   fe.Field(),
				Message: fieldMessage(fe),
				Params:  fieldParams(fe),
			})
		}
		return out
	}

	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg = fmt.Sprint(he.Message)
	}
	return []ValidationError{{Code: "ERR_UNKNOWN", Message: msg}}
}

func fieldMessage(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	unit := ""
	if fe.Type().Kind() == reflect.String {
		unit = " characters"
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "coinid":
		return field + " must be a lowercase coin id like bitcoin or usd-coin"
	case "uuid":
		return field + " must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s%s", field, param, unit)
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s%s", field, param, unit)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

func fieldParams(fe validator.FieldError) map[string]interface{} {
	switch fe.Tag() {
	case "min", "gte":
		return map[string]interface{}{"min": fe.Param()}
	case "max", "lte":
		return map[string]interface{}{"max": fe.Param()}
	case "oneof":
		return map[string]interface{}{"options": strings.Fields(fe.Param())}
	}
	return nil
}
