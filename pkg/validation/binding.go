package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"wanderquest/pkg/utils"
)

var registerOnce sync.Once

// Register installs the custom rules and json field naming on gin's
// validator engine. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
		_ = v.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
			return utils.IsISODate(fl.Field().String())
		})
		_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
			return ValidPassword(fl.Field().String())
		})
		_ = v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
			return ValidBudget(fl.Field().String())
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
}

// Translate turns a binding error into field level messages. Validator
// reports only the first failing rule of each field.
func Translate(err error) *utils.ValidationError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := &utils.ValidationError{}
		for _, fe := range verrs {
			field := fieldPath(fe)
			out.Fields = append(out.Fields, utils.FieldError{Field: field, Message: message(field, fe)})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return utils.NewValidationError(typeErr.Field, fmt.Sprintf("%s has the wrong type", typeErr.Field))
	}

	return utils.NewValidationError("body", "Invalid request format")
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return InvalidEmailMessage
	case "password":
		return PasswordRequirements
	case "iso8601":
		return fmt.Sprintf("%s must be a valid ISO-8601 date", field)
	case "decimal":
		if isNumeric(fmt.Sprint(fe.Value())) {
			return fmt.Sprintf("%s must be less than %s", field, MaxBudget)
		}
		return fmt.Sprintf("%s must be numeric", field)
	case "numeric":
		return fmt.Sprintf("%s must be numeric", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
