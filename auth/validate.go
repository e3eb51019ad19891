package auth

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/user/taskmanager-go/apperror"
)

// MinPasswordLength is the shortest password accepted after trimming.
const MinPasswordLength = 7

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names, not Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("password", validPassword); err != nil {
		panic(err)
	}
	return v
}

// validPassword rejects short passwords and anything containing "password".
func validPassword(fl validator.FieldLevel) bool {
	p := strings.TrimSpace(fl.Field().String())
	return len(p) >= MinPasswordLength && !strings.Contains(strings.ToLower(p), "password")
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateStruct runs the struct's `validate` tags and converts the first failure
// into a ValidationError.
func ValidateStruct(s any) error {
	return toValidationError(validate.Struct(s), "")
}

// ValidateName checks a display name.
func ValidateName(name string) error {
	return toValidationError(validate.Var(name, "required,max=100"), "name")
}

// ValidateEmail checks an already normalized email address.
func ValidateEmail(email string) error {
	return toValidationError(validate.Var(email, "required,email"), "email")
}

// ValidatePassword checks password strength.
func ValidatePassword(password string) error {
	return toValidationError(validate.Var(password, "required,password"), "password")
}

func toValidationError(err error, field string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperror.NewValidationError("invalid input", err)
	}
	fe := verrs[0]
	name := fe.Field()
	if name == "" {
		name = field
	}
	return apperror.NewValidationError(fmt.Sprintf("%s %s", name, describe(fe)), err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "is invalid"
	case "password":
		return fmt.Sprintf("must be at least %d characters and must not contain \"password\"", MinPasswordLength)
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "is invalid"
	}
}
