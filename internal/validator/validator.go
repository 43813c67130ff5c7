package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries a field -> message map the handlers turn into
// flash messages.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	var msgs []string
	for field, msg := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Messages joins the per-field messages into one user-facing line.
func (e *ValidationError) Messages() string {
	var msgs []string
	for _, msg := range e.Errors {
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, " ")
}

// Validator wraps go-playground/validator so field names come from the
// form tag, the way the browser sent them.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	customErrors := make(map[string]string)
	for _, fe := range validationErrors {
		customErrors[fe.Field()] = getErrorMessage(fe)
	}
	return &ValidationError{Errors: customErrors}
}

// User-facing text is Spanish, matching the rest of the site copy.
func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("El campo %s es obligatorio.", fe.Field())
	case "email":
		return "El correo electrónico no es válido."
	case "min":
		return fmt.Sprintf("El campo %s debe tener al menos %s caracteres.", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("El campo %s debe tener como máximo %s caracteres.", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("El campo %s debe tener exactamente %s caracteres.", fe.Field(), fe.Param())
	case "numeric":
		return fmt.Sprintf("El campo %s debe ser numérico.", fe.Field())
	case "oneof":
		return fmt.Sprintf("El campo %s tiene un valor no permitido.", fe.Field())
	default:
		return fmt.Sprintf("El campo %s no es válido.", fe.Field())
	}
}
