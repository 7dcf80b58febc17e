package apiutil

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if label := field.Tag.Get("label"); label != "" {
			return label
		}
		return field.Name
	})
	return v
}

// ValidationError lists every rejected form field.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		messages = append(messages, field.Error())
	}
	return strings.Join(messages, " ")
}

// ValidateForm checks the `validate` tags of form and reports the failures
// in Portuguese, naming fields by their `label` tag.
func ValidateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return err
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(invalid))}
	for _, fieldErr := range invalid {
		out.Fields = append(out.Fields, FieldError{Field: fieldErr.Field(), Reason: reason(fieldErr)})
	}
	return out
}

func reason(fe validator.FieldError) string {
	isText := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "é obrigatório."
	case "max":
		if isText {
			return fmt.Sprintf("deve ter no máximo %s caracteres.", fe.Param())
		}
		return fmt.Sprintf("deve ser no máximo %s.", fe.Param())
	case "min":
		if isText {
			return fmt.Sprintf("deve ter pelo menos %s caracteres.", fe.Param())
		}
		return fmt.Sprintf("deve ser no mínimo %s.", fe.Param())
	case "gt":
		return fmt.Sprintf("deve ser maior que %s.", fe.Param())
	case "email":
		return "deve ser um e-mail válido."
	case "hexcolor":
		return "deve ser uma cor no formato #RRGGBB."
	case "datetime":
		return "deve ser uma data válida."
	case "timezone":
		return "deve ser um fuso horário válido, como America/Sao_Paulo."
	case "oneof":
		return "tem um valor inválido."
	case "nefield":
		return "deve ser diferente do outro time."
	default:
		return "é inválido."
	}
}
