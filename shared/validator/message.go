package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

// messages maps validation tags to human readable templates. {field} and
// {param} are filled from the failing rule. Tags without a template fall back
// to the library's own wording.
var messages = map[string]string{
	"required": "{field} is required",
	"gt":       "{field} must be greater than {param}",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"oneof":    "{field} must be one of {param}",
	"max":      "{field} must be less than or equal to {param}",
	"min":      "{field} must be greater than or equal to {param}",
	"email":    "{field} must be a valid email address",
}

func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, valErr := range valErrors {
		if rendered := render(valErr); rendered != "" {
			return rendered
		}
	}

	return valErrors.Error()
}

func render(valErr val.FieldError) string {
	template, ok := messages[valErr.Tag()]
	if !ok {
		return ""
	}

	rendered := strings.ReplaceAll(template, "{field}", valErr.Field())

	return strings.ReplaceAll(rendered, "{param}", valErr.Param())
}
