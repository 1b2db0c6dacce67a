// Package validator checks uploaded file types and turns request binding
// failures into readable messages.
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ncobase/taskmanager/ecode"
)

// FieldError is one failed constraint of a request body.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// Message summarizes err for a 400 body and returns per-field details when
// err comes from validator.
func Message(err error) (string, []FieldError) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			name := lowerFirst(fe.Field())
			fields = append(fields, FieldError{Field: name, Rule: fe.Tag()})
			parts = append(parts, describe(name, fe))
		}
		return strings.Join(parts, "; "), fields
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return ecode.FieldIsInvalid(typeErr.Field), nil
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return "malformed JSON body", nil
	}
	return err.Error(), nil
}

func describe(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return ecode.FieldIsRequired(name)
	case "email":
		return fmt.Sprintf("%s must be a valid email", name)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", name, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	default:
		return ecode.FieldIsInvalid(name)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
