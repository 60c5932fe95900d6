package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	logx "hngpack/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ValidationIssue describes one problem with a request body.
type ValidationIssue struct {
	Type string   `json:"type"`
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
}

// ValidationError is rendered as 422 Unprocessable Entity.
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", e.Issues[0].Msg)
}

// ErrorHandler renders every error as {"detail": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": verr.Issues,
		})
	}

	code := fiber.StatusInternalServerError
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		code = ferr.Code
	}
	if code >= fiber.StatusInternalServerError {
		logx.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(code).JSON(fiber.Map{
		"detail": err.Error(),
	})
}

// bodyError converts a body decoding failure into a ValidationError.
func bodyError(err error) *ValidationError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		loc := []string{"body"}
		if typeErr.Field != "" {
			loc = append(loc, typeErr.Field)
		}
		return &ValidationError{Issues: []ValidationIssue{{
			Type: "type_error",
			Loc:  loc,
			Msg:  fmt.Sprintf("Input should be a valid %s", jsonTypeName(typeErr.Type)),
		}}}
	}
	return &ValidationError{Issues: []ValidationIssue{{
		Type: "json_invalid",
		Loc:  []string{"body"},
		Msg:  err.Error(),
	}}}
}

// jsonTypeName names the JSON type a Go type decodes from.
func jsonTypeName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Map, reflect.Struct:
		return "dictionary"
	case reflect.Slice, reflect.Array:
		return "list"
	default:
		return "value"
	}
}

// validationError converts validator failures into a ValidationError.
func validationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	issues := make([]ValidationIssue, 0, len(errs))
	for _, e := range errs {
		issue := ValidationIssue{Loc: []string{"body", e.Field()}}
		switch e.Tag() {
		case "required":
			issue.Type, issue.Msg = "missing", "Field required"
		case "gte":
			issue.Type, issue.Msg = "greater_than_equal", fmt.Sprintf("Input should be greater than or equal to %s", e.Param())
		default:
			issue.Type, issue.Msg = e.Tag(), fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		issues = append(issues, issue)
	}
	return &ValidationError{Issues: issues}
}
