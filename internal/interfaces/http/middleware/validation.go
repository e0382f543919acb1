package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/SiteOrganizo/organize-your-catalog/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator makes gin's validator report fields by their json, form
// or uri name
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form", "uri"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return ""
	})
}

// FormatValidationErrors turns a binding failure into a VALIDATION_ERROR
// response. Field rule violations and JSON type mismatches become details;
// a body that is not JSON at all gets its own message.
func FormatValidationErrors(err error, requestID string) dto.Response {
	var (
		fieldErrs validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)

	switch {
	case errors.As(err, &fieldErrs):
		details := make([]dto.ValidationDetail, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, dto.ValidationDetail{Field: fe.Field(), Message: validationMessage(fe)})
		}
		return dto.NewValidationErrorResponse("Request validation failed", requestID, details)

	case errors.As(err, &typeErr):
		return dto.NewValidationErrorResponse("Request validation failed", requestID, []dto.ValidationDetail{{
			Field:   typeErr.Field,
			Message: "Must be of type " + typeErr.Type.String(),
		}})

	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return dto.NewValidationErrorResponse("Malformed JSON body", requestID, nil)
	}

	return dto.NewValidationErrorResponse("Request validation failed", requestID, nil)
}

// HandleValidationError writes a 400 for a binding failure
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, GetRequestID(c)))
}

// Messages by tag. A "%" is replaced with the tag parameter.
var validationMessages = map[string]string{
	"required": "This field is required",
	"email":    "Invalid email format",
	"len":      "Must be exactly % characters",
	"uuid":     "Invalid UUID format",
	"oneof":    "Must be one of: %",
	"gte":      "Must be greater than or equal to %",
	"lte":      "Must be less than or equal to %",
	"gt":       "Must be greater than %",
	"lt":       "Must be less than %",
	"url":      "Invalid URL format",
	"hexcolor": "Must be a hex color such as #1a2b3c",
	"numeric":  "Must be numeric",
	"alphanum": "Must be alphanumeric",
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min", "max":
		bound := "at least "
		if fe.Tag() == "max" {
			bound = "at most "
		}
		switch fe.Kind() {
		case reflect.String:
			return "Must be " + bound + fe.Param() + " characters"
		case reflect.Slice, reflect.Array, reflect.Map:
			return "Must have " + bound + fe.Param() + " items"
		}
		return "Must be " + bound + fe.Param()
	}

	if msg, ok := validationMessages[fe.Tag()]; ok {
		return strings.ReplaceAll(msg, "%", fe.Param())
	}
	return "Invalid value"
}
