package middleware

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	apierrors "meetingmind/internal/api/errors"
)

// Validator interface for domain validation
type Validator interface {
	Validate() error
}

var registerTagNames sync.Once

// UseJSONFieldNames makes validation errors report json tag names instead of Go field names
func UseJSONFieldNames() {
	registerTagNames.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(field reflect.StructField) string {
				for _, tag := range []string{"json", "form"} {
					name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
					if name == "-" {
						return ""
					}
					if name != "" {
						return name
					}
				}
				return field.Name
			})
		}
	})
}

// ValidateRequest validates both struct tags and domain rules
func ValidateRequest(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return validationError(err, "request", "invalid JSON format")
	}
	return validateDomain(req)
}

// ValidateQuery validates query parameters
func ValidateQuery(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return validationError(err, "query", "invalid query parameters")
	}
	return validateDomain(req)
}

// ValidateForm validates multipart or urlencoded form fields
func ValidateForm(c *gin.Context, req interface{}) error {
	if err := c.ShouldBind(req); err != nil {
		return validationError(err, "form", "invalid form data")
	}
	return validateDomain(req)
}

func validateDomain(req interface{}) error {
	if v, ok := req.(Validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func validationError(err error, fallbackField, fallbackMessage string) error {
	fields := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldError := range validationErrs {
			fields[fieldError.Field()] = describe(fieldError)
		}
	} else {
		fields[fallbackField] = fallbackMessage
	}

	return apierrors.NewValidationError("Validation failed", fields)
}

func describe(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min", "gte":
		return "is too short"
	case "max", "lte":
		return "is too long"
	case "oneof":
		return "must be one of: " + fieldError.Param()
	case "uuid", "uuid4":
		return "must be a valid id"
	case "hexcolor":
		return "must be a hex colour"
	case "gtefield":
		return "must not be less than " + fieldError.Param()
	default:
		return "is invalid"
	}
}
