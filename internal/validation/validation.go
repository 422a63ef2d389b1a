package validation

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sbilibin2017/gw-blog/internal/models"
)

// AllowedImageExtensions are the picture extensions accepted on upload.
var AllowedImageExtensions = []string{"jpg", "png"}

// Validator checks form structs and reports errors per form field.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator. Field errors are keyed by the `form` tag of the struct field.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("imageext", func(fl validator.FieldLevel) bool {
		return IsAllowedImage(fl.Field().String())
	})
	return &Validator{validate: v}
}

// IsAllowedImage reports whether filename has one of the allowed picture extensions.
func IsAllowedImage(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	for _, allowed := range AllowedImageExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Validate returns nil when form is valid, otherwise the first error of every invalid field.
func (v *Validator) Validate(form any) models.FormErrors {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return models.FormErrors{"": err.Error()}
	}

	formType := reflect.TypeOf(form)
	result := make(models.FormErrors, len(verrs))
	for _, fe := range verrs {
		if _, ok := result[fe.Field()]; ok {
			continue
		}
		result[fe.Field()] = message(formType, fe)
	}
	return result
}

func message(formType reflect.Type, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min", "max":
		return lengthMessage(formType, fe)
	case "email":
		return "Invalid email address."
	case "eqfield":
		return fmt.Sprintf("Field must be equal to %s.", strings.ToLower(fe.Param()))
	case "imageext":
		return fmt.Sprintf("File does not have an approved extension: %s", strings.Join(AllowedImageExtensions, ", "))
	default:
		return "Invalid value."
	}
}

func lengthMessage(formType reflect.Type, fe validator.FieldError) string {
	if lo, hi, ok := lengthBounds(formType, fe.StructField()); ok {
		return fmt.Sprintf("Field must be between %s and %s characters long.", lo, hi)
	}
	if fe.Tag() == "min" {
		return fmt.Sprintf("Field must be at least %s characters long.", fe.Param())
	}
	return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
}

// lengthBounds reads both min and max from the validate tag of the named field.
func lengthBounds(formType reflect.Type, fieldName string) (lo, hi string, ok bool) {
	for formType.Kind() == reflect.Pointer {
		formType = formType.Elem()
	}
	field, found := formType.FieldByName(fieldName)
	if !found {
		return "", "", false
	}
	for _, rule := range strings.Split(field.Tag.Get("validate"), ",") {
		name, param, _ := strings.Cut(rule, "=")
		switch name {
		case "min":
			lo = param
		case "max":
			hi = param
		}
	}
	return lo, hi, lo != "" && hi != ""
}
