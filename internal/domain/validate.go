package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validatorInstance is a package-level validator instance.
// Using a single instance is more efficient as it caches struct information.
var validatorInstance = validator.New()

func init() {
	// Report JSON field names in validation errors so messages match the wire format.
	validatorInstance.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = validatorInstance.RegisterValidation("nonblank", validateNonBlank)
}

// validateNonBlank rejects values made only of whitespace. A browser
// "required" input still accepts "   ".
func validateNonBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Validate checks v against its struct tags and converts any failure into a
// Validation error naming the offending fields.
func Validate(v any) error {
	err := validatorInstance.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return NewError(KindValidation, 0, err.Error(), err)
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fieldPath(fe.Namespace()))
	}
	msg := fmt.Sprintf("Please fill in the required fields: %s.", strings.Join(fields, ", "))
	return NewError(KindValidation, 0, msg, err)
}

// fieldPath strips the root struct name from a validator namespace, e.g.
// "CreateSignatureRequest.template_data.name" becomes "template_data.name".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
