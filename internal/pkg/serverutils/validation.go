package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"realestate-buyer-be/internal/constant"
)

var validate = validator.New()

// ValidateRequest checks the struct's validate tags and folds every
// violation into a single ApiError with code VALIDATION_ERROR.
func ValidateRequest(req interface{}) *ApiError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return NewApiError(constant.ErrCodeValidation, err.Error())
	}

	messages := make([]string, 0, len(violations))
	for _, v := range violations {
		messages = append(messages, fmt.Sprintf("%s failed on %s", strings.ToLower(v.Field()), v.Tag()))
	}
	return NewApiError(constant.ErrCodeValidation, strings.Join(messages, "; "))
}
