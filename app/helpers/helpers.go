package helpers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rakhulsr/go-cosmetics/app/logger"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	ContextKeyUserID contextKey = "userID"
	ContextKeyClaims contextKey = "claims"
)

var Validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs the validate tags on v and returns a field -> message
// map when any fail.
func ValidateStruct(v interface{}) (map[string]string, error) {
	err := Validate.Struct(v)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return FormatValidationErrors(verrs), err
	}
	return nil, err
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := toSnake(err.Field())
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required.", field)
		case "email":
			errorMessages[field] = fmt.Sprintf("%s must be a valid email address.", field)
		case "numeric":
			errorMessages[field] = fmt.Sprintf("%s must be a number.", field)
		case "min", "gte":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s.", field, err.Param())
		case "max", "lte":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s.", field, err.Param())
		case "oneof":
			errorMessages[field] = fmt.Sprintf("%s must be one of: %s.", field, err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("%s failed %s validation.", field, err.Tag())
		}
	}
	return errorMessages
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func PasswordCompare(hashPass string, password []byte) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashPass), password)
	if err != nil {
		logger.Debug("PasswordCompare: password does not match", "error", err)
		return false
	}
	return true
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}
