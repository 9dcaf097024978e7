// Package validation provides custom validation rules for catalog fields.
package validation

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/librarian/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace.
// Unlike the built-in string rules it also rejects the empty string.
var NotBlank = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_not_blank_type", "must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_not_blank", "must not be blank")
	}
	return nil
})

// MinTrimmedLength validates that a string holds at least min characters once
// leading and trailing whitespace is removed.
func MinTrimmedLength(min int) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return validation.NewError("validation_min_trimmed_length_type", "must be a string")
		}
		if utf8.RuneCountInString(strings.TrimSpace(s)) < min {
			return validation.NewError(
				"validation_min_trimmed_length",
				"must contain at least "+strconv.Itoa(min)+" characters",
			)
		}
		return nil
	})
}

// Positive validates that an integer is strictly greater than zero.
// Zero is rejected, which the built-in Min rule lets through as an empty value.
var Positive = validation.By(func(value interface{}) error {
	n, ok := value.(int)
	if !ok {
		return validation.NewError("validation_positive_type", "must be an integer")
	}
	if n <= 0 {
		return validation.NewError("validation_positive", "must be a positive non-zero integer")
	}
	return nil
})

// Letters validates that a string consists only of letters.
var Letters = validation.NewStringRuleWithError(
	func(s string) bool {
		for _, r := range s {
			if !unicode.IsLetter(r) {
				return false
			}
		}
		return true
	},
	validation.NewError("validation_letters", "must contain only letters"),
)

// Digits validates that a string consists only of ASCII digits.
var Digits = validation.NewStringRuleWithError(
	func(s string) bool {
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	},
	validation.NewError("validation_digits", "must contain only digits"),
)
