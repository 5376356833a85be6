// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"

	apperrors "github.com/Synnly/gestion-projet-m2-sub003/internal/errors"
)

// MaxFilenameLength bounds client-supplied filenames.
const MaxFilenameLength = 255

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// Filename validates a bare client filename: no path separators, no control
// characters and an extension after the last dot.
var Filename = validation.NewStringRuleWithError(
	func(s string) bool {
		if len(s) > MaxFilenameLength || strings.ContainsAny(s, `/\`) {
			return false
		}
		for _, r := range s {
			if unicode.IsControl(r) {
				return false
			}
		}
		dot := strings.LastIndex(s, ".")
		return dot >= 0 && dot < len(s)-1
	},
	validation.NewError("validation_filename", "must be a file name with an extension and no path"),
)
