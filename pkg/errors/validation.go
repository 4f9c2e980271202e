package errors

import (
	"slices"
	"strings"
	"unicode"
)

// ValidateChoice checks that value is one of allowed.
// The comparison is case-insensitive; kind names the setting in the message.
func ValidateChoice(code Code, kind, value string, allowed []string) error {
	if slices.Contains(allowed, strings.ToLower(value)) {
		return nil
	}
	return New(code, "unsupported %s %q (must be one of: %s)", kind, value, strings.Join(allowed, ", "))
}

// ValidateInputText validates an input string supplied for tracing.
// It rejects control characters, which cannot be automaton symbols and
// would otherwise end up inside DOT labels.
//
// Validation rules:
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidateInputText(input string) error {
	const maxInputLength = 4096
	if len(input) > maxInputLength {
		return New(ErrCodeInvalidInput, "input too long (max %d characters)", maxInputLength)
	}

	for _, r := range input {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "input contains invalid control characters")
		}
	}
	return nil
}
