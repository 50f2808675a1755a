package errors

import (
	"strings"
	"unicode"
)

// ValidateInputPath validates a vertex file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidateInputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "input path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateWorkers checks a worker count. Zero selects the default.
func ValidateWorkers(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidOption, "workers must be >= 0, got %d", n)
	}
	const maxWorkers = 1024
	if n > maxWorkers {
		return New(ErrCodeInvalidOption, "workers must be <= %d, got %d", maxWorkers, n)
	}
	return nil
}

// ValidateChoice checks that value is one of allowed, case-insensitively.
// The field name is used in the error message.
func ValidateChoice(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return New(ErrCodeInvalidOption, "invalid %s: %q (must be one of: %s)", field, value, strings.Join(allowed, ", "))
}
