package errors

import (
	"strings"
	"unicode"
)

// MaxInputBytes caps the size of source text accepted for compilation.
const MaxInputBytes = 64 * 1024

// ValidateInputText validates source text before it enters the compiler.
//
// The rules are intentionally conservative:
//   - No empty or whitespace-only input
//   - Maximum size of MaxInputBytes
//   - No null bytes
//
// Kind-specific parsing decides everything beyond these basics.
func ValidateInputText(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeInvalidInput, "input text cannot be empty")
	}

	if len(text) > MaxInputBytes {
		return New(ErrCodeInvalidInput, "input text too large (max %d bytes)", MaxInputBytes)
	}

	if strings.Contains(text, "\x00") {
		return New(ErrCodeInvalidInput, "input text contains null bytes")
	}

	return nil
}

// ValidateOutputPath validates a user-supplied output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	return nil
}

// ValidateDimensions validates an explicit canvas size override.
// Zero means "use the layout default" and is always accepted.
func ValidateDimensions(width, height int) error {
	const maxDimension = 20000
	if width < 0 || height < 0 {
		return New(ErrCodeInvalidSize, "canvas dimensions cannot be negative")
	}
	if width > maxDimension || height > maxDimension {
		return New(ErrCodeInvalidSize, "canvas dimensions too large (max %d)", maxDimension)
	}
	return nil
}
