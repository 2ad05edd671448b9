package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// presetNameRegex matches preset names accepted from untrusted input.
var presetNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// ValidatePresetName validates a preset name coming from a URL or flag.
// Names are lower-case identifiers; lookup of the actual preset happens
// elsewhere.
func ValidatePresetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPreset, "preset name cannot be empty")
	}
	if !presetNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPreset, "invalid preset name: %q", name)
	}
	return nil
}

// ValidatePath validates an input or output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
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

// ValidateFormats checks every requested format against the allowed set.
func ValidateFormats(formats []string, allowed map[string]bool) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "at least one output format is required")
	}
	for _, f := range formats {
		if !allowed[strings.TrimSpace(f)] {
			return New(ErrCodeInvalidFormat, "unsupported format: %q", f)
		}
	}
	return nil
}
