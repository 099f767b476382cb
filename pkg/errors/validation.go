package errors

import (
	"strings"
	"unicode"
)

const (
	maxTitleLength = 200
	maxIDLength    = 128
)

// ValidateTitle validates a board or project title.
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only titles
//   - No control characters
//   - Maximum length of 200 characters
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return New(ErrCodeInvalidInput, "title cannot be empty")
	}
	if len(title) > maxTitleLength {
		return New(ErrCodeInvalidInput, "title too long (max %d characters)", maxTitleLength)
	}
	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "title contains invalid control characters")
		}
	}
	return nil
}

// ValidateID validates an opaque identifier used as a storage key or URL
// segment. It rejects anything that could escape a directory or key prefix.
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "id too long (max %d characters)", maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "id contains invalid characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
		":",    // Key namespace separator
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "id contains invalid characters: %q", pattern)
		}
	}
	return nil
}

// ValidateImageRef validates an image reference before it is stored on a
// note. References are opaque to the workspace; only the envelope is checked:
// a data URL or an http(s) URL.
func ValidateImageRef(ref string) error {
	if ref == "" {
		return New(ErrCodeInvalidNote, "image reference cannot be empty")
	}
	if strings.HasPrefix(ref, "data:") {
		if !strings.Contains(ref, ";base64,") {
			return New(ErrCodeInvalidNote, "data URL must be base64 encoded")
		}
		return nil
	}
	return ValidateURL(ref)
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
