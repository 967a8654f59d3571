package errors

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"
)

// MaxSVGSize is the largest document accepted for animation.
const MaxSVGSize = 10 << 20

// ValidateSVGInput performs cheap checks on raw document bytes before parsing.
//
// The checks are intentionally shallow:
//   - No empty input
//   - Maximum size of MaxSVGSize bytes
//   - The first non-space byte must open markup
func ValidateSVGInput(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return New(ErrCodeInvalidSVG, "document is empty")
	}

	if len(data) > MaxSVGSize {
		return New(ErrCodeTooLarge, "document too large (max %d bytes)", MaxSVGSize)
	}

	// Skip a UTF-8 byte order mark
	trimmed = bytes.TrimPrefix(trimmed, []byte("\xef\xbb\xbf"))
	if len(trimmed) == 0 || trimmed[0] != '<' {
		return New(ErrCodeInvalidSVG, "document does not start with markup")
	}

	return nil
}

// ValidateOutputName validates a file name used for writing output.
// It ensures the name is a simple basename without path components.
func ValidateOutputName(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidPath, "output filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidPath, "output filename cannot contain path separators")
	}

	if filename == "." || filename == ".." {
		return New(ErrCodeInvalidPath, "output filename cannot be %q", filename)
	}

	for _, r := range filename {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output filename contains invalid control characters")
		}
	}

	return nil
}

// keyframeIDRegex matches identifiers that keep a keyframes name a valid CSS ident.
var keyframeIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateKeyframeID validates a caller-supplied keyframe identifier.
func ValidateKeyframeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "keyframe id cannot be empty")
	}

	if !keyframeIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid keyframe id: %q", id)
	}

	return nil
}
