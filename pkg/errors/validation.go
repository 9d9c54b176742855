package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxIDLength bounds template, node and level identifiers.
const maxIDLength = 128

// idRegex matches identifiers accepted in level assets. UUIDs, slugs and
// dotted names all pass.
var idRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]*$`)

// ValidateID validates a template, node or level identifier.
//
// The rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or whitespace
//   - Maximum length of 128 characters
//   - Must start with a letter or digit
func ValidateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s id cannot be empty", kind)
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "%s id too long (max %d characters)", kind, maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "%s id %q contains invalid characters", kind, id)
		}
	}
	if !idRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid %s id: %q", kind, id)
	}
	return nil
}

// ValidateLevelName validates a level name used in URLs and file names.
// It rejects names that could be used for path traversal.
func ValidateLevelName(name string) error {
	if err := ValidateID("level", name); err != nil {
		return err
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "level name cannot contain path traversal sequences (..)")
	}
	return nil
}
