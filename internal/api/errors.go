package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/slack-taskbot/internal/redact"
)

// SanitizeValidationError turns validator output into a short message naming
// the offending fields.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag(), fe.Param())))
	}
	return strings.Join(parts, "; ")
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag, param string) string {
	switch tag {
	case "required":
		return "required field"
	case "startswith":
		return fmt.Sprintf("must start with %q", param)
	default:
		return "validation failed"
	}
}

// internalErrorMessage is the 500 body text for a failure after decoding.
func internalErrorMessage(err error) string {
	if msg := redact.Error(err); msg != "" {
		return msg
	}
	return "An unexpected error occurred"
}
