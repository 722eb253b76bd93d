package models

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError reports a malformed or missing request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidPhone reports whether phone holds 10 to 15 digits, optionally prefixed by +.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func required(fields ...[2]string) error {
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			return invalid(f[0], "is required")
		}
	}
	return nil
}
