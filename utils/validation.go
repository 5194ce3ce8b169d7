// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

// ValidateEmail checks the basic shape of an email address
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateLanguage checks for a 2-letter ISO 639-1 code with an
// optional region suffix, e.g. "en", "sw", "pt-BR"
func ValidateLanguage(code string) bool {
	match, _ := regexp.MatchString(`^[a-z]{2}(-[A-Z]{2})?$`, code)
	return match
}
