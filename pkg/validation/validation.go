package validation

import (
	"regexp"
	"strings"
)

var (
	emailRegex       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	airportCodeRegex = regexp.MustCompile(`^[A-Za-z]{3}$`)
)

// IsValidEmail validates email format
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidAirportCode accepts three-letter IATA codes in any case
func IsValidAirportCode(code string) bool {
	return airportCodeRegex.MatchString(strings.TrimSpace(code))
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}
