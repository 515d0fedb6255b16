package validation

import (
	"regexp"
	"strings"
)

const (
	MinPasswordLength = 6
	MinNameLength     = 2
	MaxNameLength     = 64
	MinPhoneDigits    = 10
	MinAge            = 1
	MaxAge            = 150
)

var (
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigitRegex = regexp.MustCompile(`\D`)
)

// IsValidEmail checks the general shape of an email address.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// IsValidPhone checks that the phone number carries at least ten digits.
func IsValidPhone(phone string) bool {
	return len(NormalizePhone(phone)) >= MinPhoneDigits
}

// IsValidPassword checks the minimum password length.
func IsValidPassword(password string) bool {
	return len(password) >= MinPasswordLength
}

// IsValidRole reports whether role is one of the known roles.
func IsValidRole(role string) bool {
	switch role {
	case "user", "moderator", "admin":
		return true
	}
	return false
}

// IsValidName checks the trimmed display name length.
func IsValidName(name string) bool {
	n := len(strings.TrimSpace(name))
	return n >= MinNameLength && n <= MaxNameLength
}

// IsValidAge checks that age is in a plausible range.
func IsValidAge(age int) bool {
	return age >= MinAge && age <= MaxAge
}

// NormalizeEmail lowercases and trims an email for case-insensitive
// comparison and index keys.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone strips every non-digit character.
func NormalizePhone(phone string) string {
	return nonDigitRegex.ReplaceAllString(phone, "")
}
