package auth

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

const (
	passwordMinLength = 8
	passwordMaxLength = 128

	passwordSymbols = `()[]{}|\` + "`" + `~!@#$%^&*_-+=;:'",<>./?`
)

// passwordRule checks one independent strength requirement and returns a
// distinct failure reason.
type passwordRule func(password string) string

var passwordRules = []passwordRule{
	func(password string) string {
		if len(password) < passwordMinLength {
			return fmt.Sprintf("password must contain at least %d characters", passwordMinLength)
		}
		return ""
	},
	func(password string) string {
		if len(password) > passwordMaxLength {
			return fmt.Sprintf("password must contain at most %d characters", passwordMaxLength)
		}
		return ""
	},
	func(password string) string {
		if !strings.ContainsFunc(password, unicode.IsUpper) {
			return "password must contain at least 1 uppercase letter"
		}
		return ""
	},
	func(password string) string {
		if !strings.ContainsFunc(password, unicode.IsLower) {
			return "password must contain at least 1 lowercase letter"
		}
		return ""
	},
	func(password string) string {
		if !strings.ContainsFunc(password, unicode.IsDigit) {
			return "password must contain at least 1 digit"
		}
		return ""
	},
	func(password string) string {
		if !strings.ContainsAny(password, passwordSymbols) {
			return "password must contain at least 1 special character"
		}
		return ""
	},
}

// ValidatePasswordStrength runs every rule and collects all violations so
// the caller can report them together.
func ValidatePasswordStrength(password string) []string {
	var violations []string
	for _, rule := range passwordRules {
		if reason := rule(password); reason != "" {
			violations = append(violations, reason)
		}
	}
	return violations
}
