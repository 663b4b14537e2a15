package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("S3cret!pw", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "S3cret!pw", hash)

	assert.NoError(t, ComparePassword(hash, "S3cret!pw"))
	assert.Error(t, ComparePassword(hash, "s3cret!pw"))
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		violations int
	}{
		{"meets every rule", "Abcdef1!", 0},
		{"symbol from the extended set", `Abcdef1\`, 0},
		{"too short", "Ab1!", 1},
		{"too long", "Ab1!" + strings.Repeat("x", 125), 1},
		{"missing uppercase", "abcdef1!", 1},
		{"missing lowercase", "ABCDEF1!", 1},
		{"missing digit", "Abcdefg!", 1},
		{"missing symbol", "Abcdefg1", 1},
		{"everything wrong at once", "       ", 5},
		{"empty", "", 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			violations := ValidatePasswordStrength(tc.password)
			assert.Len(t, violations, tc.violations)
		})
	}
}

func TestValidatePasswordStrengthCollectsAllViolations(t *testing.T) {
	violations := ValidatePasswordStrength("abc")

	require.Len(t, violations, 4)
	joined := strings.Join(violations, "; ")
	assert.Contains(t, joined, "at least 8 characters")
	assert.Contains(t, joined, "uppercase")
	assert.Contains(t, joined, "digit")
	assert.Contains(t, joined, "special character")
}
