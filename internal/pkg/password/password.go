package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the salt length in bytes
	SaltSize = 16

	// KeySize is the derived key length in bytes
	KeySize = 32

	// DefaultIterations is the default PBKDF2 iteration count
	DefaultIterations = 100_000
)

// Hash derives a PBKDF2-HMAC-SHA256 key from the password with a fresh
// random salt and encodes it as "iterations.salt.key" (salt and key base64).
// The iteration count travels inside the hash, so raising DefaultIterations
// later does not invalidate stored hashes.
func Hash(password string) (string, error) {
	return HashWithIterations(password, DefaultIterations)
}

// HashWithIterations hashes a password with an explicit iteration count
func HashWithIterations(password string, iterations int) (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, KeySize, sha256.New)

	return fmt.Sprintf("%d.%s.%s",
		iterations,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(key),
	), nil
}

// Verify compares a candidate password against an encoded hash.
// Malformed hashes (wrong field count, bad iteration count, invalid base64)
// verify as false; it never panics. The key comparison is constant-time.
func Verify(encodedHash, candidate string) bool {
	parts := strings.Split(encodedHash, ".")
	if len(parts) != 3 {
		return false
	}

	iterations, err := strconv.Atoi(parts[0])
	if err != nil || iterations <= 0 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	key, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil || len(key) == 0 {
		return false
	}

	candidateKey := pbkdf2.Key([]byte(candidate), salt, iterations, len(key), sha256.New)

	return subtle.ConstantTimeCompare(candidateKey, key) == 1
}

// ValidatePolicy checks if password meets requirements:
// minimum 8 characters with at least one upper-case letter, one lower-case
// letter and one digit.
func ValidatePolicy(password string) bool {
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	return hasUpper && hasLower && hasDigit
}
