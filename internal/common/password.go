package common

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword turns a plaintext password into a salted bcrypt digest.
// The plaintext is never stored or logged; any non-empty string is accepted.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("empty password: %w", ErrInvalidArgument)
	}
	//default cost is 10, salt is generated per call and embedded in the digest
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword reports whether candidate matches the stored digest.
// bcrypt does the constant-time comparison; a missing digest or malformed
// input is a plain mismatch, never a panic.
func CheckPassword(candidate, digest string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(candidate)) == nil
}
