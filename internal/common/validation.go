package common

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRegex  = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	handleRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

const (
	maxBioLen     = 255
	maxContentLen = 1024
)

func ValidateHandle(handle string) error {
	handle = strings.TrimSpace(handle)
	if len(handle) < 3 || len(handle) > 64 {
		return fmt.Errorf("handle must be between 3 and 64 characters: %w", ErrInvalidArgument)
	}

	if !handleRegex.MatchString(handle) {
		return fmt.Errorf("handle can only contain letters, numbers, and underscores: %w", ErrInvalidArgument)
	}

	return nil
}

func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("email is required: %w", ErrInvalidArgument)
	}
	if len(email) > 120 || !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %w", ErrInvalidArgument)
	}

	return nil
}

// ValidatePassword accepts any non-empty password. bcrypt rejects input over
// 72 bytes, so that bound is checked up front.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required: %w", ErrInvalidArgument)
	}
	if len(password) > 72 {
		return fmt.Errorf("password is too long: %w", ErrInvalidArgument)
	}

	return nil
}

func ValidateBio(bio string) error {
	if len(bio) > maxBioLen {
		return fmt.Errorf("bio must be at most %d characters: %w", maxBioLen, ErrInvalidArgument)
	}
	return nil
}

func ValidateContent(content string) error {
	if content == "" {
		return fmt.Errorf("message content cannot be empty: %w", ErrInvalidArgument)
	}
	if len(content) > maxContentLen {
		return fmt.Errorf("message content must be at most %d characters: %w", maxContentLen, ErrInvalidArgument)
	}
	return nil
}
