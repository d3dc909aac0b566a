// Package validation provides input validation rules for registration.
package validation

import (
	"fmt"
	"regexp"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// ValidateUsername checks if a username meets requirements.
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}
	if len(username) > 20 {
		return fmt.Errorf("username must not exceed 20 characters")
	}
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("username can only contain letters and numbers")
	}
	return nil
}

// ValidatePassword checks if a password meets minimal requirements.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}
	return nil
}
