package handlers

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Request-shape validation, applied before any service call. Services
// still re-check business invariants that need store access (status enum,
// assignee existence).

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}
	if utf8.RuneCountInString(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	if !nonAlphanumeric.MatchString(password) {
		return errors.New("password must contain at least one special character")
	}
	return nil
}

func validateName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < 3 {
		return errors.New("name must be at least 3 characters long")
	}
	return nil
}
