package users

import "errors"

var (
	// ErrNotFound indicates the user does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrDuplicateUsername indicates the username is already registered.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrAuthenticationFailed covers both unknown users and wrong passwords.
	ErrAuthenticationFailed = errors.New("invalid username or password")

	// ErrInvalidInput indicates validation failed.
	ErrInvalidInput = errors.New("invalid input")
)
