package domain

import "errors"

// Authentication and authorization outcomes. These are the only error values
// the auth subsystem surfaces; internal detail (signature diagnostics,
// user-not-found vs wrong-password) is never exposed past this taxonomy.
var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password, deliberately indistinguishable to prevent enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	// ErrInvalidRegistration rejects registration input that fails domain
	// rules, such as a role outside the fixed enumeration.
	ErrInvalidRegistration = errors.New("invalid registration details")

	ErrMalformedToken = errors.New("malformed token")
	ErrExpiredToken   = errors.New("token expired")

	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access forbidden")
)

// Storage outcomes.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailTaken       = errors.New("email already taken")
	ErrAlreadySeeded    = errors.New("employees already present")
)
