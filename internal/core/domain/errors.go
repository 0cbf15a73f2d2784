package domain

import "errors"

// Common domain errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)

// Account errors
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password does not meet policy")
)

// Password reset errors
var (
	ErrEmailNotRegistered = errors.New("email not registered")
	ErrNoResetRequested   = errors.New("no password reset requested")
	ErrResetCodeExpired   = errors.New("reset code expired")
	ErrResetCodeMismatch  = errors.New("reset code mismatch")
	ErrSamePassword       = errors.New("new password matches current password")
)

// Catalog errors
var (
	ErrBookNotFound    = errors.New("book not found")
	ErrLibraryNotFound = errors.New("library not found")
	ErrInvalidISBN     = errors.New("invalid ISBN-13")
	ErrDuplicateISBN   = errors.New("ISBN already registered")
	ErrBookHasLendings = errors.New("book is referenced by lending records")
)

// Lending errors
var (
	ErrAlreadyBorrowed = errors.New("book already borrowed by this student")
	ErrNoActiveBorrow  = errors.New("no active borrow for this book")
)
