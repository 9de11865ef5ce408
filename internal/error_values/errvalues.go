package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("user with such email already exists")
	ErrUserNotFound     = errors.New("user doesn't exist")
	ErrWrongCredentials = errors.New("wrong email or password")
	ErrInvalidToken     = errors.New("invalid token")
	// ErrHabitNotFound covers both a missing habit and a habit owned by
	// someone else, so a non-owner can't probe for existence.
	ErrHabitNotFound = errors.New("habit doesn't exist")
	ErrValidation    = errors.New("validation failed")
	ErrBadDate       = errors.New("invalid date value")
)
