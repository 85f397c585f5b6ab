package user

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")

	// ErrUserNotActive gates attendance actions until onboarding is approved.
	ErrUserNotActive = errors.New("user account is not active")
)
