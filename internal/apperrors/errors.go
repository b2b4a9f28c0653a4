package apperrors

import (
	"errors"
)

var (
	ErrEmailTaken       = errors.New("email already registered")
	ErrUserNotFound     = errors.New("user not found")
	ErrPasswordTooShort = errors.New("password is too short")

	// Returned for any credential failure: unknown email or wrong password.
	// Callers must not be able to tell which one happened.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenRevoked  = errors.New("refresh token is revoked")
	ErrRefreshTokenExpired  = errors.New("refresh token is expired")

	// Covers malformed, tampered and expired access tokens alike
	ErrInvalidAccessToken = errors.New("invalid access token")

	ErrProjectNotFound   = errors.New("project not found")
	ErrPortfolioNotFound = errors.New("portfolio not found")
	ErrMessageNotFound   = errors.New("contact message not found")
)
