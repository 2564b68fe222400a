package auth

import "errors"

var (
	// ErrInvalidCredentials covers bad username/password pairs.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers malformed, forged and expired tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrWrongTokenType is returned when a refresh token is presented
	// where an access token is required, or vice versa.
	ErrWrongTokenType = errors.New("wrong token type")
)
