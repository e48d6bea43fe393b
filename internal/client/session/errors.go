package session

import "errors"

var (
	// ErrMalformedCredential means the token could not be decoded at all.
	ErrMalformedCredential = errors.New("malformed credential")

	// ErrExpiredCredential means the token decoded but its expiry has passed.
	ErrExpiredCredential = errors.New("credential expired")

	// ErrPersistenceFailure means the credential could not be durably stored;
	// login/register abort and the session stays anonymous.
	ErrPersistenceFailure = errors.New("credential persistence unavailable")
)
