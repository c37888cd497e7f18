package auth

import "errors"

// ErrNoEmptyString is returned when hashing an empty password.
var ErrNoEmptyString = errors.New("empty string not allowed")

// ErrMismatchedHashAndPassword is returned when a password does not match its hash.
var ErrMismatchedHashAndPassword = errors.New("mismatched hash and password")

// ErrTokenExpired is returned for tokens past their expiry.
var ErrTokenExpired = errors.New("token is expired")

// ErrTokenInvalid covers bad signatures, malformed tokens, and missing claims.
var ErrTokenInvalid = errors.New("token is invalid")

// ErrUnauthorized is the outcome the session middleware maps to a 401
// challenge: missing header, failed verification, or an unresolvable subject.
var ErrUnauthorized = errors.New("could not validate credentials")
