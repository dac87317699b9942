// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Sentinels for the session refresh path; callers match with errors.Is.
var (
	// ErrNoSession indicates no refresh token is stored locally.
	ErrNoSession = errors.New("no session")

	// ErrRefreshFailed indicates the token refresh round-trip failed and the session was cleared.
	ErrRefreshFailed = errors.New("refresh failed")
)
