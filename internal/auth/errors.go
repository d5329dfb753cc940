package auth

import "errors"

var (
	// ErrUnknownUser reports a login attempt for a name with no
	// registry entry.
	ErrUnknownUser = errors.New("auth: unknown user")
	// ErrInvalidCredentials reports a password mismatch for a known
	// user.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrReauthRequired is the single failure every protected operation
	// sees: token decode detail is deliberately collapsed so callers
	// (and attackers) cannot tell signature failures from expiry.
	ErrReauthRequired = errors.New("auth: reauthentication required")

	// Codec-level failures. Distinguishable to the authority because
	// they drive different client recovery paths (renew vs re-login);
	// never returned past the authority boundary.
	ErrSignatureInvalid = errors.New("auth: token signature invalid")
	ErrTokenExpired     = errors.New("auth: token expired")
)
