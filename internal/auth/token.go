package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"twtr.dev/backend/internal/ids"
)

// TokenClass distinguishes the two token kinds minted for every session.
type TokenClass string

const (
	// ClassAccess is the short-lived per-request credential.
	ClassAccess TokenClass = "access"
	// ClassRefresh is the long-lived credential used only to mint new
	// pairs.
	ClassRefresh TokenClass = "refresh"
)

// Claims is the signed token payload: registered sub/iat/exp/jti plus an
// explicit token class. The class tag makes cross-class use (a refresh
// token presented where an access token is expected, or vice versa) a
// decode failure.
type Claims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// EncodeToken mints a signed HS256 token for the given subject id.
// Tokens are stateless: validity is fully determined by the signature
// and the embedded expiry, never by server-side session state.
func EncodeToken(subject int, class TokenClass, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		TokenType: string(class),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(subject),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        ids.New(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// DecodeToken verifies signature and expiry and returns the subject id.
// Failures are distinguishable: ErrTokenExpired for a well-signed but
// stale token, ErrSignatureInvalid for everything else (tampering, a
// wrong key, a malformed token, or the wrong token class).
func DecodeToken(raw string, class TokenClass, secret []byte) (int, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrSignatureInvalid
	}
	if !parsed.Valid || claims.TokenType != string(class) {
		return 0, ErrSignatureInvalid
	}
	subject, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, ErrSignatureInvalid
	}
	return subject, nil
}
