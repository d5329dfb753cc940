package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// VerifyPassword compares a plaintext password with a stored hash. The
// comparison is constant time per the bcrypt contract.
func VerifyPassword(hash []byte, password string) error {
	if len(hash) == 0 {
		return errors.New("auth: password hash is empty")
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password))
}
