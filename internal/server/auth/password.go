// Package auth issues and verifies session tokens and checks passwords.
package auth

import (
	"errors"

	"github.com/dmitrijs2005/todoapp/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the user does not exist so that unknown
// users and wrong passwords cost the same.
const dummyHash = "$2a$10$vSTFgq9.JVG5I1AJ0olfLOk6dTIw32zhNuTyV9l.loHupYRmB3taq"

// HashPassword returns a bcrypt hash of password at the default cost.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckPassword compares password with a bcrypt hash. A mismatch is reported
// as common.ErrorUnauthorized; a corrupt hash as a wrapped bcrypt error.
func CheckPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return common.ErrorUnauthorized
	}
	return err
}

// BurnPasswordCheck runs a comparison whose result is discarded.
func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}
