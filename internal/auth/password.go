package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"art-auction/internal/auctionerrors"
)

const minPasswordLength = 8

// HashPassword validates and hashes a plaintext password with bcrypt. The
// original system stored plaintext passwords; nothing downstream may see one.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", auctionerrors.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a stored hash
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return auctionerrors.ErrInvalidCredentials
	}
	return nil
}
