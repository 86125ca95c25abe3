package utils

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/corebank/banking-backend/internal/apperrors"
)

// HashPassword hashes a plaintext password using bcrypt. Each digest carries
// its own random salt and cost factor, so hashing is not deterministic; only
// CheckPassword can validate a digest. Empty passwords and passwords over
// bcrypt's 72-byte input limit map to apperrors.ErrValidation.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", apperrors.ErrValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password must be at most 72 bytes", apperrors.ErrValidation)
		}
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password with a stored bcrypt digest in
// constant time. A digest that bcrypt cannot parse maps to
// apperrors.ErrCorruptCredential; a mismatch maps to apperrors.ErrUnauthorized.
func CheckPassword(password, digest string) error {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return apperrors.ErrUnauthorized
	}
	return apperrors.ErrCorruptCredential
}
