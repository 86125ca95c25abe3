package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

const accountNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateSecureRandomString generates a cryptographically secure random
// string of the specified byte length, hex encoded. lengthInBytes=16 yields
// 128 bits of entropy as a 32-character string.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateAccountNumber produces a candidate account number of the form
// "ACC" followed by ten random alphanumeric characters. Uniqueness is not
// guaranteed here; callers must collision-check against the ledger store.
func GenerateAccountNumber() (string, error) {
	out := make([]byte, 10)
	max := big.NewInt(int64(len(accountNumberAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random index: %w", err)
		}
		out[i] = accountNumberAlphabet[n.Int64()]
	}
	return "ACC" + string(out), nil
}
