// Package crypto implements server-side password hashing and verification.
package crypto

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the adaptive work factor. DefaultCost keeps hashing slow
// enough to resist offline brute force on current hardware.
const bcryptCost = bcrypt.DefaultCost

// HashPassword returns the bcrypt hash of password with a random salt.
// It fails only on internal failure, never on well-formed input.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
// A mismatch returns false, never an error.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
