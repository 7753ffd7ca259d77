// Package auth implements the credential side of the account domain:
// bcrypt password hashing, bearer token issuance and verification, and the
// Gin middleware that guards authenticated routes. Services treat this
// package as the identity-provider boundary and never touch raw hashes
// or token internals themselves.
package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a bcrypt hash from a raw password at the default cost.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPassword reports whether pw matches the stored bcrypt hash.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
