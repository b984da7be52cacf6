// Package password wraps bcrypt hashing and verification for stored
// credentials. Both functions are pure over their inputs.
package password

import "golang.org/x/crypto/bcrypt"

// Hash returns a salted, one-way bcrypt hash of the plaintext. The result is
// never reversible and differs between calls for the same input.
func Hash(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether plaintext matches the stored hash. bcrypt's
// comparison is constant-time over the derived key, so the result does not
// leak the position of the first mismatched byte.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
