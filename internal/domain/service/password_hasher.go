// Package service declares the stateless collaborators the use cases depend on:
// password hashing and identity tokens.
package service

// PasswordHasher turns plaintext passwords into storable digests. Only the
// first 72 bytes of a password are significant; Hash and Check truncate the
// same way, so a password always verifies against its own digest.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Check reports whether password matches hash. A malformed hash is a mismatch.
	Check(password, hash string) bool
}
