// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"

	"tasker/config"
	domainerrors "tasker/internal/domain/errors"
	"tasker/internal/domain/service"
	"tasker/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is bcrypt's input ceiling. Longer passwords are truncated,
// so two passwords sharing their first 72 bytes produce matching digests.
const MaxPasswordBytes = 72

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher builds the hasher with the deployment-wide cost factor.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth != nil {
		cost = cfg.Auth.BcryptCost
	}

	return NewBcryptHasherWithCost(cost)
}

// NewBcryptHasherWithCost returns a hasher using the given cost, falling back
// to bcrypt.DefaultCost when it is outside bcrypt's accepted range.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(truncatePassword(password)), h.cost)
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash, applying the same
// truncation as Hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(truncatePassword(password)))

	return err == nil
}

// truncatePassword cuts the password at MaxPasswordBytes and drops any byte
// sequence that is no longer valid UTF-8, such as a rune split by the cut.
func truncatePassword(password string) string {
	if len(password) <= MaxPasswordBytes {
		return password
	}

	return strings.ToValidUTF8(password[:MaxPasswordBytes], "")
}
