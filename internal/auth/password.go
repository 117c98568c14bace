package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor. Cost 12 takes roughly 250ms on
// current server hardware — negligible for a sign-in, expensive for a
// brute-force attacker.
const defaultCost = 12

// PasswordService provides bcrypt hashing and verification. The cost is a
// field (rather than a package constant used directly) so tests can inject
// a cheap cost and skip the ~250ms per hash.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the default cost.
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceForTest creates a PasswordService with a custom (low)
// cost. Do not use in production.
func NewPasswordServiceForTest(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash hashes a plaintext password. The output embeds the salt and cost,
// so it can be stored directly in the users table.
func (s *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) == 0 {
		return "", errors.New("auth: password must not be empty")
	}
	// bcrypt silently truncates inputs over 72 bytes; reject instead.
	if len(plaintext) > 72 {
		return "", errors.New("auth: password must be at most 72 bytes")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether the plaintext matches the stored hash.
// A mismatch is a normal outcome, not an error — errors are reserved for
// malformed hashes.
func (s *PasswordService) Verify(hash, plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("auth: verifying password: %w", err)
}
