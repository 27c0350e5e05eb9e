package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor applied when no cost is configured.
const DefaultBcryptCost = 10

// Hasher hashes and verifies plaintext secrets with a fixed work factor.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher. Costs outside bcrypt's supported range fall
// back to DefaultBcryptCost.
func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return Hasher{cost: cost}
}

var _ PasswordAuthenticator = Hasher{}

// HashPassword will generate a password hash
func (h Hasher) HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(digest), err
}

// ComparePasswordAndHash will validate the given cleartext password matches
// the hashed password. Malformed digests report a mismatch, never a panic.
func (h Hasher) ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		// Mismatches and malformed digests report the same failure so the
		// caller cannot tell them apart.
		return ErrMismatchedHashAndPassword
	}
	return nil
}

// HashPassword hashes with the default work factor.
func HashPassword(password string) (string, error) {
	return NewHasher(DefaultBcryptCost).HashPassword(password)
}

// ComparePasswordAndHash verifies against the default Hasher.
func ComparePasswordAndHash(password, hash string) error {
	return NewHasher(DefaultBcryptCost).ComparePasswordAndHash(password, hash)
}
