package security

import (
	"github.com/kiervincent5/travel-planner/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher implements ports.PasswordHasher
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher falls back to bcrypt.DefaultCost when cost is out of range
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(errors.ErrorTypeUnknown, "failed to hash password", err)
	}
	return string(hash), nil
}

// Compare returns an Unauthorized error when password does not match hash
func (h *BcryptHasher) Compare(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return errors.Wrap(errors.ErrorTypeUnauthorized, "password mismatch", err)
	}
	return nil
}
