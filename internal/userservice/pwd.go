package userservice

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = 10

// PasswordHasher produces salted bcrypt credentials. The salt is random per call
// and embedded in the output.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher falls back to DefaultCost when cost is outside bcrypt's range.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify compares in constant time. A mismatch is not an error.
func (h *PasswordHasher) Verify(raw, stored string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(raw))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}

func (p *Password) set(h *PasswordHasher, pwd string) error {
	hash, err := h.Hash(pwd)
	if err != nil {
		return err
	}

	p.Plain = pwd
	p.hash = []byte(hash)

	return nil
}

func (p *Password) compare(h *PasswordHasher, pwd string) (bool, error) {
	return h.Verify(pwd, string(p.hash))
}
