package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	domadmin "example.com/shop-admin/app/internal/domain/admin"
)

// BcryptService hashes admin passwords. Costs outside bcrypt's accepted
// range fall back to bcrypt.DefaultCost.
type BcryptService struct {
	cost int
}

func NewBcryptService(cost int) *BcryptService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptService{cost: cost}
}

func (s *BcryptService) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *BcryptService) Compare(hash string, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return domadmin.ErrUnauthorized
	}
	return err
}
