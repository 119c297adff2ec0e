package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	domadmin "example.com/shop-admin/app/internal/domain/admin"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

type Claims struct {
	AdminID string
	Email   string
	Name    string
}

type TokenService interface {
	GenerateToken(a *domadmin.Admin) (string, error)
	ParseToken(token string) (*Claims, error)
}

type Service struct {
	adminRepo domadmin.Repository
	hasher    PasswordHasher
	tokens    TokenService
}

func NewService(
	adminRepo domadmin.Repository,
	hasher PasswordHasher,
	tokens TokenService,
) *Service {
	return &Service{
		adminRepo: adminRepo,
		hasher:    hasher,
		tokens:    tokens,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token string
	Admin *domadmin.Admin
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domadmin.ErrInvalidCredential
	}

	a, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, domadmin.ErrUnauthorized
	}

	if err := s.hasher.Compare(a.PasswordHash, in.Password); err != nil {
		return nil, domadmin.ErrUnauthorized
	}

	token, err := s.tokens.GenerateToken(a)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token: token,
		Admin: a,
	}, nil
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

const minPasswordLength = 8

func (s *Service) Register(ctx context.Context, in RegisterInput) (*domadmin.Admin, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" {
		return nil, domadmin.ErrInvalidCredential
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domadmin.ErrInvalidCredential, minPasswordLength)
	}

	_, err := s.adminRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domadmin.ErrEmailAlreadyUsed
	case !errors.Is(err, domadmin.ErrAdminNotFound):
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	return s.adminRepo.Create(ctx, &domadmin.Admin{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
