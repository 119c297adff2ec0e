package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domadmin "example.com/shop-admin/app/internal/domain/admin"
	authuc "example.com/shop-admin/app/internal/usecase/auth"
)

const issuer = "shop-admin"

var errInvalidToken = errors.New("invalid token")

type JWTService struct {
	secret     []byte
	expiration time.Duration
}

func NewJWTService(secret string, expiration time.Duration) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

type jwtClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

func (s *JWTService) GenerateToken(a *domadmin.Admin) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		Email: a.Email,
		Name:  a.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTService) ParseToken(token string) (*authuc.Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, errInvalidToken
	}

	return &authuc.Claims{
		AdminID: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}
