package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	domadmin "example.com/shop-admin/app/internal/domain/admin"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.GenerateToken(&domadmin.Admin{ID: "a-1", Name: "Owner", Email: "owner@shop.test"})
	require.NoError(t, err)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "a-1", claims.AdminID)
	require.Equal(t, "owner@shop.test", claims.Email)
	require.Equal(t, "Owner", claims.Name)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	token, err := NewJWTService("one", time.Hour).GenerateToken(&domadmin.Admin{ID: "a-1"})
	require.NoError(t, err)

	_, err = NewJWTService("two", time.Hour).ParseToken(token)
	require.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute)

	token, err := svc.GenerateToken(&domadmin.Admin{ID: "a-1"})
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	require.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	_, err := NewJWTService("test-secret", time.Hour).ParseToken("not-a-token")
	require.Error(t, err)
}

func TestBcryptService(t *testing.T) {
	svc := NewBcryptService(4)

	hash, err := svc.Hash("s3cretpass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cretpass", hash)

	require.NoError(t, svc.Compare(hash, "s3cretpass"))
	require.Error(t, svc.Compare(hash, "wrong"))
}

func TestBcryptService_MismatchIsUnauthorized(t *testing.T) {
	svc := NewBcryptService(0)
	require.Equal(t, bcrypt.DefaultCost, svc.cost)

	hash, err := NewBcryptService(bcrypt.MinCost).Hash("s3cretpass")
	require.NoError(t, err)
	require.ErrorIs(t, svc.Compare(hash, "nope"), domadmin.ErrUnauthorized)
}
