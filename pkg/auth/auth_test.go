package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starkproducts/platform/pkg/models"
)

func testService() *Service {
	// Low cost keeps the hashing tests fast.
	return NewService("test-secret", 30*time.Minute, 7*24*time.Hour, 4)
}

func testUser() *models.User {
	return &models.User{
		ID:       "user-1",
		Username: "jdoe",
		Role:     models.RoleSalesRep,
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	s := testService()

	hash, err := s.HashPassword("Str0ngPass")
	require.NoError(t, err)
	assert.NotEqual(t, "Str0ngPass", hash)

	require.NoError(t, s.CheckPassword(hash, "Str0ngPass"))
	assert.ErrorIs(t, s.CheckPassword(hash, "wrong"), ErrInvalidCredentials)
}

func TestIssueTokenPair(t *testing.T) {
	s := testService()

	pair, err := s.IssueTokenPair(testUser())
	require.NoError(t, err)

	assert.Equal(t, "bearer", pair.TokenType)
	assert.Equal(t, int((30 * time.Minute).Seconds()), pair.ExpiresIn)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := s.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "jdoe", claims.Username)
	assert.Equal(t, models.RoleSalesRep, claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	refreshClaims, err := s.VerifyRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refreshClaims.TokenType)
}

func TestVerifyRejectsWrongType(t *testing.T) {
	s := testService()

	pair, err := s.IssueTokenPair(testUser())
	require.NoError(t, err)

	_, err = s.VerifyAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = s.VerifyRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestVerifyRejectsForgedToken(t *testing.T) {
	s := testService()
	other := NewService("other-secret", time.Minute, time.Hour, 4)

	pair, err := other.IssueTokenPair(testUser())
	require.NoError(t, err)

	_, err = s.VerifyAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	s := NewService("test-secret", -time.Minute, time.Hour, 4)

	pair, err := s.IssueTokenPair(testUser())
	require.NoError(t, err)

	_, err = s.VerifyAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewOpaqueToken(t *testing.T) {
	a, err := NewOpaqueToken()
	require.NoError(t, err)

	b, err := NewOpaqueToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role models.UserRole
		perm Permission
		want bool
	}{
		{models.RoleAdmin, PermManageUsers, true},
		{models.RoleManager, PermManageUsers, false},
		{models.RoleManager, PermApproveQuotes, true},
		{models.RoleSalesRep, PermManageProducts, false},
		{models.RoleSalesRep, PermViewAnalytics, true},
		{models.RoleCustomer, PermCreateQuotes, true},
		{models.RoleCustomer, PermViewAnalytics, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HasPermission(tt.role, tt.perm),
			"%s / %s", tt.role, tt.perm)
	}
}
