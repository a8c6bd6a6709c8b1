package auth_test

import (
	"testing"
	"time"

	"clinic-portal-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-password")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.NoError(t, auth.CheckPassword(hash, "s3cret-password"))
	assert.Error(t, auth.CheckPassword(hash, "wrong-password"))

	// Each hash carries its own salt.
	other, err := auth.HashPassword("s3cret-password")
	assert.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := auth.NewAccessToken("secret", "clinic-portal", time.Hour, "user1", "clinic")
	assert.NoError(t, err)

	claims, err := auth.ParseToken("secret", token)
	assert.NoError(t, err)
	assert.Equal(t, "user1", claims.UserID)
	assert.Equal(t, "clinic", claims.Role)
	assert.Equal(t, "clinic-portal", claims.Issuer)
	assert.NotEmpty(t, claims.ID, "each session needs a jti")
}

func TestAccessTokenUniqueJTI(t *testing.T) {
	a, _ := auth.NewAccessToken("secret", "iss", time.Hour, "user1", "clinic")
	b, _ := auth.NewAccessToken("secret", "iss", time.Hour, "user1", "clinic")

	claimsA, err := auth.ParseToken("secret", a)
	assert.NoError(t, err)
	claimsB, err := auth.ParseToken("secret", b)
	assert.NoError(t, err)
	assert.NotEqual(t, claimsA.ID, claimsB.ID)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _ := auth.NewAccessToken("secret", "iss", time.Hour, "user1", "clinic")
	_, err := auth.ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, _ := auth.NewAccessToken("secret", "iss", -time.Minute, "user1", "clinic")
	_, err := auth.ParseToken("secret", token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := auth.ParseToken("secret", "not.a.token")
	assert.Error(t, err)
}
