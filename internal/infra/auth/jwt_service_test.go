package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_very_long_for_testing"

func TestJWTVerifier_IssueAndVerify(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret)
	require.NoError(t, err)

	token, err := NewJWTIssuer(testSecret, time.Hour).Issue("user-1", "one@example.com")
	require.NoError(t, err)

	identity, err := verifier.Verify(t.Context(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, "one@example.com", identity.Email)

	token, err = NewJWTIssuer(testSecret, time.Hour).Issue("user-2", "")
	require.NoError(t, err)

	identity, err = verifier.Verify(t.Context(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-2", identity.UserID)
	assert.Empty(t, identity.Email)
}

func TestJWTVerifier_EmptySecret(t *testing.T) {
	_, err := NewJWTVerifier("")
	assert.Error(t, err)
}

func TestJWTVerifier_Rejects(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret)
	require.NoError(t, err)

	expired, err := NewJWTIssuer(testSecret, -time.Minute).Issue("user-1", "")
	require.NoError(t, err)

	wrongSecret, err := NewJWTIssuer("another_secret", time.Hour).Issue("user-1", "")
	require.NoError(t, err)

	noSubject, err := NewJWTIssuer(testSecret, time.Hour).Issue("", "")
	require.NoError(t, err)

	foreignIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired", token: expired},
		{name: "wrong secret", token: wrongSecret},
		{name: "no subject", token: noSubject},
		{name: "foreign issuer", token: foreignIssuer},
		{name: "garbage", token: "not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify(t.Context(), tt.token)
			assert.Error(t, err)
		})
	}
}

func TestIdentityFromClaims_KeepsOnlyVerifiedEmail(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]any
		want   string
	}{
		{name: "verified", claims: map[string]any{"email": "one@example.com", "email_verified": true}, want: "one@example.com"},
		{name: "unverified", claims: map[string]any{"email": "one@example.com", "email_verified": false}},
		{name: "flag missing", claims: map[string]any{"email": "one@example.com"}},
		{name: "no email", claims: map[string]any{"email_verified": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := identityFromClaims("uid-1", tt.claims)
			assert.Equal(t, "uid-1", identity.UserID)
			assert.Equal(t, tt.want, identity.Email)
		})
	}
}
