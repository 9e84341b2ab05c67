// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"context"
	"time"

	"friendlocator/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const devTokenIssuer = "friendlocator-dev"

// jwtVerifier verifies HS256 tokens signed with a shared secret. It stands in for the
// identity provider during local development.
type jwtVerifier struct {
	secret []byte
}

// devClaims carries the email a development token vouches for.
type devClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTIssuer creates tokens the jwtVerifier accepts. Used by local tooling and tests.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTVerifier is the constructor for jwtVerifier.
func NewJWTVerifier(secret string) (service.TokenVerifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtVerifier{secret: []byte(secret)}, nil
}

// NewJWTIssuer creates an issuer for tokens valid for ttl.
func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token whose subject is userID. A non-empty email is treated as verified.
func (i *JWTIssuer) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := devClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    devTokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return signed, nil
}

// Verify parses rawToken and returns its subject and email.
func (v *jwtVerifier) Verify(_ context.Context, rawToken string) (*service.Identity, error) {
	claims := &devClaims{}
	_, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(devTokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	return &service.Identity{UserID: claims.Subject, Email: claims.Email}, nil
}
