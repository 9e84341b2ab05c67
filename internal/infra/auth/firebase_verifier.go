package auth

import (
	"context"

	"friendlocator/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
)

// firebaseVerifier verifies Firebase Auth ID tokens.
type firebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier creates a TokenVerifier backed by Firebase Auth.
func NewFirebaseVerifier(ctx context.Context, app *firebase.App) (service.TokenVerifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auth client")
	}

	return &firebaseVerifier{client: client}, nil
}

// Verify checks signature, audience and expiry of an ID token. The email is carried
// over only when Firebase marks it verified.
func (v *firebaseVerifier) Verify(ctx context.Context, rawToken string) (*service.Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, rawToken)
	if err != nil {
		return nil, errors.Wrap(err, "invalid id token")
	}

	return identityFromClaims(token.UID, token.Claims), nil
}

func identityFromClaims(uid string, claims map[string]any) *service.Identity {
	identity := &service.Identity{UserID: uid}
	email, _ := claims["email"].(string)
	if verified, _ := claims["email_verified"].(bool); verified {
		identity.Email = email
	}

	return identity
}
