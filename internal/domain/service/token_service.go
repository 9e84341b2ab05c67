package service

import "context"

// Identity is the caller as asserted by a verified identity token.
type Identity struct {
	// UserID is the token subject.
	UserID string
	// Email is set only when the identity provider has verified it.
	Email string
}

// TokenVerifier validates identity tokens issued by the identity provider.
// This abstracts the details of token verification from the delivery layer.
type TokenVerifier interface {
	// Verify checks rawToken and returns the authenticated identity.
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}
