package auth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// OIDCVerifier verifies ID tokens against an identity provider's published keys.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

type oidcClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// NewOIDCVerifier discovers issuerURL and checks tokens for audience clientID.
func NewOIDCVerifier(ctx context.Context, issuerURL, clientID string) (*OIDCVerifier, error) {
	p, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("discover oidc provider: %w", err)
	}
	return &OIDCVerifier{verifier: p.Verifier(&oidc.Config{ClientID: clientID})}, nil
}

// Verify checks raw against the provider keys and audience and returns its identity.
func (o *OIDCVerifier) Verify(ctx context.Context, raw string) (Identity, error) {
	idTok, err := o.verifier.Verify(ctx, raw)
	if err != nil {
		return Identity{}, fmt.Errorf("verify id token: %w", err)
	}

	var c oidcClaims
	if err := idTok.Claims(&c); err != nil {
		return Identity{}, fmt.Errorf("read claims: %w", err)
	}
	return Identity{Subject: idTok.Subject, Email: c.Email, Name: c.Name}, nil
}
