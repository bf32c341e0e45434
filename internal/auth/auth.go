// Package auth verifies bearer tokens issued by the identity provider and
// carries the resulting owner through request contexts.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tripjournal/backend/internal/domain"
)

// Verifier validates HS256 tokens and maps their subject to a trip owner
// inside a single tenant.
type Verifier struct {
	secret []byte
	tenant string
}

// NewVerifier constructs a Verifier for tokens signed with secret.
func NewVerifier(secret []byte, tenant string) *Verifier {
	return &Verifier{secret: secret, tenant: tenant}
}

// Verify parses token and returns the owner it identifies.
// Any parse, signature, expiry, or missing-subject problem yields domain.ErrUnauthorized.
func (v *Verifier) Verify(token string) (domain.Owner, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Owner{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if claims.Subject == "" {
		return domain.Owner{}, fmt.Errorf("%w: token has no subject", domain.ErrUnauthorized)
	}
	return domain.Owner{Tenant: v.tenant, User: claims.Subject}, nil
}

// Issue signs a token for user valid for ttl. The identity provider issues
// production tokens; this is used by tests and local tooling.
func Issue(secret []byte, user string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString(secret)
}

type ownerKey struct{}

// WithOwner returns a copy of ctx carrying owner.
func WithOwner(ctx context.Context, owner domain.Owner) context.Context {
	return context.WithValue(ctx, ownerKey{}, owner)
}

// OwnerFromContext returns the owner stored by WithOwner.
// Returns domain.ErrUnauthorized when none is present.
func OwnerFromContext(ctx context.Context) (domain.Owner, error) {
	owner, ok := ctx.Value(ownerKey{}).(domain.Owner)
	if !ok {
		return domain.Owner{}, domain.ErrUnauthorized
	}
	return owner, nil
}
