package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sushihentaime/bloglist/internal/common"
)

// Identity is the authenticated caller.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// AnonymousIdentity is attached to requests that carry no Authorization header.
var AnonymousIdentity = Identity{}

func (i *Identity) IsAnonymous() bool {
	return i == nil || i == &AnonymousIdentity
}

// Owned is implemented by records that belong to a single user.
type Owned interface {
	OwnerID() string
}

// IdentityStore resolves a token subject to a stored user. It returns
// common.ErrRecordNotFound when the user no longer exists.
type IdentityStore interface {
	IdentityByID(ctx context.Context, id string) (*Identity, error)
}

type Gate struct {
	tokens *TokenManager
	users  IdentityStore
}

func NewGate(tokens *TokenManager, users IdentityStore) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// ExtractBearerToken returns the token of an "Authorization: Bearer <token>"
// header. The scheme is case-insensitive. It returns "" when the header is
// absent or malformed.
func ExtractBearerToken(h http.Header) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(h.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	token = strings.TrimSpace(token)
	if strings.ContainsAny(token, " \t") {
		return ""
	}

	return token
}

// Authenticate resolves the bearer token in h to an existing user. Every
// credential problem is reported as common.ErrUnauthorized; store failures are
// returned as is.
func (g *Gate) Authenticate(ctx context.Context, h http.Header) (*Identity, error) {
	token := ExtractBearerToken(h)
	if token == "" {
		return nil, common.ErrUnauthorized
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrUnauthorized, err)
	}

	identity, err := g.users.IdentityByID(ctx, claims.Subject)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound), errors.Is(err, common.ErrMalformedID):
			return nil, fmt.Errorf("%w: %w", common.ErrUnauthorized, err)
		default:
			return nil, err
		}
	}

	return identity, nil
}

// AuthorizeOwnership fails with common.ErrForbidden unless identity owns resource.
func AuthorizeOwnership(identity *Identity, resource Owned) error {
	if identity.IsAnonymous() || resource == nil {
		return common.ErrForbidden
	}

	if owner := resource.OwnerID(); owner == "" || owner != identity.ID {
		return common.ErrForbidden
	}

	return nil
}
