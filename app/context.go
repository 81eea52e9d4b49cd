package main

import (
	"context"
	"net/http"

	"github.com/sushihentaime/bloglist/internal/auth"
)

type contextKey string

const userContextKey = contextKey("user")

func (app *application) createUserContext(r *http.Request, identity *auth.Identity) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, identity)
	return r.WithContext(ctx)
}

func (app *application) getUserContext(r *http.Request) *auth.Identity {
	identity, ok := r.Context().Value(userContextKey).(*auth.Identity)
	if !ok {
		return nil
	}
	return identity
}
