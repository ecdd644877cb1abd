package httpctx

import (
	"context"

	"github.com/goliatone/go-batmanform/internal/api"
)

type contextKey string

const (
	keyUser    contextKey = "user"
	keyToken   contextKey = "token"
	keyBaseURL contextKey = "baseURL"
	keyCurrent contextKey = "currentURL"
)

// User returns the authenticated profile, or nil for anonymous requests.
func User(ctx context.Context) *api.User {
	user, _ := ctx.Value(keyUser).(*api.User)
	return user
}

// SetUser attaches the authenticated profile and its backend token.
func SetUser(ctx context.Context, user *api.User, token string) context.Context {
	ctx = context.WithValue(ctx, keyUser, user)
	return context.WithValue(ctx, keyToken, token)
}

// Token returns the backend token of the authenticated user.
func Token(ctx context.Context) string {
	token, _ := ctx.Value(keyToken).(string)
	return token
}
