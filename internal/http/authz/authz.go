package authz

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"github.com/pkg/errors"

	"github.com/goliatone/go-batmanform/internal/api"
	"github.com/goliatone/go-batmanform/internal/http/httpctx"
	"github.com/goliatone/go-batmanform/internal/slogx"
)

// Guard destinations.
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
	DashboardPath    = "/dashboard"
)

// AssertFunc decides whether user may proceed.
type AssertFunc func(ctx context.Context, user *api.User) (bool, error)

// HasPermission reports whether user holds at least one of roles. An empty
// role list only requires a user.
func HasPermission(user *api.User, roles ...string) bool {
	if user == nil {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	for _, role := range roles {
		if slices.Contains(user.Roles, role) {
			return true
		}
	}
	return false
}

func IsAuthenticated(_ context.Context, user *api.User) (bool, error) {
	return user != nil, nil
}

// Has asserts HasPermission(user, roles...).
func Has(roles ...string) AssertFunc {
	return func(_ context.Context, user *api.User) (bool, error) {
		return HasPermission(user, roles...), nil
	}
}

func OneOf(funcs ...AssertFunc) AssertFunc {
	return func(ctx context.Context, user *api.User) (bool, error) {
		for _, fn := range funcs {
			allowed, err := fn(ctx, user)
			if err != nil {
				return false, errors.WithStack(err)
			}
			if allowed {
				return true, nil
			}
		}
		return false, nil
	}
}

// Assert requires every func to allow user.
func Assert(ctx context.Context, user *api.User, funcs ...AssertFunc) (bool, error) {
	for _, fn := range funcs {
		allowed, err := fn(ctx, user)
		if err != nil {
			return false, errors.WithStack(err)
		}
		if !allowed {
			return false, nil
		}
	}
	return true, nil
}

// Middleware runs forbidden when the context user fails the assertions. A nil
// forbidden handler answers 403.
func Middleware(forbidden http.Handler, funcs ...AssertFunc) func(h http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			allowed, err := Assert(ctx, httpctx.User(ctx), funcs...)
			if err != nil {
				slog.ErrorContext(ctx, "could not assert user authorizations", slogx.Error(err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			if !allowed {
				if forbidden == nil {
					http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				} else {
					forbidden.ServeHTTP(w, r)
				}
				return
			}

			h.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}

// RedirectTo answers with a 303 to path.
func RedirectTo(path string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, path, http.StatusSeeOther)
	})
}

// RequireUser sends anonymous visitors to the login page.
func RequireUser() func(http.Handler) http.Handler {
	return Middleware(RedirectTo(LoginPath), IsAuthenticated)
}

// RequireRoles sends anonymous visitors to the login page and users lacking
// every role to the unauthorized page.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	requireUser := RequireUser()
	requireRoles := Middleware(RedirectTo(UnauthorizedPath), Has(roles...))
	return func(h http.Handler) http.Handler {
		return requireUser(requireRoles(h))
	}
}

// GuestOnly sends authenticated users to the dashboard, for pages such as
// the login form.
func GuestOnly() func(http.Handler) http.Handler {
	return Middleware(RedirectTo(DashboardPath), func(_ context.Context, user *api.User) (bool, error) {
		return user == nil, nil
	})
}
