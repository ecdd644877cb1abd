package authz

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"

	"github.com/goliatone/go-batmanform/internal/api"
	"github.com/goliatone/go-batmanform/internal/http/httpctx"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func requestAs(user *api.User) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/departments", nil)
	if user != nil {
		req = req.WithContext(httpctx.SetUser(req.Context(), user, "tok"))
	}
	return req
}

func TestHasPermission(t *testing.T) {
	admin := &api.User{Roles: []string{"admin"}}
	tests := []struct {
		name  string
		user  *api.User
		roles []string
		want  bool
	}{
		{name: "anonymous", user: nil, want: false},
		{name: "no roles required", user: &api.User{}, want: true},
		{name: "matching role", user: admin, roles: []string{"teacher", "admin"}, want: true},
		{name: "missing role", user: admin, roles: []string{"student"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasPermission(tt.user, tt.roles...); got != tt.want {
				t.Fatalf("HasPermission() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGuards(t *testing.T) {
	admin := &api.User{Name: "Ada", Roles: []string{"admin"}}
	student := &api.User{Name: "Bob", Roles: []string{"student"}}

	tests := []struct {
		name     string
		guard    func(http.Handler) http.Handler
		user     *api.User
		status   int
		location string
	}{
		{name: "require user anonymous", guard: RequireUser(), status: http.StatusSeeOther, location: LoginPath},
		{name: "require user ok", guard: RequireUser(), user: student, status: http.StatusNoContent},
		{name: "roles anonymous", guard: RequireRoles("admin"), status: http.StatusSeeOther, location: LoginPath},
		{name: "roles missing", guard: RequireRoles("admin"), user: student, status: http.StatusSeeOther, location: UnauthorizedPath},
		{name: "roles ok", guard: RequireRoles("admin"), user: admin, status: http.StatusNoContent},
		{name: "guest anonymous", guard: GuestOnly(), status: http.StatusNoContent},
		{name: "guest authenticated", guard: GuestOnly(), user: admin, status: http.StatusSeeOther, location: DashboardPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.guard(okHandler).ServeHTTP(rec, requestAs(tt.user))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if got := rec.Header().Get("Location"); got != tt.location {
				t.Fatalf("location = %q, want %q", got, tt.location)
			}
		})
	}
}

func TestMiddlewareAssertError(t *testing.T) {
	failing := func(context.Context, *api.User) (bool, error) { return false, errors.New("boom") }
	rec := httptest.NewRecorder()
	Middleware(nil, failing)(okHandler).ServeHTTP(rec, requestAs(nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	Middleware(nil, OneOf(Has("admin"), IsAuthenticated))(okHandler).ServeHTTP(rec, requestAs(nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d", rec.Code)
	}
}
