package webui

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/goliatone/go-batmanform/internal/api"
	"github.com/goliatone/go-batmanform/internal/http/authz"
	"github.com/goliatone/go-batmanform/internal/http/handler/webui/common"
	"github.com/goliatone/go-batmanform/internal/http/httpctx"
	"github.com/goliatone/go-batmanform/pkg/renderers/vanilla"
	"github.com/goliatone/go-batmanform/pkg/schema"
)

// Handler serves the dashboard pages.
type Handler struct {
	mux     *http.ServeMux
	client  *api.Client
	schemas *schema.Store
	pages   *common.FormPages
	opts    *Options
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// NewHandler mounts the dashboard, the departments list and one create page
// per section. Every section schema must exist in schemas.
func NewHandler(client *api.Client, schemas *schema.Store, pages *common.FormPages, funcs ...OptionFunc) (*Handler, error) {
	opts := NewOptions(funcs...)
	h := &Handler{
		mux:     http.NewServeMux(),
		client:  client,
		schemas: schemas,
		pages:   pages,
		opts:    opts,
	}

	requireUser := authz.RequireUser()

	h.mux.Handle("GET /{$}", http.RedirectHandler(authz.DashboardPath, http.StatusSeeOther))
	h.mux.Handle("GET /dashboard", requireUser(http.HandlerFunc(h.getDashboardPage)))
	h.mux.Handle("GET /departments", authz.RequireRoles(adminOnly...)(http.HandlerFunc(h.getDepartmentsPage)))
	h.mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(vanilla.AssetsFS())))

	for _, section := range opts.Sections {
		if _, err := schemas.Lookup(section.Schema); err != nil {
			return nil, errors.Wrapf(err, "section %s", section.Path)
		}
		handler := authz.RequireRoles(section.Roles...)(h.newSectionHandler(section))
		h.mux.Handle("GET "+section.Path, handler)
		h.mux.Handle("POST "+section.Path, handler)
	}

	return h, nil
}

var _ http.Handler = &Handler{}

// clientFor authenticates backend calls as the request user.
func (h *Handler) clientFor(ctx context.Context) *api.Client {
	return h.client.WithToken(httpctx.Token(ctx))
}
