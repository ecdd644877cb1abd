package authn

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/pkg/errors"

	"github.com/goliatone/go-batmanform/internal/api"
	"github.com/goliatone/go-batmanform/internal/http/authz"
	"github.com/goliatone/go-batmanform/internal/http/handler/webui/common"
	"github.com/goliatone/go-batmanform/internal/http/handler/webui/component"
	"github.com/goliatone/go-batmanform/internal/http/httpctx"
	"github.com/goliatone/go-batmanform/internal/slogx"
	"github.com/goliatone/go-batmanform/pkg/model"
)

// Handler serves the login and logout pages and resolves the session user.
type Handler struct {
	mux          *http.ServeMux
	sessionStore sessions.Store
	sessionName  string
	redirect     string
	client       *api.Client
	pages        *common.FormPages
	schema       model.FormSchema
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// NewHandler wires the login form described by schema to the backend login
// endpoint.
func NewHandler(sessionStore sessions.Store, client *api.Client, pages *common.FormPages, schema model.FormSchema, funcs ...OptionFunc) *Handler {
	opts := NewOptions(funcs...)
	h := &Handler{
		mux:          http.NewServeMux(),
		sessionStore: sessionStore,
		sessionName:  opts.SessionName,
		redirect:     opts.LoginRedirect,
		client:       client,
		pages:        pages,
		schema:       schema,
	}

	guestOnly := authz.GuestOnly()
	h.mux.Handle("GET /login", guestOnly(http.HandlerFunc(h.serveLogin)))
	h.mux.Handle("POST /login", guestOnly(http.HandlerFunc(h.serveLogin)))
	h.mux.HandleFunc("GET /logout", h.handleLogout)
	h.mux.HandleFunc("GET /unauthorized", h.getUnauthorizedPage)

	return h
}

var _ http.Handler = &Handler{}

func (h *Handler) serveLogin(w http.ResponseWriter, r *http.Request) {
	h.pages.Serve(w, r, common.FormPage{
		Title:  "Sign in",
		Schema: h.schema,
		Submit: func(ctx context.Context, values map[string]string) error {
			session, err := h.client.Login(ctx, api.Credentials{
				Email:    values["email"],
				Password: values["password"],
			})
			if err != nil {
				return errors.WithStack(err)
			}
			return h.storeSessionUser(w, r, &SessionUser{User: session.User, Token: session.Token})
		},
		SuccessTitle: "Welcome back",
		SuccessPath:  h.redirect,
		ErrorTitle:   "Could not sign in",
		ClearOnError: []string{"password"},
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.clearSession(w, r); err != nil {
		slog.ErrorContext(r.Context(), "could not clear session", slogx.Error(err))
	}
	http.Redirect(w, r, authz.LoginPath, http.StatusSeeOther)
}

func (h *Handler) getUnauthorizedPage(w http.ResponseWriter, r *http.Request) {
	h.pages.Respond(w, r, "Unauthorized", component.MessagePage("Unauthorized", "Your account cannot open this page."))
}

// Middleware attaches the session user, when there is one, to the request
// context. Guards in authz decide what anonymous requests may reach.
func (h *Handler) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			user, err := h.retrieveSessionUser(r)
			if err == nil {
				r = r.WithContext(httpctx.SetUser(r.Context(), &user.User, user.Token))
			}
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}
