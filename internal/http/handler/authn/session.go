package authn

import (
	"encoding/gob"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/pkg/errors"

	"github.com/goliatone/go-batmanform/internal/api"
	"github.com/goliatone/go-batmanform/internal/slogx"
)

const userAttr = "u"

var errSessionNotFound = errors.New("session not found")

// SessionUser is the profile and backend token kept in the session cookie.
type SessionUser struct {
	User  api.User
	Token string
}

func init() {
	gob.Register(&SessionUser{})
}

func (h *Handler) storeSessionUser(w http.ResponseWriter, r *http.Request, user *SessionUser) error {
	sess, err := h.getSession(r)
	if err != nil {
		return errors.WithStack(err)
	}

	sess.Values[userAttr] = user

	if err := sess.Save(r, w); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func (h *Handler) retrieveSessionUser(r *http.Request) (*SessionUser, error) {
	sess, err := h.getSession(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	user, ok := sess.Values[userAttr].(*SessionUser)
	if !ok {
		return nil, errors.WithStack(errSessionNotFound)
	}
	return user, nil
}

func (h *Handler) getSession(r *http.Request) (*sessions.Session, error) {
	sess, err := h.sessionStore.Get(r, h.sessionName)
	if err != nil {
		slog.ErrorContext(r.Context(), "could not retrieve session from store", slogx.Error(err))
		return sess, errors.WithStack(errSessionNotFound)
	}
	return sess, nil
}

func (h *Handler) clearSession(w http.ResponseWriter, r *http.Request) error {
	sess, err := h.getSession(r)
	if err != nil && !errors.Is(err, errSessionNotFound) {
		return errors.WithStack(err)
	}
	if sess == nil {
		return nil
	}

	delete(sess.Values, userAttr)
	sess.Options.MaxAge = -1

	if err := sess.Save(r, w); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
