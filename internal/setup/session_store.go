package setup

import (
	"crypto/rand"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/pkg/errors"

	"github.com/goliatone/go-batmanform/internal/config"
)

func getSessionStoreFromConfig(conf *config.Config) (*sessions.CookieStore, error) {
	keyPairs := make([][]byte, 0, len(conf.HTTP.Session.Keys))
	for _, k := range conf.HTTP.Session.Keys {
		keyPairs = append(keyPairs, []byte(k))
	}
	if len(keyPairs) == 0 {
		slog.Warn("no session keys configured, sessions will not survive a restart")
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, errors.Wrap(err, "could not generate cookie signing key")
		}
		keyPairs = append(keyPairs, key)
	}

	store := sessions.NewCookieStore(keyPairs...)
	store.MaxAge(int(conf.HTTP.Session.Cookie.MaxAge.Seconds()))
	store.Options.Path = conf.HTTP.Session.Cookie.Path
	store.Options.HttpOnly = conf.HTTP.Session.Cookie.HTTPOnly
	store.Options.Secure = conf.HTTP.Session.Cookie.Secure
	store.Options.SameSite = http.SameSiteLaxMode

	return store, nil
}
