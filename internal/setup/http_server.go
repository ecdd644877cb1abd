package setup

import (
	"context"
	"net/http"
	"os"

	"github.com/pkg/errors"

	"github.com/goliatone/go-batmanform/internal/api"
	"github.com/goliatone/go-batmanform/internal/config"
	httpServer "github.com/goliatone/go-batmanform/internal/http"
	"github.com/goliatone/go-batmanform/internal/http/handler/authn"
	"github.com/goliatone/go-batmanform/internal/http/handler/metrics"
	"github.com/goliatone/go-batmanform/internal/http/handler/webui"
	"github.com/goliatone/go-batmanform/internal/http/handler/webui/common"
	"github.com/goliatone/go-batmanform/internal/http/toast"
	"github.com/goliatone/go-batmanform/pkg/renderers/vanilla"
	"github.com/goliatone/go-batmanform/pkg/schema"
)

// NewHTTPServerFromConfig assembles the dashboard server.
func NewHTTPServerFromConfig(ctx context.Context, conf *config.Config) (*httpServer.Server, error) {
	sessionStore, err := getSessionStoreFromConfig(conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure session store")
	}

	client, err := api.NewClient(conf.API.BaseURL, &http.Client{Timeout: conf.API.Timeout})
	if err != nil {
		return nil, errors.Wrap(err, "could not configure api client")
	}

	schemas, err := getSchemaStoreFromConfig(conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not load schemas")
	}
	login, err := schemas.Lookup("login")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	renderer, err := vanilla.New()
	if err != nil {
		return nil, errors.Wrap(err, "could not configure form renderer")
	}

	pages := common.NewFormPages(renderer, toast.NewNotifier(sessionStore, conf.HTTP.Session.Name))

	authnHandler := authn.NewHandler(sessionStore, client, pages, login, authn.WithSessionName(conf.HTTP.Session.Name))

	webuiHandler, err := webui.NewHandler(client, schemas, pages)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure webui handler")
	}

	server := httpServer.NewServer(
		httpServer.WithAddress(conf.HTTP.Address),
		httpServer.WithBaseURL(conf.HTTP.BaseURL),
		httpServer.WithMiddleware(authnHandler.Middleware()),
		httpServer.WithRoute("/login", authnHandler),
		httpServer.WithRoute("/logout", authnHandler),
		httpServer.WithRoute("/unauthorized", authnHandler),
		httpServer.WithMount("/metrics/", metrics.NewHandler(nil)),
		httpServer.WithMount("/", webuiHandler),
	)

	return server, nil
}

func getSchemaStoreFromConfig(conf *config.Config) (*schema.Store, error) {
	if conf.Schemas.Dir == "" {
		return schema.Embedded()
	}
	store, err := schema.LoadFS(os.DirFS(conf.Schemas.Dir))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return store, nil
}
