package webui

import (
	"net/http"

	"github.com/goliatone/go-batmanform/internal/http/handler/webui/component"
	"github.com/goliatone/go-batmanform/internal/http/httpctx"
)

func (h *Handler) getDashboardPage(w http.ResponseWriter, r *http.Request) {
	vmodel := component.DashboardVModel{User: httpctx.User(r.Context())}
	h.pages.Respond(w, r, "Dashboard", component.DashboardPage(vmodel))
}
