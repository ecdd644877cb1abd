package webui

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-batmanform/internal/api"
	"github.com/goliatone/go-batmanform/internal/http/handler/webui/component"
	"github.com/goliatone/go-batmanform/internal/http/toast"
	"github.com/goliatone/go-batmanform/internal/slogx"
)

func (h *Handler) getDepartmentsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	vmodel := component.DepartmentsVModel{
		Search: strings.TrimSpace(query.Get("search")),
		Limit:  parseLimit(query.Get("limit")),
		Limits: pageSizes,
	}

	res, err := h.clientFor(ctx).ListDepartments(ctx, vmodel.Search, vmodel.Limit)
	if err != nil {
		h.opts.Logger.WarnContext(ctx, "could not list departments", slogx.Error(err))
		h.pages.Toast(w, r, toast.KindError, "Could not load departments", api.Message(err, "The server did not answer."))
		vmodel.Failed = true
	} else {
		vmodel.Departments = res.Data
		vmodel.Total = len(res.Data)
		if res.Meta != nil {
			vmodel.Total = res.Meta.Total
		}
	}

	h.pages.Respond(w, r, "Departments", component.DepartmentsPage(vmodel))
}

// parseLimit accepts only the offered page sizes.
func parseLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || !slices.Contains(pageSizes, limit) {
		return defaultPageSize
	}
	return limit
}
