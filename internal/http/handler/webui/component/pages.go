package component

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/goliatone/go-batmanform/internal/api"
	"github.com/goliatone/go-batmanform/internal/http/authz"
	"github.com/goliatone/go-batmanform/internal/http/httpctx"
	httpURL "github.com/goliatone/go-batmanform/internal/http/url"
)

// FormPage embeds markup produced by the form renderer.
func FormPage(markup []byte) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw("<section class=\"batman-card\">\n")
		w.child(ctx, templ.Raw(string(markup)))
		w.raw("</section>\n")
		return w.done()
	})
}

// MessagePage shows a heading and a single paragraph.
func MessagePage(title, message string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw("<section class=\"batman-card\">\n<h1>")
		w.text(title)
		w.raw("</h1>\n<p>")
		w.text(message)
		w.raw("</p>\n</section>\n")
		return w.done()
	})
}

type DashboardVModel struct {
	User *api.User
}

// DashboardPage greets the user and links every section they may open.
func DashboardPage(vmodel DashboardVModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw("<h1>Welcome")
		if vmodel.User != nil && vmodel.User.Name != "" {
			w.raw(", ")
			w.text(vmodel.User.Name)
		}
		w.raw("</h1>\n<div class=\"batman-cards grid grid-cols-3 gap-4\">\n")
		for _, item := range Navigation[1:] {
			if !authz.HasPermission(vmodel.User, item.Roles...) {
				continue
			}
			w.raw("<a class=\"batman-card\"")
			w.attr("href", Link(ctx, item.Path))
			w.raw(">")
			w.text(item.Label)
			w.raw("</a>\n")
		}
		w.raw("</div>\n")
		return w.done()
	})
}

type DepartmentsVModel struct {
	Departments []api.Department
	Search      string
	Limit       int
	Limits      []int
	Total       int
	// Failed is set when the list could not be fetched.
	Failed bool
}

// DepartmentsPage lists departments with a search box and page-size links
// that keep the rest of the query string.
func DepartmentsPage(vmodel DepartmentsVModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		current := httpctx.CurrentURL(ctx)

		w.raw("<header class=\"batman-toolbar\">\n<h1>Departments</h1>\n<a class=\"batman-button\"")
		w.attr("href", Link(ctx, "departments", "new"))
		w.raw(">Add Department</a>\n</header>\n")

		w.raw("<form method=\"get\" class=\"batman-search\">\n<input type=\"search\" name=\"search\" placeholder=\"Search departments\"")
		w.attr("value", vmodel.Search)
		w.raw(">\n")
		if vmodel.Limit > 0 {
			w.raw("<input type=\"hidden\" name=\"limit\"")
			w.attr("value", strconv.Itoa(vmodel.Limit))
			w.raw(">\n")
		}
		w.raw("<button type=\"submit\">Search</button>\n")
		if vmodel.Search != "" {
			w.raw("<a")
			w.attr("href", "?"+httpURL.ModifyParams(current, httpURL.ActionDelete, "search", ""))
			w.raw(">Clear</a>\n")
		}
		w.raw("</form>\n")

		w.raw("<nav class=\"batman-limits\">")
		for _, limit := range vmodel.Limits {
			value := strconv.Itoa(limit)
			w.raw("<a")
			w.attr("href", "?"+httpURL.ModifyParams(current, httpURL.ActionSet, "limit", value))
			if limit == vmodel.Limit {
				w.raw(" aria-current=\"true\"")
			}
			w.raw(">")
			w.text(value)
			w.raw("</a>")
		}
		w.raw("</nav>\n")

		switch {
		case vmodel.Failed:
			w.raw("<p class=\"batman-empty\">Departments are unavailable right now.</p>\n")
		case len(vmodel.Departments) == 0:
			w.raw("<p class=\"batman-empty\">No departments found.</p>\n")
		default:
			w.raw("<table class=\"batman-table\">\n<thead><tr><th>Name</th><th>Code</th><th>School</th></tr></thead>\n<tbody>\n")
			for _, d := range vmodel.Departments {
				w.raw("<tr><td>")
				w.text(d.Name)
				w.raw("</td><td>")
				w.text(d.Code)
				w.raw("</td><td>")
				w.text(d.School)
				w.raw("</td></tr>\n")
			}
			w.raw("</tbody>\n</table>\n")
			w.raw("<p class=\"batman-total\">")
			w.text(strconv.Itoa(vmodel.Total))
			w.raw(" total</p>\n")
		}
		return w.done()
	})
}
