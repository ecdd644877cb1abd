package component

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/goliatone/go-batmanform/internal/api"
	"github.com/goliatone/go-batmanform/internal/http/authz"
	"github.com/goliatone/go-batmanform/internal/http/toast"
)

// NavItem is one entry of the sidebar.
type NavItem struct {
	Label string
	Path  string
	Roles []string
}

// Navigation lists the dashboard sections with the roles allowed to open
// them.
var Navigation = []NavItem{
	{Label: "Dashboard", Path: "/dashboard"},
	{Label: "Departments", Path: "/departments", Roles: []string{"admin"}},
	{Label: "Students", Path: "/students/new", Roles: []string{"admin"}},
	{Label: "Teachers", Path: "/teachers/new", Roles: []string{"admin"}},
	{Label: "Courses", Path: "/courses/new", Roles: []string{"admin"}},
	{Label: "Attendance", Path: "/attendance/new", Roles: []string{"admin", "teacher"}},
	{Label: "Results", Path: "/results/new", Roles: []string{"admin", "teacher"}},
}

type LayoutVModel struct {
	Title  string
	User   *api.User
	Toasts []toast.Toast
}

// Layout wraps body with the document chrome, the navigation the user may
// access and the pending toasts.
func Layout(vmodel LayoutVModel, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>")
		w.text(vmodel.Title)
		w.raw(" | BatMan</title>\n<link rel=\"stylesheet\" href=\"", Link(ctx, "assets", "batmanform.css"), "\">\n</head>\n<body class=\"batman-app\">\n")

		if vmodel.User != nil {
			w.raw("<nav class=\"batman-nav\">\n<ul>\n")
			for _, item := range Navigation {
				if !authz.HasPermission(vmodel.User, item.Roles...) {
					continue
				}
				class := "batman-nav__item"
				if MatchPath(ctx, item.Path) {
					class = classes(class, "batman-nav__item--active")
				}
				w.raw("<li")
				w.attr("class", class)
				w.raw("><a")
				w.attr("href", Link(ctx, item.Path))
				w.raw(">")
				w.text(item.Label)
				w.raw("</a></li>\n")
			}
			w.raw("</ul>\n<p class=\"batman-nav__user\">")
			w.text(vmodel.User.Name)
			w.raw(" <a")
			w.attr("href", Link(ctx, "logout"))
			w.raw(">Sign out</a></p>\n</nav>\n")
		}

		w.child(ctx, Toasts(vmodel.Toasts))
		w.raw("<main class=\"batman-main\">\n")
		w.child(ctx, body)
		w.raw("</main>\n</body>\n</html>\n")
		return w.done()
	})
}

// Toasts renders notifications. Descriptions are already sanitized.
func Toasts(toasts []toast.Toast) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		if len(toasts) == 0 {
			return nil
		}
		w := &writer{w: out}
		w.raw("<div class=\"batman-toasts\" role=\"status\">\n")
		for _, t := range toasts {
			w.raw("<div")
			w.attr("id", "toast-"+t.ID)
			w.attr("class", classes("batman-toast", "batman-toast--"+string(t.Kind)))
			w.raw("><strong>")
			w.text(t.Title)
			w.raw("</strong>")
			if t.Description != "" {
				w.raw("<p>", t.Description, "</p>")
			}
			w.raw("</div>\n")
		}
		w.raw("</div>\n")
		return w.done()
	})
}
