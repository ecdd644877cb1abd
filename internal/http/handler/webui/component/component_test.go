package component

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/goliatone/go-batmanform/internal/api"
	"github.com/goliatone/go-batmanform/internal/http/httpctx"
	"github.com/goliatone/go-batmanform/internal/http/toast"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func requestContext(t *testing.T, rawURL string) context.Context {
	t.Helper()
	current, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ctx := httpctx.SetBaseURL(context.Background(), "/")
	return httpctx.SetCurrentURL(ctx, current)
}

func TestLayoutFiltersNavigationByRole(t *testing.T) {
	ctx := requestContext(t, "/attendance/new")
	teacher := &api.User{Name: "Grace", Roles: []string{"teacher"}}

	out := render(t, ctx, Layout(LayoutVModel{
		Title:  "Attendance",
		User:   teacher,
		Toasts: []toast.Toast{{ID: "abc", Kind: toast.KindSuccess, Title: "Saved", Description: "<b>ok</b>"}},
	}, MessagePage("Hi", "<there>")))

	for _, want := range []string{
		"<title>Attendance | BatMan</title>",
		`href="/assets/batmanform.css"`,
		`class="batman-nav__item batman-nav__item--active"><a href="/attendance/new">Attendance</a>`,
		`href="/results/new"`,
		`id="toast-abc" class="batman-toast batman-toast--success"><strong>Saved</strong><p><b>ok</b></p>`,
		"<p>&lt;there&gt;</p>",
		"Grace",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, `href="/departments"`) {
		t.Fatalf("teacher must not see admin sections:\n%s", out)
	}
}

func TestLayoutAnonymousHasNoNavigation(t *testing.T) {
	out := render(t, requestContext(t, "/login"), Layout(LayoutVModel{Title: "Sign in"}, nil))
	if strings.Contains(out, "batman-nav") {
		t.Fatalf("anonymous layout rendered navigation:\n%s", out)
	}
}

func TestDepartmentsPageKeepsQuery(t *testing.T) {
	ctx := requestContext(t, "/departments?search=phy&limit=10")
	out := render(t, ctx, DepartmentsPage(DepartmentsVModel{
		Departments: []api.Department{{Name: "Physics", Code: "PHY", School: "School 1"}},
		Search:      "phy",
		Limit:       10,
		Limits:      []int{10, 25},
		Total:       1,
	}))

	for _, want := range []string{
		`name="search" placeholder="Search departments" value="phy"`,
		`<input type="hidden" name="limit" value="10">`,
		`href="?limit=10"`,
		`href="?limit=10&amp;search=phy" aria-current="true">10</a>`,
		`href="?limit=25&amp;search=phy">25</a>`,
		"<td>Physics</td><td>PHY</td><td>School 1</td>",
		"1 total",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestDepartmentsPageStates(t *testing.T) {
	ctx := requestContext(t, "/departments")
	if out := render(t, ctx, DepartmentsPage(DepartmentsVModel{})); !strings.Contains(out, "No departments found.") {
		t.Fatalf("expected empty state:\n%s", out)
	}
	if out := render(t, ctx, DepartmentsPage(DepartmentsVModel{Failed: true})); !strings.Contains(out, "unavailable") {
		t.Fatalf("expected failure state:\n%s", out)
	}
}

func TestDashboardPage(t *testing.T) {
	ctx := requestContext(t, "/dashboard")
	out := render(t, ctx, DashboardPage(DashboardVModel{User: &api.User{Name: "Ada", Roles: []string{"admin"}}}))
	if !strings.Contains(out, "Welcome, Ada") || !strings.Contains(out, `href="/departments"`) {
		t.Fatalf("unexpected dashboard:\n%s", out)
	}
	if strings.Contains(out, `href="/dashboard"`) {
		t.Fatalf("dashboard should not link to itself:\n%s", out)
	}
}
