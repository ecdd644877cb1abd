package vanilla_test

import (
	"io"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-batmanform/pkg/model"
	"github.com/goliatone/go-batmanform/pkg/render"
	"github.com/goliatone/go-batmanform/pkg/renderers/vanilla"
	"github.com/goliatone/go-batmanform/pkg/testsupport"
)

func newRenderer(t *testing.T, options ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func renderString(t *testing.T, renderer *vanilla.Renderer, schema model.FormSchema, opts render.RenderOptions) string {
	t.Helper()
	output, err := renderer.Render(testsupport.Context(), schema, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(output)
}

func assertInOrder(t *testing.T, html string, fragments ...string) {
	t.Helper()
	offset := 0
	for _, fragment := range fragments {
		idx := strings.Index(html[offset:], fragment)
		if idx < 0 {
			t.Fatalf("expected %q after offset %d in:\n%s", fragment, offset, html)
		}
		offset += idx + len(fragment)
	}
}

func TestRenderDepartmentForm(t *testing.T) {
	html := renderString(t, newRenderer(t), testsupport.DepartmentSchema(), render.RenderOptions{})

	if got := strings.Count(html, `<div class="batman-field">`); got != 3 {
		t.Fatalf("expected 3 labelled fields, got %d:\n%s", got, html)
	}
	assertInOrder(t, html,
		`<label for="name"`, `id="name" name="name"`,
		`<label for="code"`, `id="code" name="code"`,
		`<label for="school"`, `<select id="school" name="school"`,
		`<button type="reset"`, `>Clear</button>`,
		`<button type="submit"`, `>Add</button>`,
		`</form>`,
	)
	if !strings.Contains(html, `<option value="school_2" selected>School 2</option>`) {
		t.Fatalf("expected default pair to select school_2:\n%s", html)
	}
	if strings.Contains(html, `<option value="school_1" selected>`) {
		t.Fatalf("only the default option may be selected:\n%s", html)
	}
	if !strings.Contains(html, `<div class="grid gap-4 md:grid-cols-2">`) {
		t.Fatalf("expected two-column grid row:\n%s", html)
	}
	if !strings.Contains(html, `<h2 class="batman-title mb-4 text-xl font-semibold text-center">Add Department</h2>`) {
		t.Fatalf("expected centered heading:\n%s", html)
	}
	if !strings.Contains(html, `<input type="hidden" name="__form" value="department">`) {
		t.Fatalf("expected form id hidden field:\n%s", html)
	}
	if !strings.Contains(html, `method="post"`) {
		t.Fatalf("expected post method:\n%s", html)
	}
}

func TestRenderButtonCaptions(t *testing.T) {
	schema := model.FormSchema{Fields: []model.FieldNode{
		model.Leaf(model.FieldSchema{Type: model.FieldTypeSubmit, DefaultValue: model.Scalar("Save")}),
		model.Leaf(model.FieldSchema{Type: model.FieldTypeSubmit, Placeholder: "Send"}),
		model.Leaf(model.FieldSchema{Type: model.FieldTypeReset}),
		model.Leaf(model.FieldSchema{Type: model.FieldTypeSubmit, Label: "Labelled"}),
	}}
	html := renderString(t, newRenderer(t), schema, render.RenderOptions{})
	assertInOrder(t, html,
		`>Save</button>`,
		`>Send</button>`,
		`<button type="reset"`, `>Reset</button>`,
		`<label for="undefined" class="batman-label">Labelled</label>`, `>Submit</button>`,
	)
}

func TestRenderTextValuePrecedence(t *testing.T) {
	schema := model.FormSchema{Fields: []model.FieldNode{
		model.Leaf(model.FieldSchema{Name: "controlled", DefaultValue: model.Scalar("default")}),
		model.Leaf(model.FieldSchema{Type: model.FieldTypeEmail, Name: "fallback", DefaultValue: model.Scalar("a@b.c")}),
		model.Leaf(model.FieldSchema{Type: model.FieldTypeText, Name: "empty"}),
	}}
	html := renderString(t, newRenderer(t), schema, render.RenderOptions{
		Values: render.StaticValues{"controlled": "typed"},
	})

	assertInOrder(t, html,
		`<input type="text" id="controlled" name="controlled" value="typed"`,
		`<input type="email" id="fallback" name="fallback" value="a@b.c"`,
		`<input type="text" id="empty" name="empty" value=""`,
	)
}

func TestRenderPasswordToggle(t *testing.T) {
	schema := model.FormSchema{Fields: []model.FieldNode{
		model.Leaf(model.FieldSchema{Type: model.FieldTypePassword, Name: "password", Label: "Password"}),
		model.Leaf(model.FieldSchema{Type: model.FieldTypePassword, Name: "confirm", Label: "Confirm"}),
	}}
	renderer := newRenderer(t)
	state := render.NewState()

	html := renderString(t, renderer, schema, render.RenderOptions{State: state})
	assertInOrder(t, html, `type="password" id="password"`, `type="password" id="confirm"`)
	if !strings.Contains(html, `class="batman-default-submit" hidden`) {
		t.Fatalf("expected default submit guard ahead of toggles:\n%s", html)
	}

	state.TogglePassword("password")
	html = renderString(t, renderer, schema, render.RenderOptions{State: state})
	assertInOrder(t, html, `type="text" id="password"`, `aria-pressed="true"`, `type="password" id="confirm"`)
	if !strings.Contains(html, `<input type="hidden" name="__visible" value="password">`) {
		t.Fatalf("expected visibility carried in hidden field:\n%s", html)
	}

	state.TogglePassword("password")
	html = renderString(t, renderer, schema, render.RenderOptions{State: state})
	assertInOrder(t, html, `type="password" id="password"`, `type="password" id="confirm"`)
	if strings.Contains(html, `name="__visible"`) {
		t.Fatalf("no visibility field expected when all masked:\n%s", html)
	}
}

func TestRenderMissingNameUsesUndefined(t *testing.T) {
	schema := model.FormSchema{Fields: []model.FieldNode{
		model.Leaf(model.FieldSchema{Label: "Nameless"}),
	}}
	html := renderString(t, newRenderer(t), schema, render.RenderOptions{})
	if !strings.Contains(html, `<label for="undefined"`) || !strings.Contains(html, `name="undefined"`) {
		t.Fatalf("expected undefined key:\n%s", html)
	}
}

func TestRenderUnknownTypeRendersNothing(t *testing.T) {
	schema := model.FormSchema{Fields: []model.FieldNode{
		model.Leaf(model.FieldSchema{Type: "checkbox", Name: "agree", Label: "Agree"}),
		model.Leaf(model.FieldSchema{Name: "kept"}),
	}}
	html := renderString(t, newRenderer(t), schema, render.RenderOptions{})
	if strings.Contains(html, "agree") || strings.Contains(html, "Agree") {
		t.Fatalf("unknown type leaked into output:\n%s", html)
	}
	if !strings.Contains(html, `name="kept"`) {
		t.Fatalf("known sibling missing:\n%s", html)
	}
}

func TestRenderNestedGroupsUseTable(t *testing.T) {
	leaf := func(name string) model.FieldNode { return model.Leaf(model.FieldSchema{Name: name}) }
	schema := model.FormSchema{Fields: []model.FieldNode{
		model.Group(leaf("a"), leaf("b"), leaf("c"), model.Group(leaf("d"), leaf("e"), leaf("f"), leaf("g"), leaf("h"))),
	}}
	html := renderString(t, newRenderer(t), schema, render.RenderOptions{})
	assertInOrder(t, html,
		`<div class="grid gap-4 md:grid-cols-5">`, `name="a"`,
		`<div class="grid gap-4 md:grid-cols-4">`, `name="d"`, `name="h"`, `</div>`, `</div>`,
	)
}

func TestRenderRequiredMarkerAndEscaping(t *testing.T) {
	schema := model.FormSchema{
		Title: &model.Title{Label: "Students", Align: model.AlignRight},
		Fields: []model.FieldNode{
			model.Leaf(model.FieldSchema{Name: "bio", Type: model.FieldTypeTextarea, Label: `<b>Bio</b>`, Required: true, DefaultValue: model.Scalar(`"quoted" & <tag>`)}),
		},
	}
	html := renderString(t, newRenderer(t), schema, render.RenderOptions{})
	if !strings.Contains(html, `class="batman-label batman-label--required">&lt;b&gt;Bio&lt;/b&gt;</label>`) {
		t.Fatalf("expected escaped required label:\n%s", html)
	}
	if strings.Contains(html, `aria-required`) {
		t.Fatalf("required marker must stay decorative:\n%s", html)
	}
	if strings.Contains(html, `<tag>`) {
		t.Fatalf("textarea value must be escaped:\n%s", html)
	}
	if !strings.Contains(html, `text-right">Students</h2>`) {
		t.Fatalf("expected right aligned heading:\n%s", html)
	}
}

func TestRenderSelectPlaceholder(t *testing.T) {
	schema := model.FormSchema{Fields: []model.FieldNode{
		model.Leaf(model.FieldSchema{Type: model.FieldTypeSelect, Name: "course", Placeholder: "Pick one", Options: []model.Option{{ID: "c1", Value: "Course 1"}}}),
	}}
	html := renderString(t, newRenderer(t), schema, render.RenderOptions{})
	if !strings.Contains(html, `<option value="" disabled selected>Pick one</option><option value="c1">Course 1</option>`) {
		t.Fatalf("expected placeholder option:\n%s", html)
	}
}

func TestRenderHiddenActionAndTheme(t *testing.T) {
	schema := model.FormSchema{Fields: []model.FieldNode{model.Leaf(model.FieldSchema{Name: "name"})}}
	html := renderString(t, newRenderer(t, vanilla.WithFormClass("space-y-6")), schema, render.RenderOptions{
		Action: "/departments/new",
		Method: "GET",
		Hidden: []render.HiddenField{render.CSRFToken("_csrf", "token")},
		Theme: &theme.RendererConfig{
			Theme:   "acme",
			Variant: "dark",
			CSSVars: map[string]string{"--brand": "#123456"},
			AssetURL: func(key string) string {
				return "/themes/acme/" + key
			},
		},
	})
	assertInOrder(t, html,
		`<link rel="stylesheet" href="/themes/acme/batmanform.stylesheet">`,
		`<form class="batman-form space-y-6" method="get" action="/departments/new" data-theme="acme" data-theme-variant="dark" style="--brand: #123456">`,
		`<input type="hidden" name="_csrf" value="token">`,
		`name="name"`,
	)
}

func TestRenderHonoursContext(t *testing.T) {
	ctx, cancel := testsupport.CancelledContext()
	defer cancel()
	if _, err := newRenderer(t).Render(ctx, testsupport.DepartmentSchema(), render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}

type recordingTemplates struct {
	names []string
}

func (r *recordingTemplates) RenderTemplate(name string, _ any, _ ...io.Writer) (string, error) {
	r.names = append(r.names, name)
	return "<x>", nil
}

func (r *recordingTemplates) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (r *recordingTemplates) RegisterFilter(string, func(any, any) (any, error)) error { return nil }

func (r *recordingTemplates) GlobalContext(any) error { return nil }

func TestRenderThemePartialOverrides(t *testing.T) {
	templates := &recordingTemplates{}
	renderer := newRenderer(t, vanilla.WithTemplateRenderer(templates))

	schema := model.FormSchema{Fields: []model.FieldNode{
		model.Leaf(model.FieldSchema{Name: "name"}),
		model.Leaf(model.FieldSchema{Type: model.FieldTypeSelect, Name: "school"}),
	}}
	_, err := renderer.Render(testsupport.Context(), schema, render.RenderOptions{
		Theme: &theme.RendererConfig{Partials: map[string]string{
			"forms.input": "themes/acme/input.tmpl",
			"forms.form":  "themes/acme/form.tmpl",
		}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := []string{"themes/acme/input.tmpl", "templates/components/select.tmpl", "themes/acme/form.tmpl"}
	if strings.Join(templates.names, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected templates %v", templates.names)
	}
}
