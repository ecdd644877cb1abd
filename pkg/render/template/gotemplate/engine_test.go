package gotemplate_test

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-batmanform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-batmanform/pkg/testsupport"
)

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	files := fstest.MapFS{
		"hello.tmpl":      {Data: []byte(`Hello {{ name }}!`)},
		"use-global.tmpl": {Data: []byte(`env={{ settings.env }}`)},
		"use-filter.tmpl": {Data: []byte(`{{ name|shout }}`)},
		"escape.tmpl":     {Data: []byte(`<b>{{ value }}</b>`)},
		"struct.tmpl":     {Data: []byte(`{{ field.name }}/{{ field.placeholder }}`)},
		"classes.tmpl":    {Data: []byte(`{{ "batman-input"|classes:extra }}`)},
	}
	engine, err := gotemplate.New(gotemplate.WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngineRenderTemplateWritesEveryWriter(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})
	if result != "Hello Ada!" {
		t.Fatalf("unexpected result %q", result)
	}
	if written != result {
		t.Fatalf("writer mismatch: %q vs %q", written, result)
	}
}

func TestEngineGlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	got, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngineRegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	got, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ADA!" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngineEscapesValues(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderTemplate("escape", map[string]any{"value": `<script>"x"</script>`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Fatalf("expected escaped output, got %q", got)
	}
}

func TestEngineUsesJSONFieldNames(t *testing.T) {
	type field struct {
		Name        string `json:"name"`
		Placeholder string `json:"placeholder"`
	}
	engine := newEngine(t)
	got, err := engine.RenderTemplate("struct", map[string]any{"field": field{Name: "code", Placeholder: "CSE"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "code/CSE" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngineClassesFilter(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderTemplate("classes", map[string]any{"extra": "  w-full   mt-2 "})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "batman-input w-full mt-2" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngineRenderString(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderString(`{{ a }}-{{ b|trim }}`, map[string]any{"a": "x", "b": "  y  "})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "x-y" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngineRequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template source")
	}
}

func TestEngineMissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected missing template error")
	}
}
