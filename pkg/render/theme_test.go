package render_test

import (
	"errors"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-batmanform/pkg/render"
)

func acmeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
		Templates: map[string]string{
			"forms.input": "themes/acme/input.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand": "#654321",
				},
				Templates: map[string]string{
					"forms.select": "themes/acme/dark/select.tmpl",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"vendor": "vendor.dark.js",
					},
				},
			},
		},
	}
}

func TestThemeConfigMergesVariant(t *testing.T) {
	cfg, err := render.ThemeConfig(&theme.Selection{Theme: "acme", Variant: "dark", Manifest: acmeManifest()}, map[string]string{
		"forms.textarea": "templates/components/textarea.tmpl",
		"forms.input":    "templates/components/input.tmpl",
	})
	if err != nil {
		t.Fatalf("theme config: %v", err)
	}

	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected identity %s/%s", cfg.Theme, cfg.Variant)
	}
	if got := cfg.Partials["forms.input"]; got != "themes/acme/input.tmpl" {
		t.Fatalf("manifest template should override fallback, got %s", got)
	}
	if got := cfg.Partials["forms.select"]; got != "themes/acme/dark/select.tmpl" {
		t.Fatalf("variant template missing, got %s", got)
	}
	if got := cfg.Partials["forms.textarea"]; got != "templates/components/textarea.tmpl" {
		t.Fatalf("fallback partial missing, got %s", got)
	}
	if got := cfg.CSSVars["--brand"]; got != "#654321" {
		t.Fatalf("css var should come from variant tokens, got %s", got)
	}
	if got := cfg.AssetURL("vendor"); got != "/assets/themes/acme/vendor.dark.js" {
		t.Fatalf("unexpected vendor url %s", got)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/themes/acme/theme.css" {
		t.Fatalf("unexpected stylesheet url %s", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("unknown asset should resolve empty, got %s", got)
	}
}

func TestThemeConfigRequiresManifest(t *testing.T) {
	if _, err := render.ThemeConfig(nil, nil); err == nil {
		t.Fatalf("expected error for nil selection")
	}
	if _, err := render.ThemeConfig(&theme.Selection{Theme: "acme"}, nil); err == nil {
		t.Fatalf("expected error for missing manifest")
	}
}

type stubSelector struct {
	selection *theme.Selection
	err       error
}

func (s stubSelector) Select(_, _ string, _ ...theme.QueryOption) (*theme.Selection, error) {
	return s.selection, s.err
}

func TestSelectTheme(t *testing.T) {
	selector := stubSelector{selection: &theme.Selection{Theme: "acme", Manifest: acmeManifest()}}
	cfg, err := render.SelectTheme(selector, "acme", "", nil)
	if err != nil {
		t.Fatalf("select theme: %v", err)
	}
	if got := cfg.CSSVars["--brand"]; got != "#123456" {
		t.Fatalf("base token expected, got %s", got)
	}

	boom := errors.New("boom")
	if _, err := render.SelectTheme(stubSelector{err: boom}, "acme", "", nil); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped selector error, got %v", err)
	}
}

func TestCSSVarsStyle(t *testing.T) {
	got := render.CSSVarsStyle(map[string]string{"--surface": "#fff", "--brand": "#123"})
	if got != "--brand: #123; --surface: #fff" {
		t.Fatalf("unexpected style %q", got)
	}
}
