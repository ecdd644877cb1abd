package form

import (
	"context"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-batmanform/pkg/render"
)

// SubmitHandler receives the collected values keyed by field name.
type SubmitHandler func(ctx context.Context, values map[string]string) error

// SelectHandler is invoked with the new option id and the field name when a
// select changes.
type SelectHandler func(value, name string)

// Option configures a Form.
type Option func(*Form)

// WithRenderer sets the renderer used by Render and ServeHTTP. Required.
func WithRenderer(renderer render.Renderer) Option {
	return func(f *Form) {
		f.renderer = renderer
	}
}

// WithValues makes the form controlled by a shell-owned cell.
func WithValues(cell *render.Cell) Option {
	return func(f *Form) {
		if cell == nil {
			return
		}
		f.values = cell
		f.sink = cell
		f.cell = cell
	}
}

// WithAccessor makes the form controlled by a caller-owned get/set pair.
func WithAccessor(accessor render.Accessor) Option {
	return func(f *Form) {
		f.values = accessor
		f.sink = accessor
		f.cell = nil
	}
}

// WithSubmitHandler registers the submission callback.
func WithSubmitHandler(fn SubmitHandler) Option {
	return func(f *Form) {
		f.onSubmit = fn
	}
}

// WithSelectHandler registers the select-change callback.
func WithSelectHandler(fn SelectHandler) Option {
	return func(f *Form) {
		f.onSelect = fn
	}
}

// WithAction sets the form action URL.
func WithAction(action string) Option {
	return func(f *Form) {
		f.action = strings.TrimSpace(action)
	}
}

// WithMethod sets the form method (get or post).
func WithMethod(method string) Option {
	return func(f *Form) {
		f.method = method
	}
}

// WithHidden appends hidden fields rendered on every request.
func WithHidden(fields ...render.HiddenField) Option {
	return func(f *Form) {
		f.hidden = append(f.hidden, fields...)
	}
}

// WithRedirect answers successful HTTP submissions with 303 See Other.
func WithRedirect(location string) Option {
	return func(f *Form) {
		f.redirect = strings.TrimSpace(location)
	}
}

// WithTheme applies a resolved theme configuration.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(f *Form) {
		f.theme = cfg
	}
}

// WithThemeSelector resolves the theme when the form is built. Partials the
// theme does not define fall back to fallbacks.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string, fallbacks map[string]string) Option {
	return func(f *Form) {
		f.selector = &themeRequest{selector: selector, name: name, variant: variant, fallbacks: fallbacks}
	}
}

type themeRequest struct {
	selector  theme.ThemeSelector
	name      string
	variant   string
	fallbacks map[string]string
}
