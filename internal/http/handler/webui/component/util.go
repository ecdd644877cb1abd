package component

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/pkg/errors"

	"github.com/goliatone/go-batmanform/internal/http/httpctx"
	httpURL "github.com/goliatone/go-batmanform/internal/http/url"
)

var WithPath = httpURL.WithPath

// BaseURL resolves a link relative to the dashboard root.
func BaseURL(ctx context.Context, funcs ...httpURL.MutationFunc) templ.SafeURL {
	mutated := httpURL.Mutate(httpctx.BaseURL(ctx), funcs...)
	return templ.URL(mutated.String())
}

// Link resolves elems below the dashboard root path.
func Link(ctx context.Context, elems ...string) string {
	base := httpctx.BaseURL(ctx)
	parts := append([]string{"/", base.Path}, elems...)
	return string(BaseURL(ctx, WithPath(parts...), httpURL.WithValuesReset()))
}

// MatchPath reports whether the current request targets path.
func MatchPath(ctx context.Context, path string) bool {
	return httpctx.CurrentURL(ctx).Path == path
}

// writer accumulates the first write error so components read linearly.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(parts ...string) {
	for _, part := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.w, part)
	}
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

func (w *writer) attr(name, value string) {
	w.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (w *writer) child(ctx context.Context, c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

func (w *writer) done() error {
	return errors.WithStack(w.err)
}

func classes(parts ...string) string {
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
