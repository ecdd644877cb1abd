// Package batmanform renders schema-driven forms. It wires the built-in
// renderers and exposes the embedded schemas and templates so callers can
// render a form in one call.
package batmanform

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"github.com/goliatone/go-batmanform/pkg/model"
	pkgopenapi "github.com/goliatone/go-batmanform/pkg/openapi"
	"github.com/goliatone/go-batmanform/pkg/render"
	"github.com/goliatone/go-batmanform/pkg/renderers/tui"
	"github.com/goliatone/go-batmanform/pkg/renderers/vanilla"
	"github.com/goliatone/go-batmanform/pkg/schema"
)

// Renderer names registered by NewRegistry.
const (
	RendererVanilla = "vanilla"
	RendererTUI     = "tui"
)

// FormSchema aliases model.FormSchema for callers that only import the root
// package.
type FormSchema = model.FormSchema

// RenderOptions describes per-call values, state and theme overrides.
type RenderOptions = render.RenderOptions

// NewRegistry returns a registry holding the vanilla renderer, as default,
// and the terminal renderer configured with tuiOptions.
func NewRegistry(tuiOptions ...tui.Option) (*render.Registry, error) {
	html, err := vanilla.New()
	if err != nil {
		return nil, fmt.Errorf("batmanform: vanilla renderer: %w", err)
	}
	terminal, err := tui.New(tuiOptions...)
	if err != nil {
		return nil, fmt.Errorf("batmanform: tui renderer: %w", err)
	}

	registry := render.NewRegistry()
	registry.MustRegister(html)
	registry.MustRegister(terminal)
	return registry, nil
}

// RenderSchema renders schema with the named renderer. An empty name picks
// the registry default.
func RenderSchema(ctx context.Context, registry *render.Registry, rendererName string, schema FormSchema, opts RenderOptions) ([]byte, error) {
	if registry == nil {
		return nil, fmt.Errorf("batmanform: registry is required")
	}
	renderer, err := registry.Get(rendererName)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, schema, opts)
}

// RenderEmbedded renders one of the embedded dashboard schemas by id.
func RenderEmbedded(ctx context.Context, id, rendererName string) ([]byte, error) {
	store, err := schema.Embedded()
	if err != nil {
		return nil, err
	}
	form, err := store.Lookup(id)
	if err != nil {
		return nil, err
	}
	registry, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	return RenderSchema(ctx, registry, rendererName, form, RenderOptions{})
}

// RenderOperation loads an OpenAPI document, builds a form from the request
// body of operationID and renders it.
func RenderOperation(ctx context.Context, src pkgopenapi.Source, operationID, rendererName string, options ...pkgopenapi.BuildOption) ([]byte, error) {
	doc, err := pkgopenapi.NewLoader(pkgopenapi.WithHTTPFallback(30*time.Second)).Load(ctx, src)
	if err != nil {
		return nil, err
	}
	form, err := pkgopenapi.FromDocument(ctx, doc, operationID, options...)
	if err != nil {
		return nil, err
	}
	registry, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	return RenderSchema(ctx, registry, rendererName, form, RenderOptions{})
}

// EmbeddedTemplates exposes the vanilla renderer templates so callers can
// extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedSchemas exposes the dashboard form definitions.
func EmbeddedSchemas() fs.FS {
	return schema.EmbeddedFS()
}
