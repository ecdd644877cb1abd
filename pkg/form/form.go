package form

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-batmanform/pkg/model"
	"github.com/goliatone/go-batmanform/pkg/render"
)

var (
	// ErrNoRenderer is returned by New when no renderer is configured.
	ErrNoRenderer = errors.New("form: renderer is required")
	// ErrUncontrolled is returned by Set on a form without a value source.
	ErrUncontrolled = errors.New("form: form is uncontrolled")
	// ErrUnknownField is returned by Set for names the schema does not
	// declare.
	ErrUnknownField = errors.New("form: unknown field")
)

// Form binds a schema to a renderer, a value source and ephemeral state.
type Form struct {
	schema   model.FormSchema
	renderer render.Renderer

	values render.ValueSource
	sink   render.ValueSink
	cell   *render.Cell
	state  *render.State

	onSubmit SubmitHandler
	onSelect SelectHandler

	action   string
	method   string
	hidden   []render.HiddenField
	redirect string
	theme    *theme.RendererConfig
	selector *themeRequest
}

// New builds a form shell for schema.
func New(schema model.FormSchema, options ...Option) (*Form, error) {
	f := &Form{schema: schema, state: render.NewState()}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	if f.renderer == nil {
		return nil, ErrNoRenderer
	}

	if req := f.selector; req != nil && f.theme == nil {
		cfg, err := render.SelectTheme(req.selector, req.name, req.variant, req.fallbacks)
		if err != nil {
			return nil, fmt.Errorf("form: %w", err)
		}
		f.theme = cfg
	}
	return f, nil
}

// Schema returns the schema the form renders.
func (f *Form) Schema() model.FormSchema {
	return f.schema
}

// Controlled reports whether the form has a value source.
func (f *Form) Controlled() bool {
	return f.values != nil
}

// Render emits the form with the current values and password state.
func (f *Form) Render(ctx context.Context) ([]byte, error) {
	return f.renderer.Render(ctx, f.schema, f.renderOptions(f.values, f.state))
}

// ContentType reports the renderer's content type.
func (f *Form) ContentType() string {
	return f.renderer.ContentType()
}

// TogglePassword flips the visibility of the named password field and returns
// the new value. Names that are not password fields stay masked.
func (f *Form) TogglePassword(name string) bool {
	if !f.isPassword(name) {
		return false
	}
	return f.state.TogglePassword(name)
}

// PasswordVisible reports whether the named password renders in clear text.
func (f *Form) PasswordVisible(name string) bool {
	return f.state.PasswordVisible(name)
}

// Value resolves the current value of a field: the controlled value, then the
// unwrapped default, then "".
func (f *Form) Value(name string) string {
	field, ok := f.schema.Lookup(name)
	if !ok {
		if f.values != nil {
			value, _ := f.values.Value(name)
			return value
		}
		return ""
	}
	return render.ResolveValue(field, f.values)
}

// Set writes a controlled value. Select fields notify the select handler.
func (f *Form) Set(name, value string) error {
	if f.sink == nil {
		return ErrUncontrolled
	}
	field, ok := f.lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	f.sink.SetValue(name, value)
	if field.Type.Normalized() == model.FieldTypeSelect && f.onSelect != nil {
		f.onSelect(value, name)
	}
	return nil
}

// Values collects the current values of every interactive field.
func (f *Form) Values() map[string]string {
	return render.Collect(f.schema, f.values)
}

// Reset masks every password and restores defaults. A shell-owned cell is
// cleared; a caller accessor receives each field's unwrapped default.
func (f *Form) Reset() {
	f.state.Reset()
	switch {
	case f.cell != nil:
		f.cell.Clear()
	case f.sink != nil:
		model.Walk(f.schema.Fields, func(field model.FieldSchema, _ int) {
			if interactive(field) {
				f.sink.SetValue(render.FieldKey(field), field.DefaultValue.Unwrap())
			}
		})
	}
}

// Submit collects the current values and hands them to the submit handler.
func (f *Form) Submit(ctx context.Context) (map[string]string, error) {
	values := f.Values()
	return values, f.submit(ctx, values)
}

func (f *Form) submit(ctx context.Context, values map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.onSubmit == nil {
		return nil
	}
	if err := f.onSubmit(ctx, values); err != nil {
		return fmt.Errorf("form: submit: %w", err)
	}
	return nil
}

func (f *Form) renderOptions(values render.ValueSource, state *render.State) render.RenderOptions {
	return render.RenderOptions{
		Values: values,
		State:  state,
		Action: f.action,
		Method: f.method,
		Hidden: append(append([]render.HiddenField(nil), f.hidden...), render.SelectSnapshot(f.schema, values)),
		Theme:  f.theme,
	}
}

// lookup accepts MissingNameKey for the first unnamed interactive field.
func (f *Form) lookup(name string) (model.FieldSchema, bool) {
	var (
		found model.FieldSchema
		ok    bool
	)
	model.Walk(f.schema.Fields, func(field model.FieldSchema, _ int) {
		if !ok && interactive(field) && render.FieldKey(field) == name {
			found, ok = field, true
		}
	})
	return found, ok
}

func (f *Form) isPassword(name string) bool {
	field, ok := f.lookup(name)
	return ok && field.Type.Normalized() == model.FieldTypePassword
}

func interactive(field model.FieldSchema) bool {
	return field.Type.Known() && !field.Type.IsButton()
}
