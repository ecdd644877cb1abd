package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-batmanform/pkg/model"
	"github.com/goliatone/go-batmanform/pkg/render"
	rendertemplate "github.com/goliatone/go-batmanform/pkg/render/template"
	gotemplate "github.com/goliatone/go-batmanform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-batmanform/pkg/renderers/vanilla/components"
)

// PartialForm is the theme partial key for the form shell template.
const PartialForm = "forms.form"

const formTemplate = "templates/form.tmpl"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	formClass        string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithRegistry replaces the component registry used for dispatch.
func WithRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithFormClass appends classes to the form element.
func WithFormClass(class string) Option {
	return func(cfg *config) {
		cfg.formClass = strings.TrimSpace(class)
	}
}

// Renderer emits server-side HTML for a FormSchema.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	registry  *components.Registry
	formClass string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	formClass := string(ClassForm)
	if cfg.formClass != "" {
		formClass += " " + cfg.formClass
	}

	return &Renderer{templates: templates, registry: cfg.registry, formClass: formClass}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render expands the schema tree inside a single <form> element.
func (r *Renderer) Render(ctx context.Context, schema model.FormSchema, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	var partials map[string]string
	if opts.Theme != nil {
		partials = opts.Theme.Partials
	}

	tree := &componentRenderer{
		templates: r.templates,
		registry:  r.registry,
		partials:  partials,
		values:    opts.Values,
		state:     opts.State,
	}

	var body strings.Builder
	if err := tree.renderNodes(&body, schema.Fields); err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}

	payload := r.formPayload(schema, opts)
	payload["body"] = body.String()
	payload["default_submit"] = tree.hasPassword

	name := formTemplate
	if candidate := strings.TrimSpace(partials[PartialForm]); candidate != "" {
		name = candidate
	}
	result, err := r.templates.RenderTemplate(name, payload)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) formPayload(schema model.FormSchema, opts render.RenderOptions) map[string]any {
	hidden := append([]render.HiddenField(nil), opts.Hidden...)
	if schema.ID != "" {
		hidden = append(hidden, render.FormID(schema.ID))
	}
	if visible := opts.State.VisiblePasswords(); len(visible) > 0 {
		hidden = append(hidden, render.VisiblePasswordsField(visible))
	}

	hiddenPayload := make([]map[string]string, 0, len(hidden))
	for _, field := range render.SortedHiddenFields(hidden...) {
		hiddenPayload = append(hiddenPayload, map[string]string{"name": field.Name, "value": field.Value})
	}

	payload := map[string]any{
		"class":  r.formClass,
		"method": opts.FormMethod(),
		"action": opts.Action,
		"id":     schema.ID,
		"hidden": hiddenPayload,
	}
	if schema.Title != nil && strings.TrimSpace(schema.Title.Label) != "" {
		payload["title"] = map[string]string{
			"label": strings.TrimSpace(schema.Title.Label),
			"align": string(schema.Title.Align.OrDefault()),
		}
	}
	if cfg := opts.Theme; cfg != nil {
		payload["theme"] = cfg.Theme
		payload["variant"] = cfg.Variant
		payload["style"] = render.CSSVarsStyle(cfg.CSSVars)
		if cfg.AssetURL != nil {
			payload["stylesheet"] = cfg.AssetURL(StylesheetAsset)
		}
	}
	return payload
}
