package vanilla

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-batmanform/pkg/layout"
	"github.com/goliatone/go-batmanform/pkg/model"
	"github.com/goliatone/go-batmanform/pkg/render"
	"github.com/goliatone/go-batmanform/pkg/render/template"
	"github.com/goliatone/go-batmanform/pkg/renderers/vanilla/components"
)

// componentRenderer expands one schema tree for a single Render call.
type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry
	partials  map[string]string
	values    render.ValueSource
	state     *render.State

	hasPassword bool
}

func (r *componentRenderer) renderNodes(b *strings.Builder, nodes []model.FieldNode) error {
	for _, node := range nodes {
		switch {
		case node.IsLeaf():
			markup, err := r.renderLeaf(*node.Field)
			if err != nil {
				return err
			}
			if markup != "" {
				b.WriteString(markup)
				b.WriteByte('\n')
			}
		case node.IsGroup():
			if err := r.renderGroup(b, node.Group); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *componentRenderer) renderGroup(b *strings.Builder, group []model.FieldNode) error {
	class := string(ClassGrid)
	if cols := layout.ColumnClass(len(group)); cols != "" {
		class += " " + cols
	}
	b.WriteString(`<div class="`)
	b.WriteString(class)
	b.WriteString("\">\n")
	if err := r.renderNodes(b, group); err != nil {
		return err
	}
	b.WriteString("</div>\n")
	return nil
}

// renderLeaf dispatches on the field type. Types without a registered
// component render nothing.
func (r *componentRenderer) renderLeaf(field model.FieldSchema) (string, error) {
	kind := field.Type.Normalized()
	descriptor, ok := r.registry.Descriptor(string(kind))
	if !ok {
		return "", nil
	}

	key := render.FieldKey(field)
	data := components.ComponentData{
		Template: r.templates,
		Name:     key,
		Value:    render.ResolveValue(field, r.values),
		Partials: r.partials,
	}
	if kind == model.FieldTypePassword {
		data.Visible = r.state.PasswordVisible(key)
		r.hasPassword = true
	}

	var control bytes.Buffer
	if err := descriptor.Renderer(&control, field, data); err != nil {
		return "", fmt.Errorf("render component %q for field %q: %w", descriptor.Name, key, err)
	}

	if !field.HasLabel() {
		return control.String(), nil
	}
	return buildFieldMarkup(field, key, control.String()), nil
}

// buildFieldMarkup wraps a control with its label. The required marker is a
// class the stylesheet decorates with a leading asterisk.
func buildFieldMarkup(field model.FieldSchema, key, control string) string {
	var builder strings.Builder
	builder.Grow(len(control) + 160)

	builder.WriteString(`<div class="`)
	builder.WriteString(string(ClassField))
	builder.WriteString("\">\n")

	builder.WriteString(`  <label for="`)
	builder.WriteString(html.EscapeString(key))
	builder.WriteString(`" class="`)
	builder.WriteString(string(ClassLabel))
	if field.Required {
		builder.WriteByte(' ')
		builder.WriteString(string(ClassLabelRequired))
	}
	builder.WriteString(`">`)
	builder.WriteString(html.EscapeString(strings.TrimSpace(field.Label)))
	builder.WriteString("</label>\n")

	builder.WriteString("  ")
	builder.WriteString(control)
	builder.WriteByte('\n')

	builder.WriteString("</div>")
	return builder.String()
}
