package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-batmanform/pkg/model"
	"github.com/goliatone/go-batmanform/pkg/render"
)

const templatePrefix = "templates/components/"

// Theme partial keys for the built-in components.
const (
	PartialInput    = "forms.input"
	PartialPassword = "forms.password"
	PartialSelect   = "forms.select"
	PartialTextarea = "forms.textarea"
	PartialButton   = "forms.button"
)

const (
	inputClass  = "batman-input w-full rounded-md border border-gray-300 px-3 py-2"
	buttonClass = "batman-button rounded-md px-4 py-2"
)

// NewDefaultRegistry returns a registry with one component per supported
// field type.
func NewDefaultRegistry() *Registry {
	registry := New()

	input := templateComponentRenderer(PartialInput, templatePrefix+"input.tmpl", inputPayload)
	registry.MustRegister(NameText, Descriptor{PartialKey: PartialInput, Renderer: input})
	registry.MustRegister(NameEmail, Descriptor{PartialKey: PartialInput, Renderer: input})
	registry.MustRegister(NamePassword, Descriptor{
		PartialKey: PartialPassword,
		Renderer:   templateComponentRenderer(PartialPassword, templatePrefix+"password.tmpl", passwordPayload),
	})
	registry.MustRegister(NameSelect, Descriptor{
		PartialKey: PartialSelect,
		Renderer:   templateComponentRenderer(PartialSelect, templatePrefix+"select.tmpl", selectPayload),
	})
	registry.MustRegister(NameTextarea, Descriptor{
		PartialKey: PartialTextarea,
		Renderer:   templateComponentRenderer(PartialTextarea, templatePrefix+"textarea.tmpl", inputPayload),
	})

	button := templateComponentRenderer(PartialButton, templatePrefix+"button.tmpl", buttonPayload)
	registry.MustRegister(NameSubmit, Descriptor{PartialKey: PartialButton, Renderer: button})
	registry.MustRegister(NameReset, Descriptor{PartialKey: PartialButton, Renderer: button})

	return registry
}

// DefaultPartials maps every built-in partial key to its embedded template.
// It doubles as the fallback set when deriving a theme configuration.
func DefaultPartials() map[string]string {
	return map[string]string{
		PartialInput:    templatePrefix + "input.tmpl",
		PartialPassword: templatePrefix + "password.tmpl",
		PartialSelect:   templatePrefix + "select.tmpl",
		PartialTextarea: templatePrefix + "textarea.tmpl",
		PartialButton:   templatePrefix + "button.tmpl",
	}
}

type payloadFunc func(field model.FieldSchema, data ComponentData) map[string]any

func templateComponentRenderer(partialKey, templateName string, payload payloadFunc) Renderer {
	return func(buf *bytes.Buffer, field model.FieldSchema, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolved := templateName
		if candidate := strings.TrimSpace(data.Partials[partialKey]); candidate != "" {
			resolved = candidate
		}

		rendered, err := data.Template.RenderTemplate(resolved, payload(field, data))
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolved, err)
		}
		buf.WriteString(strings.TrimSpace(rendered))
		return nil
	}
}

func basePayload(field model.FieldSchema, data ComponentData) map[string]any {
	return map[string]any{
		"field": field,
		"id":    data.Name,
		"name":  data.Name,
		"value": data.Value,
		"class": joinClasses(inputClass, field.ClassName),
	}
}

func inputPayload(field model.FieldSchema, data ComponentData) map[string]any {
	payload := basePayload(field, data)
	inputType := "text"
	if field.Type.Normalized() == model.FieldTypeEmail {
		inputType = "email"
	}
	payload["type"] = inputType
	return payload
}

func passwordPayload(field model.FieldSchema, data ComponentData) map[string]any {
	payload := basePayload(field, data)
	payload["visible"] = data.Visible
	return payload
}

func selectPayload(field model.FieldSchema, data ComponentData) map[string]any {
	payload := basePayload(field, data)
	options := make([]map[string]any, 0, len(field.Options))
	for _, option := range field.Options {
		options = append(options, map[string]any{
			"id":       option.ID,
			"value":    option.Value,
			"selected": option.ID == data.Value,
		})
	}
	payload["options"] = options
	return payload
}

func buttonPayload(field model.FieldSchema, _ ComponentData) map[string]any {
	kind := field.Type.Normalized()
	variant := "batman-button--primary bg-blue-600 text-white"
	if kind == model.FieldTypeReset {
		variant = "batman-button--secondary border border-gray-300"
	}
	return map[string]any{
		"field":   field,
		"type":    string(kind),
		"name":    field.Name,
		"caption": render.ButtonCaption(field),
		"class":   joinClasses(buttonClass, variant, field.ClassName),
	}
}

func joinClasses(parts ...string) string {
	var tokens []string
	for _, part := range parts {
		tokens = append(tokens, strings.Fields(part)...)
	}
	return strings.Join(tokens, " ")
}
