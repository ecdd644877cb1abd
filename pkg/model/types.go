package model

import "strings"

// FieldType enumerates the input variants a leaf can declare.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypePassword FieldType = "password"
	FieldTypeSelect   FieldType = "select"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSubmit   FieldType = "submit"
	FieldTypeReset    FieldType = "reset"
)

// Normalized lowercases the type and maps the empty value to text.
func (t FieldType) Normalized() FieldType {
	trimmed := FieldType(strings.ToLower(strings.TrimSpace(string(t))))
	if trimmed == "" {
		return FieldTypeText
	}
	return trimmed
}

// Known reports whether the type is one of the supported variants.
func (t FieldType) Known() bool {
	switch t.Normalized() {
	case FieldTypeText, FieldTypeEmail, FieldTypePassword, FieldTypeSelect,
		FieldTypeTextarea, FieldTypeSubmit, FieldTypeReset:
		return true
	default:
		return false
	}
}

// IsButton reports whether the type renders a native form button.
func (t FieldType) IsButton() bool {
	switch t.Normalized() {
	case FieldTypeSubmit, FieldTypeReset:
		return true
	default:
		return false
	}
}

// Option is one entry of a select field. ID is the submitted value and Value
// the displayed text.
type Option struct {
	ID    string `json:"id" yaml:"id"`
	Value string `json:"value" yaml:"value"`
}

// DefaultValue holds either a raw scalar or a select-style {value, label}
// pair. Renderers only ever consume Value.
type DefaultValue struct {
	Value string
	Label string
	// Pair is true when the default was declared as a {value, label} object.
	Pair bool
}

// Scalar wraps a raw default value.
func Scalar(value string) *DefaultValue {
	return &DefaultValue{Value: value}
}

// Pair wraps a select-style default value.
func Pair(value, label string) *DefaultValue {
	return &DefaultValue{Value: value, Label: label, Pair: true}
}

// Unwrap returns the .value member of a pair or the scalar itself. A nil
// receiver unwraps to the empty string.
func (d *DefaultValue) Unwrap() string {
	if d == nil {
		return ""
	}
	return d.Value
}

// FieldSchema describes one renderable input.
type FieldSchema struct {
	Type         FieldType     `json:"type,omitempty" yaml:"type,omitempty"`
	Name         string        `json:"name,omitempty" yaml:"name,omitempty"`
	Label        string        `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder  string        `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required     bool          `json:"required,omitempty" yaml:"required,omitempty"`
	ClassName    string        `json:"className,omitempty" yaml:"className,omitempty"`
	DefaultValue *DefaultValue `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Options      []Option      `json:"options,omitempty" yaml:"options,omitempty"`
}

// HasLabel reports whether the leaf should be passed through the label
// wrapper.
func (f FieldSchema) HasLabel() bool {
	return strings.TrimSpace(f.Label) != ""
}

// Align positions the form heading.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// OrDefault returns the alignment, ignoring case and surrounding space, and
// falls back to center for empty or unrecognised values.
func (a Align) OrDefault() Align {
	switch Align(strings.ToLower(strings.TrimSpace(string(a)))) {
	case AlignLeft:
		return AlignLeft
	case AlignRight:
		return AlignRight
	default:
		return AlignCenter
	}
}

// Title is the optional form heading.
type Title struct {
	Label string `json:"label" yaml:"label"`
	Align Align  `json:"align,omitempty" yaml:"align,omitempty" validate:"omitempty,oneof=left center right"`
}

// FormSchema is the top-level declarative form description.
type FormSchema struct {
	ID     string      `json:"id,omitempty" yaml:"id,omitempty"`
	Title  *Title      `json:"title,omitempty" yaml:"title,omitempty"`
	Fields []FieldNode `json:"fields" yaml:"fields"`
}
