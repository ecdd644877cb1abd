package openapi

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-batmanform/pkg/model"
)

// Schema extensions read by the builder.
const (
	// ExtensionOrder lists property names in display order on the request
	// body schema. Unlisted properties follow alphabetically.
	ExtensionOrder = "x-batman-order"
	// ExtensionRow on a property groups it with every other property carrying
	// the same row key into one grid row.
	ExtensionRow = "x-batman-row"
	// ExtensionPlaceholder on a property sets the control placeholder.
	ExtensionPlaceholder = "x-batman-placeholder"
	// ExtensionSubmit on an operation sets the submit button caption.
	ExtensionSubmit = "x-batman-submit"
	// ExtensionSkip on a property leaves it out of the form.
	ExtensionSkip = "x-batman-skip"
)

// DefaultTextareaLength is the maxLength from which strings become a
// textarea.
const DefaultTextareaLength = 256

// ErrOperationNotFound is returned when the document has no operation with
// the requested id.
var ErrOperationNotFound = errors.New("openapi: operation not found")

var requestMediaTypes = []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"}

// BuildOption configures FromDocument.
type BuildOption func(*buildConfig)

type buildConfig struct {
	validate       bool
	reset          bool
	resetCaption   string
	submitCaption  string
	textareaLength uint64
	titleAlign     model.Align
}

// WithValidation toggles kin-openapi document validation. Enabled by default.
func WithValidation(enabled bool) BuildOption {
	return func(cfg *buildConfig) {
		cfg.validate = enabled
	}
}

// WithReset appends a reset button with the given caption. An empty caption
// falls back to the generic one.
func WithReset(caption string) BuildOption {
	return func(cfg *buildConfig) {
		cfg.reset = true
		cfg.resetCaption = caption
	}
}

// WithoutReset drops the reset button.
func WithoutReset() BuildOption {
	return func(cfg *buildConfig) {
		cfg.reset = false
	}
}

// WithSubmitCaption overrides the submit caption, taking precedence over the
// operation extension.
func WithSubmitCaption(caption string) BuildOption {
	return func(cfg *buildConfig) {
		cfg.submitCaption = caption
	}
}

// WithTextareaLength changes the maxLength threshold for textareas. Zero
// disables the length rule.
func WithTextareaLength(length uint64) BuildOption {
	return func(cfg *buildConfig) {
		cfg.textareaLength = length
	}
}

// WithTitleAlign sets the heading alignment of built forms.
func WithTitleAlign(align model.Align) BuildOption {
	return func(cfg *buildConfig) {
		cfg.titleAlign = align
	}
}

// OperationRef names one operation that carries a request body.
type OperationRef struct {
	ID      string
	Method  string
	Path    string
	Summary string
}

// Operations lists every operation with a request body, sorted by id.
func Operations(ctx context.Context, doc Document, options ...BuildOption) ([]OperationRef, error) {
	cfg := newBuildConfig(options)
	spec, err := loadSpec(ctx, doc, cfg)
	if err != nil {
		return nil, err
	}

	var refs []OperationRef
	eachOperation(spec, func(id, method, path string, op *openapi3.Operation) bool {
		if requestSchema(op) != nil {
			refs = append(refs, OperationRef{ID: id, Method: method, Path: path, Summary: op.Summary})
		}
		return true
	})
	slices.SortFunc(refs, func(a, b OperationRef) int { return strings.Compare(a.ID, b.ID) })
	return refs, nil
}

// FromDocument builds a FormSchema from the request body of operationID.
// Enums become selects, password/email formats map to their inputs, the
// textarea format or a long maxLength yields a textarea, and booleans become
// a yes/no select. Object and array properties are skipped.
func FromDocument(ctx context.Context, doc Document, operationID string, options ...BuildOption) (model.FormSchema, error) {
	cfg := newBuildConfig(options)
	spec, err := loadSpec(ctx, doc, cfg)
	if err != nil {
		return model.FormSchema{}, err
	}

	var found *openapi3.Operation
	eachOperation(spec, func(id, _, _ string, op *openapi3.Operation) bool {
		if id == operationID {
			found = op
			return false
		}
		return true
	})
	if found == nil {
		return model.FormSchema{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	body := requestSchema(found)
	if body == nil {
		return model.FormSchema{}, fmt.Errorf("openapi: operation %q has no request body schema", operationID)
	}

	form := model.FormSchema{
		ID:     operationID,
		Fields: buildFields(body, cfg),
	}
	title := strings.TrimSpace(found.Summary)
	if title == "" {
		title = humanize(operationID)
	}
	form.Title = &model.Title{Label: title, Align: cfg.titleAlign}

	if cfg.reset {
		form.Fields = append(form.Fields, model.Leaf(buttonField(model.FieldTypeReset, cfg.resetCaption)))
	}
	submit := cfg.submitCaption
	if submit == "" {
		submit = stringExtension(found.Extensions, ExtensionSubmit)
	}
	form.Fields = append(form.Fields, model.Leaf(buttonField(model.FieldTypeSubmit, submit)))
	return form, nil
}

func newBuildConfig(options []BuildOption) buildConfig {
	cfg := buildConfig{
		validate:       true,
		reset:          true,
		textareaLength: DefaultTextareaLength,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func loadSpec(ctx context.Context, doc Document, cfg buildConfig) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document %s: %w", doc.Location(), err)
	}
	if cfg.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate %s: %w", doc.Location(), err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}
	return spec, nil
}

// eachOperation visits operations in path order; visit returns false to stop.
func eachOperation(spec *openapi3.T, visit func(id, method, path string, op *openapi3.Operation) bool) {
	paths := spec.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	slices.Sort(keys)

	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		methods := []struct {
			name string
			op   *openapi3.Operation
		}{
			{"POST", item.Post}, {"PUT", item.Put}, {"PATCH", item.Patch}, {"GET", item.Get}, {"DELETE", item.Delete},
		}
		for _, m := range methods {
			if m.op == nil {
				continue
			}
			id := m.op.OperationID
			if id == "" {
				id = strings.ToLower(m.name) + ":" + path
			}
			if !visit(id, m.name, path, m.op) {
				return
			}
		}
	}
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mediaType := range slices.Sorted(maps.Keys(content)) {
		if mt := content[mediaType]; mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func buildFields(body *openapi3.Schema, cfg buildConfig) []model.FieldNode {
	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	var (
		nodes  []model.FieldNode
		rowIdx = make(map[string]int)
	)
	for _, name := range propertyOrder(body) {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		if boolExtension(prop.Extensions, ExtensionSkip) {
			continue
		}
		field, ok := buildField(name, prop, required[name], cfg)
		if !ok {
			continue
		}

		row := stringExtension(prop.Extensions, ExtensionRow)
		if row == "" {
			nodes = append(nodes, model.Leaf(field))
			continue
		}
		if idx, seen := rowIdx[row]; seen {
			nodes[idx].Group = append(nodes[idx].Group, model.Leaf(field))
			continue
		}
		rowIdx[row] = len(nodes)
		nodes = append(nodes, model.Row(field))
	}
	return nodes
}

func propertyOrder(body *openapi3.Schema) []string {
	all := slices.Sorted(maps.Keys(body.Properties))
	declared := stringsExtension(body.Extensions, ExtensionOrder)
	if len(declared) == 0 {
		return all
	}

	out := make([]string, 0, len(all))
	seen := make(map[string]bool, len(all))
	for _, name := range declared {
		if _, ok := body.Properties[name]; ok && !seen[name] {
			out = append(out, name)
			seen[name] = true
		}
	}
	for _, name := range all {
		if !seen[name] {
			out = append(out, name)
		}
	}
	return out
}

func buildField(name string, prop *openapi3.Schema, required bool, cfg buildConfig) (model.FieldSchema, bool) {
	field := model.FieldSchema{
		Name:        name,
		Label:       strings.TrimSpace(prop.Title),
		Placeholder: stringExtension(prop.Extensions, ExtensionPlaceholder),
		Required:    required,
	}
	if field.Label == "" {
		field.Label = humanize(name)
	}
	if field.Placeholder == "" {
		field.Placeholder = strings.TrimSpace(prop.Description)
	}
	if prop.Default != nil {
		field.DefaultValue = model.Scalar(scalarString(prop.Default))
	}

	kind := schemaType(prop)
	switch {
	case len(prop.Enum) > 0:
		field.Type = model.FieldTypeSelect
		for _, value := range prop.Enum {
			id := scalarString(value)
			field.Options = append(field.Options, model.Option{ID: id, Value: humanize(id)})
		}
	case kind == "boolean":
		field.Type = model.FieldTypeSelect
		field.Options = []model.Option{{ID: "true", Value: "Yes"}, {ID: "false", Value: "No"}}
	case kind == "object" || kind == "array":
		return model.FieldSchema{}, false
	case prop.Format == "password":
		field.Type = model.FieldTypePassword
	case prop.Format == "email":
		field.Type = model.FieldTypeEmail
	case prop.Format == "textarea",
		cfg.textareaLength > 0 && prop.MaxLength != nil && *prop.MaxLength >= cfg.textareaLength:
		field.Type = model.FieldTypeTextarea
	default:
		field.Type = model.FieldTypeText
	}
	return field, true
}

func buttonField(kind model.FieldType, caption string) model.FieldSchema {
	field := model.FieldSchema{Type: kind}
	if caption = strings.TrimSpace(caption); caption != "" {
		field.DefaultValue = model.Scalar(caption)
	}
	return field
}

func schemaType(s *openapi3.Schema) string {
	if s.Type == nil {
		return ""
	}
	for _, kind := range s.Type.Slice() {
		if kind != "null" {
			return kind
		}
	}
	return ""
}

func scalarString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprint(v)
	default:
		return fmt.Sprint(v)
	}
}

func stringExtension(ext map[string]any, key string) string {
	if value, ok := ext[key]; ok {
		return strings.TrimSpace(scalarString(value))
	}
	return ""
}

func stringsExtension(ext map[string]any, key string) []string {
	raw, ok := ext[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s := strings.TrimSpace(scalarString(item)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func boolExtension(ext map[string]any, key string) bool {
	value, _ := ext[key].(bool)
	return value
}

// humanize turns snake, kebab, or camel case identifiers into a label.
func humanize(id string) string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}
	runes := []rune(id)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.' || r == ':' || r == '/':
			flush()
		case unicode.IsUpper(r) && i > 0 && unicode.IsLower(runes[i-1]):
			flush()
			current = append(current, unicode.ToLower(r))
		default:
			current = append(current, unicode.ToLower(r))
		}
	}
	flush()
	if len(words) == 0 {
		return id
	}
	first := []rune(words[0])
	first[0] = unicode.ToUpper(first[0])
	words[0] = string(first)
	return strings.Join(words, " ")
}
