package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/goliatone/go-batmanform/pkg/model"
	"github.com/goliatone/go-batmanform/pkg/render"
)

// Renderer implements render.Renderer for terminal sessions. It walks the
// schema tree in order and prompts once per interactive leaf.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	onSelect          SelectHandler
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for every interactive leaf and returns the collected values
// in the configured output format. A confirmed reset clears the answers and
// starts over; a declined submit returns ErrNotSubmitted.
func (r *Renderer) Render(ctx context.Context, schema model.FormSchema, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	if schema.Title != nil && strings.TrimSpace(schema.Title.Label) != "" {
		if err := r.info(ctx, strings.TrimSpace(schema.Title.Label)); err != nil {
			return nil, err
		}
	}

	answers := render.NewCell(nil)
	source := render.Layered{answers, opts.Values}
	for {
		err := r.promptNodes(ctx, schema.Fields, answers, source)
		if errors.Is(err, errRestart) {
			answers.Clear()
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}

	values := render.Collect(schema, source)
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values)
}

// errSubmitted stops the walk once a submit button has been confirmed.
var errSubmitted = errors.New("tui: submitted")

func (r *Renderer) promptNodes(ctx context.Context, nodes []model.FieldNode, answers *render.Cell, source render.ValueSource) error {
	err := r.walk(ctx, nodes, answers, source)
	if errors.Is(err, errSubmitted) {
		return nil
	}
	return err
}

func (r *Renderer) walk(ctx context.Context, nodes []model.FieldNode, answers *render.Cell, source render.ValueSource) error {
	for _, node := range nodes {
		switch {
		case node.IsLeaf():
			if err := r.promptField(ctx, *node.Field, answers, source); err != nil {
				return err
			}
		case node.IsGroup():
			if err := r.walk(ctx, node.Group, answers, source); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) promptField(ctx context.Context, field model.FieldSchema, answers *render.Cell, source render.ValueSource) error {
	key := render.FieldKey(field)
	current := render.ResolveValue(field, source)
	label := r.prompt(displayLabel(field))
	validator := requiredValidator(field)

	var (
		answer string
		err    error
	)
	switch field.Type.Normalized() {
	case model.FieldTypeText, model.FieldTypeEmail:
		answer, err = r.driver.Input(ctx, InputConfig{Message: label, Default: current, Help: field.Placeholder, Validator: validator})
	case model.FieldTypePassword:
		answer, err = r.driver.Password(ctx, InputConfig{Message: label, Default: current, Help: field.Placeholder, Validator: validator})
	case model.FieldTypeTextarea:
		answer, err = r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: current, Help: field.Placeholder, Validator: validator})
	case model.FieldTypeSelect:
		return r.promptSelect(ctx, field, key, label, current, answers)
	case model.FieldTypeReset:
		return r.promptReset(ctx, field)
	case model.FieldTypeSubmit:
		return r.promptSubmit(ctx, field)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	answers.SetValue(key, answer)
	return nil
}

func (r *Renderer) promptSelect(ctx context.Context, field model.FieldSchema, key, label, current string, answers *render.Cell) error {
	if len(field.Options) == 0 {
		return nil
	}
	options := make([]string, len(field.Options))
	for i, option := range field.Options {
		options[i] = option.Value
	}
	defaultIndex := slices.IndexFunc(field.Options, func(option model.Option) bool {
		return option.ID == current
	})

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      label,
		Options:      options,
		DefaultIndex: defaultIndex,
		Help:         field.Placeholder,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(field.Options) {
		return fmt.Errorf("tui: select %q: option index %d out of range", key, idx)
	}

	value := field.Options[idx].ID
	answers.SetValue(key, value)
	if r.onSelect != nil {
		r.onSelect(value, key)
	}
	return nil
}

func (r *Renderer) promptReset(ctx context.Context, field model.FieldSchema) error {
	ok, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: r.prompt(render.ButtonCaption(field) + ": clear all answers and start over?"),
	})
	if err != nil {
		return err
	}
	if ok {
		return errRestart
	}
	return nil
}

func (r *Renderer) promptSubmit(ctx context.Context, field model.FieldSchema) error {
	ok, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: r.prompt(render.ButtonCaption(field) + "?"),
		Default: true,
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotSubmitted
	}
	return errSubmitted
}

func (r *Renderer) prompt(msg string) string {
	return r.theme.PromptPrefix + msg
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) serialize(values map[string]string) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return jsonBytes(values)
	}
}

func displayLabel(field model.FieldSchema) string {
	if label := strings.TrimSpace(field.Label); label != "" {
		return label
	}
	if placeholder := strings.TrimSpace(field.Placeholder); placeholder != "" {
		return placeholder
	}
	return render.FieldKey(field)
}

func requiredValidator(field model.FieldSchema) func(string) error {
	if !field.Required {
		return nil
	}
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", displayLabel(field))
		}
		return nil
	}
}

func flattenForm(values map[string]string) string {
	out := make(url.Values, len(values))
	for key, value := range values {
		out.Set(key, value)
	}
	return out.Encode()
}

func prettyPrint(values map[string]string) string {
	var b strings.Builder
	for _, key := range sortedKeys(values) {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(values[key])
		b.WriteByte('\n')
	}
	return b.String()
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func jsonBytes(values map[string]string) ([]byte, error) {
	payload, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("tui: marshal values: %w", err)
	}
	return payload, nil
}
