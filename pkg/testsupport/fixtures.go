package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-batmanform/pkg/model"
)

// DepartmentSchema returns the add-department form used across renderer and
// shell tests: a two-column row, a select with a pair default, and the two
// buttons.
func DepartmentSchema() model.FormSchema {
	return model.FormSchema{
		ID:    "department",
		Title: &model.Title{Label: "Add Department"},
		Fields: []model.FieldNode{
			model.Row(
				model.FieldSchema{Name: "name", Label: "Name", Required: true},
				model.FieldSchema{Name: "code", Label: "Code", Placeholder: "CSE"},
			),
			model.Leaf(model.FieldSchema{
				Type:         model.FieldTypeSelect,
				Name:         "school",
				Label:        "School",
				DefaultValue: model.Pair("school_2", "School 2"),
				Options: []model.Option{
					{ID: "school_1", Value: "School 1"},
					{ID: "school_2", Value: "School 2"},
				},
			}),
			model.Leaf(model.FieldSchema{Type: model.FieldTypeReset, DefaultValue: model.Scalar("Clear")}),
			model.Leaf(model.FieldSchema{Type: model.FieldTypeSubmit, DefaultValue: model.Scalar("Add")}),
		},
	}
}

// LoginSchema returns a small form with a single password field.
func LoginSchema() model.FormSchema {
	return model.FormSchema{
		ID:    "login",
		Title: &model.Title{Label: "Sign in"},
		Fields: []model.FieldNode{
			model.Leaf(model.FieldSchema{Type: model.FieldTypeEmail, Name: "email", Label: "Email", Required: true}),
			model.Leaf(model.FieldSchema{Type: model.FieldTypePassword, Name: "password", Label: "Password", Required: true}),
			model.Leaf(model.FieldSchema{Type: model.FieldTypeSubmit, DefaultValue: model.Scalar("Sign in")}),
		},
	}
}

// MustLoadSchema decodes a JSON or YAML fixture, picking the decoder from the
// file extension.
func MustLoadSchema(t *testing.T, path string) model.FormSchema {
	t.Helper()

	schema, err := LoadSchema(path)
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return schema
}

// LoadSchema reads a schema fixture without requiring testing.T.
func LoadSchema(path string) (model.FormSchema, error) {
	if path == "" {
		return model.FormSchema{}, errors.New("testsupport: schema path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.FormSchema{}, fmt.Errorf("testsupport: read schema: %w", err)
	}

	var out model.FormSchema
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &out)
	default:
		err = json.Unmarshal(data, &out)
	}
	if err != nil {
		return model.FormSchema{}, fmt.Errorf("testsupport: decode schema: %w", err)
	}
	return out, nil
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CancelledContext returns a context that is already done.
func CancelledContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx, cancel
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
