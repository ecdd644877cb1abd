package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-batmanform/pkg/model"
)

func TestFieldTypeNormalized(t *testing.T) {
	tests := []struct {
		in     model.FieldType
		want   model.FieldType
		known  bool
		button bool
	}{
		{in: "", want: model.FieldTypeText, known: true},
		{in: "EMAIL", want: model.FieldTypeEmail, known: true},
		{in: " password ", want: model.FieldTypePassword, known: true},
		{in: "submit", want: model.FieldTypeSubmit, known: true, button: true},
		{in: "reset", want: model.FieldTypeReset, known: true, button: true},
		{in: "checkbox", want: "checkbox"},
	}
	for _, tt := range tests {
		if got := tt.in.Normalized(); got != tt.want {
			t.Fatalf("%q: normalized want %q got %q", tt.in, tt.want, got)
		}
		if got := tt.in.Known(); got != tt.known {
			t.Fatalf("%q: known want %v got %v", tt.in, tt.known, got)
		}
		if got := tt.in.IsButton(); got != tt.button {
			t.Fatalf("%q: button want %v got %v", tt.in, tt.button, got)
		}
	}
}

func TestDefaultValueUnwrap(t *testing.T) {
	var missing *model.DefaultValue
	if got := missing.Unwrap(); got != "" {
		t.Fatalf("nil default should unwrap to empty, got %q", got)
	}
	if got := model.Pair("school_2", "School 2").Unwrap(); got != "school_2" {
		t.Fatalf("pair should unwrap to value, got %q", got)
	}
	if got := model.Scalar("Add").Unwrap(); got != "Add" {
		t.Fatalf("scalar should unwrap to itself, got %q", got)
	}
}

func TestAlignOrDefault(t *testing.T) {
	cases := map[model.Align]model.Align{
		"":        model.AlignCenter,
		"LEFT":    model.AlignLeft,
		"right":   model.AlignRight,
		"justify": model.AlignCenter,
	}
	for in, want := range cases {
		if got := in.OrDefault(); got != want {
			t.Fatalf("%q: want %q got %q", in, want, got)
		}
	}
}

func TestWalkVisitsLeavesInOrder(t *testing.T) {
	schema := departmentSchema()

	type visit struct {
		Name  string
		Type  model.FieldType
		Depth int
	}
	var got []visit
	model.Walk(schema.Fields, func(field model.FieldSchema, depth int) {
		got = append(got, visit{Name: field.Name, Type: field.Type, Depth: depth})
	})

	want := []visit{
		{Name: "name", Depth: 1},
		{Name: "code", Depth: 1},
		{Name: "school", Type: model.FieldTypeSelect},
		{Type: model.FieldTypeReset},
		{Type: model.FieldTypeSubmit},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("walk mismatch (-want +got):\n%s", diff)
	}
	if len(schema.Leaves()) != len(want) {
		t.Fatalf("expected %d leaves, got %d", len(want), len(schema.Leaves()))
	}
}

func TestLookupReturnsFirstDuplicate(t *testing.T) {
	schema := model.FormSchema{Fields: []model.FieldNode{
		model.Leaf(model.FieldSchema{Name: "code", Label: "First"}),
		model.Group(model.Leaf(model.FieldSchema{Name: "code", Label: "Second"})),
	}}
	field, ok := schema.Lookup("code")
	if !ok || field.Label != "First" {
		t.Fatalf("expected first declaration, got %+v (ok=%v)", field, ok)
	}
	if _, ok := schema.Lookup("missing"); ok {
		t.Fatalf("expected missing lookup to fail")
	}
}

func TestGroupWithoutNodesIsStillGroup(t *testing.T) {
	if !model.Group().IsGroup() {
		t.Fatalf("empty group should report IsGroup")
	}
	var zero model.FieldNode
	if zero.IsGroup() || zero.IsLeaf() {
		t.Fatalf("zero node should be neither leaf nor group")
	}
}
