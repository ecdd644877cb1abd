package lint_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-batmanform/pkg/lint"
	"github.com/goliatone/go-batmanform/pkg/model"
	"github.com/goliatone/go-batmanform/pkg/schema"
	"github.com/goliatone/go-batmanform/pkg/testsupport"
)

func newLinter(t *testing.T) *lint.Linter {
	t.Helper()
	linter, err := lint.New()
	if err != nil {
		t.Fatalf("new linter: %v", err)
	}
	return linter
}

func TestLintCleanSchema(t *testing.T) {
	if issues := newLinter(t).Lint(testsupport.DepartmentSchema()); issues != nil {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestLintAlignIgnoresCase(t *testing.T) {
	def := testsupport.DepartmentSchema()
	def.Title = &model.Title{Label: "Add Department", Align: " RIGHT "}
	if got := def.Title.Align.OrDefault(); got != model.AlignRight {
		t.Fatalf("renderer alignment = %q", got)
	}
	if issues := newLinter(t).Lint(def); issues != nil {
		t.Fatalf("expected no issues, got %v", issues)
	}
	if def.Title.Align != " RIGHT " {
		t.Fatalf("lint must not modify the schema, align = %q", def.Title.Align)
	}
}

func TestLintReportsShapeProblems(t *testing.T) {
	bad := model.FormSchema{
		Title: &model.Title{Label: "Broken", Align: "middle"},
		Fields: []model.FieldNode{
			model.Leaf(model.FieldSchema{Label: "Nameless"}),
			model.Row(
				model.FieldSchema{Name: "email", Type: model.FieldTypeEmail},
				model.FieldSchema{Name: "email"},
			),
			model.Leaf(model.FieldSchema{Type: model.FieldTypeSelect, Name: "school"}),
			model.Leaf(model.FieldSchema{Type: "checkbox", Name: "agree"}),
			model.Leaf(model.FieldSchema{Type: model.FieldTypeSubmit}),
		},
	}

	got := newLinter(t).Lint(bad)
	want := []lint.Issue{
		{Path: "title.align", Rule: lint.RuleAlign, Message: "align must be one of [left center right]"},
		{Path: "fields[0]", Rule: lint.RuleName, Message: `fields[0] has no name and collects under "undefined"`},
		{Path: "fields[1][1]", Rule: lint.RuleUnique, Message: "fields[1][1] reuses the name email; the later value overwrites on submit"},
		{Path: "fields[2]", Rule: lint.RuleOptions, Message: "fields[2] is a select without options"},
		{Path: "fields[3]", Rule: lint.RuleType, Message: "fields[3] has unknown type checkbox and renders nothing"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestLintEmbeddedSchemas(t *testing.T) {
	store, err := schema.Embedded()
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	linter := newLinter(t)
	for _, id := range store.IDs() {
		form, _ := store.Schema(id)
		issues := linter.Lint(form)
		if id == "course" {
			// The teacher select is filled from the API at request time.
			if len(issues) != 1 || issues[0].Rule != lint.RuleOptions {
				t.Fatalf("course: expected only the options finding, got %v", issues)
			}
			continue
		}
		if len(issues) != 0 {
			t.Fatalf("%s: unexpected issues %v", id, issues)
		}
	}
}
