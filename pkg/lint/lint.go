// Package lint reports schema-shape mistakes that renderers tolerate
// silently: unnamed interactive fields, selects without options, unknown
// types, duplicate names and invalid title alignment.
package lint

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/goliatone/go-batmanform/pkg/model"
)

// Rule tags reported by the linter.
const (
	RuleName    = "batman_name"
	RuleOptions = "batman_options"
	RuleType    = "batman_type"
	RuleUnique  = "batman_unique"
	RuleAlign   = "oneof"
)

var ruleTexts = map[string]string{
	RuleName:    "{0} has no name and collects under \"undefined\"",
	RuleOptions: "{0} is a select without options",
	RuleType:    "{0} has unknown type {1} and renders nothing",
	RuleUnique:  "{0} reuses the name {1}; the later value overwrites on submit",
}

// Issue is one finding. Path locates the node, e.g. "fields[0][1]".
type Issue struct {
	Path    string `json:"path"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return i.Path + ": " + i.Message
}

// Linter validates schemas with go-playground/validator and renders the
// findings through an English translator.
type Linter struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New builds a Linter with the schema rules registered.
func New() (*Linter, error) {
	validate := validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		return nil, fmt.Errorf("lint: register translations: %w", err)
	}

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterStructValidation(formSchemaStructValidation, model.FormSchema{})

	for tag, text := range ruleTexts {
		err := validate.RegisterTranslation(
			tag, translator,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				s, _ := t.T(tag, fe.Field(), fe.Param())
				return s
			},
		)
		if err != nil {
			return nil, fmt.Errorf("lint: register %s translation: %w", tag, err)
		}
	}

	return &Linter{validate: validate, translator: translator}, nil
}

// Lint returns the issues found in schema in tree order. A clean schema
// yields nil. Title alignment is matched case-insensitively, as renderers
// read it.
func (l *Linter) Lint(schema model.FormSchema) []Issue {
	if schema.Title != nil {
		title := *schema.Title
		title.Align = model.Align(strings.ToLower(strings.TrimSpace(string(title.Align))))
		schema.Title = &title
	}
	err := l.validate.Struct(schema)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []Issue{{Rule: "invalid", Message: err.Error()}}
	}

	issues := make([]Issue, 0, len(errs))
	for _, fe := range errs {
		issues = append(issues, Issue{
			Path:    strings.TrimPrefix(fe.Namespace(), "FormSchema."),
			Rule:    fe.Tag(),
			Message: fe.Translate(l.translator),
		})
	}
	return issues
}

// formSchemaStructValidation walks the node tree and reports leaf-level
// problems against their tree path.
func formSchemaStructValidation(sl validator.StructLevel) {
	schema, ok := sl.Current().Interface().(model.FormSchema)
	if !ok {
		return
	}

	seen := make(map[string]string)
	var walk func(prefix string, nodes []model.FieldNode)
	walk = func(prefix string, nodes []model.FieldNode) {
		for idx, node := range nodes {
			path := fmt.Sprintf("%s[%d]", prefix, idx)
			switch {
			case node.IsGroup():
				walk(path, node.Group)
			case node.IsLeaf():
				lintField(sl, path, *node.Field, seen)
			}
		}
	}
	walk("fields", schema.Fields)
}

func lintField(sl validator.StructLevel, path string, field model.FieldSchema, seen map[string]string) {
	if !field.Type.Known() {
		sl.ReportError(field.Type, path, "Type", RuleType, string(field.Type))
		return
	}
	if field.Type.IsButton() {
		return
	}

	if strings.TrimSpace(field.Name) == "" {
		sl.ReportError(field.Name, path, "Name", RuleName, "")
	} else if _, dup := seen[field.Name]; dup {
		sl.ReportError(field.Name, path, "Name", RuleUnique, field.Name)
	} else {
		seen[field.Name] = path
	}

	if field.Type.Normalized() == model.FieldTypeSelect && len(field.Options) == 0 {
		sl.ReportError(field.Options, path, "Options", RuleOptions, "")
	}
}
