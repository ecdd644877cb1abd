package render

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-batmanform/pkg/model"
)

// Reserved hidden inputs the form shell uses to round-trip its own state.
const (
	FormIDField  = "__form"
	ToggleField  = "__toggle"
	VisibleField = "__visible"
	// SelectedField carries the select values a page was rendered with so
	// the next round-trip can tell which selects the user changed.
	SelectedField = "__selected"
)

// HiddenField represents a hidden input emitted alongside the visible tree.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken constructs a hidden field carrying the provided token. Callers
// supply the input name their backend expects ("_csrf", "csrf_token").
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// FormID tags the submission with the schema id so one handler can serve
// several forms.
func FormID(id string) HiddenField {
	return Hidden(FormIDField, id)
}

// VisiblePasswordsField carries the revealed password names across a
// toggle round-trip.
func VisiblePasswordsField(names []string) HiddenField {
	return Hidden(VisibleField, strings.Join(names, ","))
}

// ParseVisiblePasswords splits the value of VisibleField.
func ParseVisiblePasswords(raw string) []string {
	var out []string
	for _, name := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// SelectSnapshot records the resolved value of every select in schema. A
// schema without selects yields a field with no name, which
// SortedHiddenFields drops.
func SelectSnapshot(schema model.FormSchema, values ValueSource) HiddenField {
	snapshot := url.Values{}
	model.Walk(schema.Fields, func(field model.FieldSchema, _ int) {
		if field.Type.Normalized() == model.FieldTypeSelect {
			snapshot.Set(FieldKey(field), ResolveValue(field, values))
		}
	})
	if len(snapshot) == 0 {
		return HiddenField{}
	}
	return HiddenField{Name: SelectedField, Value: snapshot.Encode()}
}

// ParseSelectSnapshot decodes the value of SelectedField. A malformed value
// yields nil.
func ParseSelectSnapshot(raw string) map[string]string {
	parsed, err := url.ParseQuery(raw)
	if err != nil || len(parsed) == 0 {
		return nil
	}
	out := make(map[string]string, len(parsed))
	for key := range parsed {
		out[key] = parsed.Get(key)
	}
	return out
}

// SortedHiddenFields normalises hidden fields for deterministic rendering.
// Empty names are dropped; later fields win on name collisions.
func SortedHiddenFields(fields ...HiddenField) []HiddenField {
	if len(fields) == 0 {
		return nil
	}

	clean := make(map[string]string, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		clean[name] = field.Value
	}
	if len(clean) == 0 {
		return nil
	}

	names := make([]string, 0, len(clean))
	for name := range clean {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: name, Value: clean[name]})
	}
	return result
}
