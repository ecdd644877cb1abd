package render

import "github.com/goliatone/go-batmanform/pkg/model"

// Collect gathers the submitted values of every interactive leaf, keyed by
// field name. Buttons and unknown types contribute nothing. Fields without a
// name collect under MissingNameKey, and later duplicates overwrite earlier
// ones.
func Collect(schema model.FormSchema, source ValueSource) map[string]string {
	out := make(map[string]string)
	model.Walk(schema.Fields, func(field model.FieldSchema, _ int) {
		if !field.Type.Known() || field.Type.IsButton() {
			return
		}
		out[FieldKey(field)] = ResolveValue(field, source)
	})
	return out
}
