package render

import (
	"strings"

	"github.com/goliatone/go-batmanform/pkg/model"
)

// ButtonCaption picks the text of a submit or reset button: the unwrapped
// defaultValue, then the placeholder, then a generic caption.
func ButtonCaption(field model.FieldSchema) string {
	if caption := strings.TrimSpace(field.DefaultValue.Unwrap()); caption != "" {
		return caption
	}
	if caption := strings.TrimSpace(field.Placeholder); caption != "" {
		return caption
	}
	if field.Type.Normalized() == model.FieldTypeReset {
		return "Reset"
	}
	return "Submit"
}
