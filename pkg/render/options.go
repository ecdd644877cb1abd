package render

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data renderers use without mutating the
// schema.
type RenderOptions struct {
	// Values is the controlled value source. Nil renders uncontrolled: each
	// control starts from its unwrapped defaultValue.
	Values ValueSource
	// State carries per-instance ephemeral UI state (password visibility).
	// Nil means every password is masked.
	State *State
	// Action and Method populate the native form element. Method defaults to
	// post.
	Action string
	Method string
	// Hidden fields are emitted before the visible tree.
	Hidden []HiddenField
	// Theme optionally overrides component partials and contributes CSS
	// variables to the form element.
	Theme *theme.RendererConfig
}

// FormMethod returns the lowercased method, defaulting to post.
func (o RenderOptions) FormMethod() string {
	method := strings.ToLower(strings.TrimSpace(o.Method))
	switch method {
	case "get", "post":
		return method
	default:
		return "post"
	}
}
