package render

import (
	"context"

	"github.com/goliatone/go-batmanform/pkg/model"
)

// Renderer turns a FormSchema into a byte representation (HTML markup, a
// serialized terminal session, ...). Renderers must not mutate the schema.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, schema model.FormSchema, options RenderOptions) ([]byte, error)
}
