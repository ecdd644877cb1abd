package components

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-batmanform/pkg/model"
	rendertemplate "github.com/goliatone/go-batmanform/pkg/render/template"
)

// Renderer writes the control markup for one leaf into buf. It never writes
// the label; the caller wraps labelled leaves.
type Renderer func(buf *bytes.Buffer, field model.FieldSchema, data ComponentData) error

// ComponentData carries everything a component needs besides the schema leaf.
type ComponentData struct {
	Template rendertemplate.TemplateRenderer
	// Name is the key the control renders under (the field name, or
	// "undefined" when missing).
	Name string
	// Value is the resolved initial value.
	Value string
	// Visible is the password reveal flag of this field.
	Visible bool
	// Partials are theme template overrides keyed like "forms.input".
	Partials map[string]string
}

// Descriptor bundles a renderer with the theme partial key it honours.
type Descriptor struct {
	Name       string
	PartialKey string
	Renderer   Renderer
}

// Registry tracks component descriptors keyed by field type. Callers can
// register new types or override defaults.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		components: make(map[string]Descriptor),
	}
}

// Clone returns a copy that can be mutated without touching the original.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return &Registry{components: maps.Clone(r.components)}
}

// Register associates a descriptor with a field type. Existing entries are
// replaced.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("components: component name is required")
	}
	if descriptor.Renderer == nil {
		return fmt.Errorf("components: renderer for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Name = name
	r.components[name] = descriptor
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(name string, descriptor Descriptor) {
	if err := r.Register(name, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor fetches a descriptor by field type.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.components[normalize(name)]
	return descriptor, ok
}

// Names returns the registered field types in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.components))
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
