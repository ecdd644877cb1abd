package render

import (
	"maps"
	"net/url"
	"sync"

	"github.com/goliatone/go-batmanform/pkg/model"
)

// MissingNameKey is the key an interactive field without a name renders and
// collects under.
const MissingNameKey = "undefined"

// ValueSource supplies controlled values keyed by field name.
type ValueSource interface {
	Value(name string) (string, bool)
}

// ValueSink receives value changes for controlled fields.
type ValueSink interface {
	SetValue(name, value string)
}

// FieldKey returns the key a leaf renders and collects under.
func FieldKey(field model.FieldSchema) string {
	if field.Name == "" {
		return MissingNameKey
	}
	return field.Name
}

// ResolveValue applies the value precedence: a value from source, then the
// unwrapped defaultValue, then the empty string.
func ResolveValue(field model.FieldSchema, source ValueSource) string {
	if source != nil {
		if value, ok := source.Value(FieldKey(field)); ok {
			return value
		}
	}
	return field.DefaultValue.Unwrap()
}

// Cell is a value store owned by a form instance. It is safe for concurrent
// use.
type Cell struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewCell creates a cell seeded with a copy of initial.
func NewCell(initial map[string]string) *Cell {
	values := make(map[string]string, len(initial))
	maps.Copy(values, initial)
	return &Cell{values: values}
}

// Value implements ValueSource.
func (c *Cell) Value(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.values[name]
	return value, ok
}

// SetValue implements ValueSink.
func (c *Cell) SetValue(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.values == nil {
		c.values = make(map[string]string)
	}
	c.values[name] = value
}

// Values returns a snapshot of the stored values.
func (c *Cell) Values() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.values)
}

// Clear drops every stored value so fields fall back to their defaults.
func (c *Cell) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.values)
}

// Accessor adapts a caller-owned get/set pair into a value source and sink.
type Accessor struct {
	Get func(name string) (string, bool)
	Set func(name, value string)
}

// Value implements ValueSource. A nil Get reports every value as absent.
func (a Accessor) Value(name string) (string, bool) {
	if a.Get == nil {
		return "", false
	}
	return a.Get(name)
}

// SetValue implements ValueSink. A nil Set drops the write.
func (a Accessor) SetValue(name, value string) {
	if a.Set != nil {
		a.Set(name, value)
	}
}

// StaticValues is a read-only value source backed by a map.
type StaticValues map[string]string

// Value implements ValueSource.
func (v StaticValues) Value(name string) (string, bool) {
	value, ok := v[name]
	return value, ok
}

// FormValues exposes posted form data as a value source.
type FormValues url.Values

// Value implements ValueSource. Only keys present in the payload resolve.
func (v FormValues) Value(name string) (string, bool) {
	values, ok := v[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Layered resolves a name against each source in turn and returns the first
// hit. Nil entries are skipped.
type Layered []ValueSource

// Value implements ValueSource.
func (l Layered) Value(name string) (string, bool) {
	for _, source := range l {
		if source == nil {
			continue
		}
		if value, ok := source.Value(name); ok {
			return value, true
		}
	}
	return "", false
}
