package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

var jsonNull = []byte("null")

// UnmarshalJSON decodes objects as leaves and arrays as groups.
func (n *FieldNode) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull) {
		*n = FieldNode{}
		return nil
	}

	switch trimmed[0] {
	case '[':
		group := []FieldNode{}
		if err := json.Unmarshal(trimmed, &group); err != nil {
			return fmt.Errorf("model: decode field group: %w", err)
		}
		*n = FieldNode{Group: group}
	case '{':
		var field FieldSchema
		if err := json.Unmarshal(trimmed, &field); err != nil {
			return fmt.Errorf("model: decode field: %w", err)
		}
		*n = FieldNode{Field: &field}
	default:
		return fmt.Errorf("model: field node must be an object or an array, got %s", trimmed)
	}
	return nil
}

// MarshalJSON mirrors UnmarshalJSON.
func (n FieldNode) MarshalJSON() ([]byte, error) {
	switch {
	case n.IsLeaf():
		return json.Marshal(n.Field)
	case n.IsGroup():
		return json.Marshal(n.Group)
	default:
		return jsonNull, nil
	}
}

// UnmarshalYAML decodes mappings as leaves and sequences as groups.
func (n *FieldNode) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.AliasNode:
		return n.UnmarshalYAML(value.Alias)
	case yaml.SequenceNode:
		group := []FieldNode{}
		if err := value.Decode(&group); err != nil {
			return fmt.Errorf("model: decode field group: %w", err)
		}
		*n = FieldNode{Group: group}
	case yaml.MappingNode:
		var field FieldSchema
		if err := value.Decode(&field); err != nil {
			return fmt.Errorf("model: decode field: %w", err)
		}
		*n = FieldNode{Field: &field}
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*n = FieldNode{}
			return nil
		}
		return fmt.Errorf("model: line %d: field node must be a mapping or a sequence", value.Line)
	default:
		return fmt.Errorf("model: line %d: unsupported field node", value.Line)
	}
	return nil
}

// UnmarshalJSON accepts a scalar or a {value, label} object.
func (d *DefaultValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var pair struct {
			Value json.RawMessage `json:"value"`
			Label json.RawMessage `json:"label"`
		}
		if err := json.Unmarshal(trimmed, &pair); err != nil {
			return fmt.Errorf("model: decode default value: %w", err)
		}
		value, err := jsonScalar(pair.Value)
		if err != nil {
			return fmt.Errorf("model: decode default value: %w", err)
		}
		label, err := jsonScalar(pair.Label)
		if err != nil {
			return fmt.Errorf("model: decode default label: %w", err)
		}
		*d = DefaultValue{Value: value, Label: label, Pair: true}
		return nil
	}

	value, err := jsonScalar(trimmed)
	if err != nil {
		return fmt.Errorf("model: decode default value: %w", err)
	}
	*d = DefaultValue{Value: value}
	return nil
}

// MarshalJSON emits an object for pairs and a string otherwise.
func (d DefaultValue) MarshalJSON() ([]byte, error) {
	if d.Pair {
		return json.Marshal(map[string]string{"value": d.Value, "label": d.Label})
	}
	return json.Marshal(d.Value)
}

// UnmarshalYAML accepts a scalar or a {value, label} mapping.
func (d *DefaultValue) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.AliasNode:
		return d.UnmarshalYAML(value.Alias)
	case yaml.ScalarNode:
		*d = DefaultValue{Value: yamlScalar(value)}
	case yaml.MappingNode:
		pair := yamlMapping(value)
		*d = DefaultValue{Value: pair["value"], Label: pair["label"], Pair: true}
	default:
		return fmt.Errorf("model: line %d: default value must be a scalar or a mapping", value.Line)
	}
	return nil
}

// UnmarshalJSON tolerates numeric and boolean ids.
func (o *Option) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID    json.RawMessage `json:"id"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("model: decode option: %w", err)
	}
	id, err := jsonScalar(raw.ID)
	if err != nil {
		return fmt.Errorf("model: decode option id: %w", err)
	}
	value, err := jsonScalar(raw.Value)
	if err != nil {
		return fmt.Errorf("model: decode option value: %w", err)
	}
	*o = Option{ID: id, Value: value}
	return nil
}

// UnmarshalYAML tolerates numeric and boolean ids.
func (o *Option) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.AliasNode {
		return o.UnmarshalYAML(value.Alias)
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("model: line %d: option must be a mapping", value.Line)
	}
	entries := yamlMapping(value)
	*o = Option{ID: entries["id"], Value: entries["value"]}
	return nil
}

func jsonScalar(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull) {
		return "", nil
	}

	var value any
	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()
	if err := decoder.Decode(&value); err != nil {
		return "", err
	}

	switch v := value.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("expected a scalar, got %s", trimmed)
	}
}

func yamlScalar(node *yaml.Node) string {
	if node == nil || node.Tag == "!!null" {
		return ""
	}
	return node.Value
}

func yamlMapping(node *yaml.Node) map[string]string {
	out := make(map[string]string, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind == yaml.AliasNode {
			value = value.Alias
		}
		if value.Kind != yaml.ScalarNode {
			continue
		}
		out[key.Value] = yamlScalar(value)
	}
	return out
}
