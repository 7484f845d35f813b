package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Attribute is a single element attribute of a format.
type Attribute struct {
	Name  string
	Value string
}

// Attributes is an ordered attribute list. Order is preserved through JSON
// so serialized output is deterministic.
type Attributes []Attribute

// Get returns the value of the named attribute.
func (a Attributes) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Equal reports whether both lists hold the same name/value pairs,
// regardless of order.
func (a Attributes) Equal(other Attributes) bool {
	if len(a) != len(other) {
		return false
	}
	for _, attr := range a {
		value, ok := other.Get(attr.Name)
		if !ok || value != attr.Value {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the attributes as a JSON object in list order.
func (a Attributes) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, attr := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(attr.Name)
		if err != nil {
			return nil, fmt.Errorf("encode attribute name: %w", err)
		}
		value, err := json.Marshal(attr.Value)
		if err != nil {
			return nil, fmt.Errorf("encode attribute %s: %w", attr.Name, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// errAttributesNotObject is returned when attributes JSON is not an object.
var errAttributesNotObject = errors.New("attributes must be a JSON object")

// UnmarshalJSON decodes a JSON object, keeping key order.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*a = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode attributes: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errAttributesNotObject
	}

	attrs := Attributes{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode attribute name: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return errAttributesNotObject
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("decode attribute %s: %w", name, err)
		}
		attrs = append(attrs, Attribute{Name: name, Value: value})
	}

	*a = attrs
	return nil
}
