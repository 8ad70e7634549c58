// Package doc provides typed access to generic structured documents, as produced by decoding JSON or YAML into
// an untyped value.
package doc

import (
	"encoding/json"
	"math"

	"github.com/cockroachdb/errors"
)

// Document is a structured document: an object decoded from JSON or YAML into a map.
type Document map[string]any

// As returns v as a Document if it is an object.
func As(v any) (Document, bool) {
	switch m := v.(type) {
	case Document:
		return m, true
	case map[string]any:
		return m, true
	}
	return nil, false
}

// Has checks if the Document has a field with the key passed. Fields set to null are treated as absent.
func (d Document) Has(key string) bool {
	v, ok := d[key]
	return ok && v != nil
}

// Get returns the raw value of a field.
func (d Document) Get(key string) (any, bool) {
	v, ok := d[key]
	return v, ok && v != nil
}

// Int returns the integer value of a field, or def if the field is absent.
func (d Document) Int(key string, def int) (int, error) {
	v, ok := d.Get(key)
	if !ok {
		return def, nil
	}
	n, err := Int(v)
	if err != nil {
		return 0, errors.Wrapf(err, "field %q", key)
	}
	return n, nil
}

// Float returns the numeric value of a field, or def if the field is absent.
func (d Document) Float(key string, def float64) (float64, error) {
	v, ok := d.Get(key)
	if !ok {
		return def, nil
	}
	f, err := Float(v)
	if err != nil {
		return 0, errors.Wrapf(err, "field %q", key)
	}
	return f, nil
}

// Bool returns the boolean value of a field, or def if the field is absent.
func (d Document) Bool(key string, def bool) (bool, error) {
	v, ok := d.Get(key)
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, errors.Newf("field %q: expected a boolean, got %T", key, v)
	}
	return b, nil
}

// String returns the string value of a field, or def if the field is absent.
func (d Document) String(key string, def string) (string, error) {
	v, ok := d.Get(key)
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.Newf("field %q: expected a string, got %T", key, v)
	}
	return s, nil
}

// List returns the value of a field as a list. A single value that is not a list is returned as a list holding
// only that value.
func (d Document) List(key string) []any {
	v, ok := d.Get(key)
	if !ok {
		return nil
	}
	if l, ok := v.([]any); ok {
		return l
	}
	return []any{v}
}

// Int converts a decoded number to an int. Numbers with a fractional part are rejected.
func Int(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint64:
		if n > math.MaxInt {
			return 0, errors.Newf("number %v overflows int", n)
		}
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, errors.Newf("expected an integer, got %v", n)
		}
		if n >= math.MaxInt || n < math.MinInt {
			return 0, errors.Newf("number %v overflows int", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, errors.Newf("expected an integer, got %v", n)
		}
		return int(i), nil
	}
	return 0, errors.Newf("expected a number, got %T", v)
}

// Float converts a decoded number to a float64.
func Float(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		if math.IsNaN(n) {
			return 0, errors.New("expected a number, got NaN")
		}
		return n, nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, errors.Newf("expected a number, got %v", n)
		}
		return f, nil
	}
	return 0, errors.Newf("expected a number, got %T", v)
}
