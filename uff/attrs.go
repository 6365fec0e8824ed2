package uff

import (
	"sort"

	"github.com/pkg/errors"
)

// Attrs holds the HDF5 attributes of a group or dataset as decoded by the
// engine. Numeric values are int64, uint64 or float64, or slices of those.
type Attrs map[string]interface{}

// Has reports whether the attribute is present.
func (a Attrs) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Names returns the attribute names in sorted order.
func (a Attrs) Names() []string {
	names := make([]string, 0, len(a))
	for k := range a {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Text returns a string attribute.
func (a Attrs) Text(name string) (string, error) {
	v, ok := a[name]
	if !ok {
		return "", errors.Wrapf(ErrAttributeNotFound, "attribute %q", name)
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case []string:
		if len(s) == 1 {
			return s[0], nil
		}
	}
	return "", errors.Wrapf(ErrUnsupportedType, "attribute %q: expected a string, got %T", name, v)
}

// Ints returns a numeric attribute as a flat list of integers.
func (a Attrs) Ints(name string) ([]int64, error) {
	v, ok := a[name]
	if !ok {
		return nil, errors.Wrapf(ErrAttributeNotFound, "attribute %q", name)
	}
	switch n := v.(type) {
	case int64:
		return []int64{n}, nil
	case []int64:
		return n, nil
	case uint64:
		return []int64{int64(n)}, nil
	case []uint64:
		out := make([]int64, len(n))
		for i, x := range n {
			out[i] = int64(x)
		}
		return out, nil
	case float64:
		return []int64{int64(n)}, nil
	case []float64:
		out := make([]int64, len(n))
		for i, x := range n {
			out[i] = int64(x)
		}
		return out, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedType, "attribute %q: expected a number, got %T", name, v)
}

// Flag returns a boolean attribute stored as a numeric [0] or [1].
func (a Attrs) Flag(name string) (bool, error) {
	vals, err := a.Ints(name)
	if err != nil {
		return false, err
	}
	for _, v := range vals {
		if v != 0 {
			return true, nil
		}
	}
	return false, nil
}

// Size returns the two-element size attribute.
func (a Attrs) Size() ([2]int, error) {
	vals, err := a.Ints("size")
	if err != nil {
		return [2]int{}, err
	}
	var size [2]int
	for i := 0; i < len(vals) && i < 2; i++ {
		size[i] = int(vals[i])
	}
	return size, nil
}

// isList reports whether the attributes describe a list of items. A missing
// size attribute reads as a single item.
func (a Attrs) isList() bool {
	if array, err := a.Flag("array"); err == nil && array {
		return true
	}
	size, err := a.Size()
	return err == nil && size[1] > 1
}

// copy returns a shallow copy. Attribute values are never mutated in place.
func (a Attrs) copy() Attrs {
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
