package uff

import (
	"reflect"

	"github.com/pkg/errors"
)

// EqualOption configures Equal.
type EqualOption func(*equalConfig)

type equalConfig struct {
	attrs       bool
	strictNames bool
}

// CompareAttributes makes Equal also compare the stored attributes of both
// nodes. The names "scan" and "focus" compare equal, since older files used
// either for the same field, unless StrictNames is also given.
func CompareAttributes() EqualOption {
	return func(c *equalConfig) { c.attrs = true }
}

// StrictNames disables the scan/focus name equivalence.
func StrictNames() EqualOption {
	return func(c *equalConfig) { c.strictNames = true }
}

// Equal reports whether two nodes have the same type and equal stored
// fields. Numeric fields are compared by value after reading them in full,
// regardless of whether either side is lazy.
func Equal(a, b Node, opts ...EqualOption) (bool, error) {
	var cfg equalConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return nodesEqual(a, b, &cfg)
}

func nodesEqual(a, b Node, cfg *equalConfig) (bool, error) {
	if a == nil || b == nil {
		return a == nil && b == nil, nil
	}
	if a.Schema() != b.Schema() {
		return false, nil
	}
	if cfg.attrs {
		aa, err := a.Attrs()
		if err != nil {
			return false, err
		}
		ba, err := b.Attrs()
		if err != nil {
			return false, err
		}
		if !attrsEqual(aa, ba, cfg) {
			return false, nil
		}
	}
	names := a.base().storedFields()
	if a.Schema().dynamic {
		names = unionStrings(names, b.base().storedFields())
	}
	for _, name := range names {
		va, err := a.Get(name)
		if err != nil {
			return false, err
		}
		vb, err := b.Get(name)
		if err != nil {
			return false, err
		}
		eq, err := valuesEqual(va, vb, cfg)
		if err != nil {
			return false, errors.Wrapf(err, "comparing %s.%s", a.Schema().typeName, name)
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}

func valuesEqual(a, b interface{}, cfg *equalConfig) (bool, error) {
	if a == nil || b == nil {
		return a == nil && b == nil, nil
	}
	if isNumeric(a) || isNumeric(b) {
		if !isNumeric(a) || !isNumeric(b) {
			return false, nil
		}
		x, err := toArray(a)
		if err != nil {
			return false, err
		}
		y, err := toArray(b)
		if err != nil {
			return false, err
		}
		return x.Equal(y), nil
	}
	switch x := a.(type) {
	case Node:
		y, ok := b.(Node)
		if !ok {
			return false, nil
		}
		return nodesEqual(x, y, cfg)
	case []Node:
		y, ok := b.([]Node)
		if !ok || len(x) != len(y) {
			return false, nil
		}
		for i := range x {
			if eq, err := nodesEqual(x[i], y[i], cfg); err != nil || !eq {
				return eq, err
			}
		}
		return true, nil
	}
	return reflect.DeepEqual(a, b), nil
}

func isNumeric(v interface{}) bool {
	switch v.(type) {
	case *Array, *LazyArray:
		return true
	case Enum:
		return false
	}
	_, ok, _ := arrayFromGo(v)
	return ok
}

func attrsEqual(a, b Attrs, cfg *equalConfig) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok {
			return false
		}
		sa, aIsText := va.(string)
		sb, bIsText := vb.(string)
		if aIsText || bIsText {
			if !aIsText || !bIsText {
				return false
			}
			if sa != sb && (cfg.strictNames || !scanFocus(sa, sb)) {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(va, vb) {
			return false
		}
	}
	return true
}

func scanFocus(a, b string) bool {
	return (a == "scan" && b == "focus") || (a == "focus" && b == "scan")
}

func unionStrings(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, s := range append(append([]string(nil), a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
