package uff

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/pkg/errors"
)

// member returns the location of a field stored directly under a node. A
// missing member fails with errUnset, which reads as an unset field. Misses
// further down stay ErrNotFound.
func member(loc Location, key string) (Location, error) {
	child, err := loc.Descend(key)
	if errors.Is(err, ErrNotFound) {
		return Location{}, errors.Wrapf(errUnset, "%s", err)
	}
	return child, err
}

func lazyArrayAt(key string) Resolver {
	return func(loc Location) (interface{}, error) {
		child, err := member(loc, key)
		if err != nil {
			return nil, err
		}
		return NewLazyArray(child), nil
	}
}

func lazyScalarAt(key string) Resolver {
	return func(loc Location) (interface{}, error) {
		child, err := member(loc, key)
		if err != nil {
			return nil, err
		}
		return NewLazyScalar(child), nil
	}
}

// transposedAt reads a dataset stored with its dimensions reversed.
func transposedAt(key string) Resolver {
	return func(loc Location) (interface{}, error) {
		child, err := member(loc, key)
		if err != nil {
			return nil, err
		}
		return NewLazyArray(child).T(), nil
	}
}

// orDefault returns def when key is not a member of the node.
func orDefault(key string, r Resolver, def interface{}) Resolver {
	return func(loc Location) (interface{}, error) {
		if !loc.Has(key) {
			return def, nil
		}
		return r(loc)
	}
}

// firstOf resolves the first of keys present in the node. Later keys are
// older spellings of the same field.
func firstOf(keys []string, r func(key string) Resolver) Resolver {
	return func(loc Location) (interface{}, error) {
		for _, key := range keys {
			if loc.Has(key) {
				return r(key)(loc)
			}
		}
		return nil, errors.Wrapf(errUnset, "%s has none of %s", loc, strings.Join(keys, ", "))
	}
}

// nodeAt reads a node, or a list of nodes, of the given class.
func nodeAt(key, class string) Resolver {
	return func(loc Location) (interface{}, error) {
		child, err := member(loc, key)
		if err != nil {
			return nil, err
		}
		s, err := lookupSchema(class)
		if err != nil {
			return nil, err
		}
		return readPotentiallyList(child, s)
	}
}

// familyAt reads a node whose stored class must be family or extend it.
func familyAt(key, family string) Resolver {
	return func(loc Location) (interface{}, error) {
		child, err := member(loc, key)
		if err != nil {
			return nil, err
		}
		return readFamily(child, family)
	}
}

func readFamily(loc Location, family string) (Node, error) {
	base, err := lookupSchema(family)
	if err != nil {
		return nil, err
	}
	attrs, err := loc.Attrs()
	if err != nil {
		return nil, err
	}
	class, err := attrs.Text("class")
	if err != nil {
		return nil, errors.Wrapf(err, "%s", loc)
	}
	s, err := lookupSchema(class)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", loc)
	}
	if !s.IsA(base) {
		return nil, errors.Wrapf(ErrUnsupportedType, "%s holds %s, expected a %s", loc, class, family)
	}
	return s.Bind(loc), nil
}

func enumAt(key, class string) Resolver {
	return func(loc Location) (interface{}, error) {
		child, err := member(loc, key)
		if err != nil {
			return nil, err
		}
		return readEnum(child, class)
	}
}

func readEnum(loc Location, class string) (Enum, error) {
	e, ok := registry.enums[class]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownClass, "enumeration %q", class)
	}
	v, err := NewLazyScalar(loc).Int()
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", class)
	}
	return e.parse(v)
}

func stringsAt(key string) Resolver {
	return func(loc Location) (interface{}, error) {
		child, err := member(loc, key)
		if err != nil {
			return nil, err
		}
		return readStrings(child)
	}
}

// readStrings reads a char dataset as a string, or a cell group as a list of
// strings.
func readStrings(loc Location) (interface{}, error) {
	var out interface{}
	err := loc.Open(func(h *Handle) error {
		if _, ok := h.Group(); !ok {
			s, err := parseChars(h)
			out = s
			return err
		}
		keys, err := h.Keys()
		if err != nil {
			return err
		}
		strs := make([]string, 0, len(keys))
		for _, k := range sortItems(keys) {
			child, err := h.Child(k)
			if err != nil {
				return err
			}
			s, err := parseChars(child)
			if err != nil {
				return err
			}
			strs = append(strs, s)
		}
		out = strs
		return nil
	})
	return out, err
}

func parseChars(h *Handle) (string, error) {
	ds, ok := h.Dataset()
	if !ok {
		return "", errors.Wrapf(ErrUnsupportedType, "%s is not a char dataset", h.loc)
	}
	codes, err := ds.ReadFloat64()
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", h.loc)
	}
	units := make([]uint16, len(codes))
	for i, c := range codes {
		units[i] = uint16(c)
	}
	return string(utf16.Decode(units)), nil
}

// readPotentiallyList binds s to loc, or to each item of loc if loc holds a
// list.
func readPotentiallyList(loc Location, s *Schema) (interface{}, error) {
	attrs, err := loc.Attrs()
	if err != nil {
		return nil, err
	}
	if !attrs.isList() {
		return s.Bind(loc), nil
	}
	keys, err := loc.Children()
	if err != nil {
		return nil, err
	}
	items := make([]Node, 0, len(keys))
	for _, k := range sortItems(keys) {
		items = append(items, s.Bind(loc.join(k)))
	}
	return items, nil
}

// sortItems orders list members by their numeric suffix, so that item_10000
// follows item_9999. Names without a suffix sort first, by name.
func sortItems(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.SliceStable(out, func(i, j int) bool {
		a, aok := itemNumber(out[i])
		b, bok := itemNumber(out[j])
		switch {
		case aok && bok && a != b:
			return a < b
		case aok != bok:
			return bok
		}
		return out[i] < out[j]
	})
	return out
}

func itemNumber(key string) (int, bool) {
	i := strings.LastIndexByte(key, '_')
	if i < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(key[i+1:])
	return n, err == nil
}

// itemName names the i-th item of a list, counting from zero.
func itemName(name string, i int) string {
	return name + "_" + leftPad(strconv.Itoa(i+1), 4)
}

func leftPad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return strings.Repeat("0", n-len(s)) + s
}

// ReadNode reads whatever is stored at loc according to its class attribute:
// a node or list of nodes for registered node classes, an enumeration value
// for registered enumerations, a LazyArray for numeric leaves and a string
// or list of strings for text.
func ReadNode(loc Location) (interface{}, error) {
	attrs, err := loc.Attrs()
	if err != nil {
		return nil, err
	}
	class, err := attrs.Text("class")
	if err != nil {
		return nil, errors.Wrapf(err, "%s", loc)
	}
	switch class {
	case "single":
		return NewLazyArray(loc), nil
	case "char", "cell":
		return readStrings(loc)
	}
	if _, ok := registry.enums[class]; ok {
		return readEnum(loc, class)
	}
	s, err := lookupSchema(class)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", loc)
	}
	return readPotentiallyList(loc, s)
}
