package uff

import (
	"reflect"
	"sort"

	"github.com/pkg/errors"
)

// Node is a typed UFF object. Every node type in this package embeds the
// same implementation; the interface cannot be implemented elsewhere.
type Node interface {
	// Class returns the registered class name, such as "uff.point".
	Class() string
	Schema() *Schema
	// Location returns the bound location, or the zero Location for a node
	// built in memory.
	Location() Location
	// Attrs returns the stored attributes of the node, or an empty map for
	// an unbound node.
	Attrs() (Attrs, error)
	// Get returns the value of a field. Stored fields are resolved from the
	// file on first access and cached; an absent field is nil.
	Get(field string) (interface{}, error)
	// Set replaces the value of a stored field.
	Set(field string, value interface{}) error
	// Fields lists the fields of the given kinds, or all fields.
	Fields(kinds ...FieldKind) []string
	// Read reads a member of the node by its stored class.
	Read(name string) (interface{}, error)
	// Copy returns a node bound to the same location holding the field
	// values that were already resolved. It performs no I/O.
	Copy() Node
	Equal(other Node, opts ...EqualOption) (bool, error)
	Write(path, location string, opts ...WriteOption) error
	String() string

	base() *object
}

// object implements Node.
type object struct {
	schema *Schema
	loc    Location
	cells  map[string]*Cell[interface{}]
	self   Node
}

func (o *object) base() *object { return o }

func (o *object) Class() string { return o.schema.class }

func (o *object) Schema() *Schema { return o.schema }

func (o *object) Location() Location { return o.loc }

func (o *object) Attrs() (Attrs, error) {
	if o.loc.IsZero() {
		return Attrs{}, nil
	}
	return o.loc.Attrs()
}

// field returns the declaration of a field. Dynamic schemas accept any name
// as an optional member.
func (o *object) field(name string) (Field, error) {
	if f, ok := o.schema.Field(name); ok {
		return f, nil
	}
	if o.schema.dynamic {
		return optional(name, "", memberAt(name)), nil
	}
	return Field{}, errors.Wrapf(ErrUnknownField, "%s has no field %q", o.schema.typeName, name)
}

func memberAt(key string) Resolver {
	return func(loc Location) (interface{}, error) {
		child, err := member(loc, key)
		if err != nil {
			return nil, err
		}
		return ReadNode(child)
	}
}

func (o *object) cell(name string) *Cell[interface{}] {
	c, ok := o.cells[name]
	if !ok {
		c = new(Cell[interface{}])
		o.cells[name] = c
	}
	return c
}

func (o *object) Get(name string) (interface{}, error) {
	f, err := o.field(name)
	if err != nil {
		return nil, err
	}
	if f.Kind == Computed {
		v, err := f.compute(o.self)
		if err != nil {
			return nil, errors.Wrapf(err, "%s.%s", o.schema.typeName, name)
		}
		return v, nil
	}
	return o.cell(name).Get(func() (interface{}, error) {
		v, err := f.resolve(o.loc)
		if errors.Is(err, errUnset) {
			return nil, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "%s.%s", o.schema.typeName, name)
		}
		return v, nil
	})
}

func (o *object) Set(name string, value interface{}) error {
	f, err := o.field(name)
	if err != nil {
		return err
	}
	if f.Kind == Computed {
		return errors.Wrapf(ErrUnsupportedType, "%s.%s is computed and cannot be set", o.schema.typeName, name)
	}
	v, err := normalize(value)
	if err != nil {
		return errors.Wrapf(err, "%s.%s", o.schema.typeName, name)
	}
	o.cell(name).Set(v)
	return nil
}

func (o *object) Fields(kinds ...FieldKind) []string {
	if !o.schema.dynamic {
		return o.schema.Fields(kinds...)
	}
	if len(kinds) > 0 && !hasKind(kinds, Optional) {
		return nil
	}
	seen := make(map[string]bool)
	for name := range o.cells {
		seen[name] = true
	}
	if keys, err := o.loc.Children(); err == nil {
		for _, k := range keys {
			seen[k] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// storedFields lists the required and optional fields.
func (o *object) storedFields() []string {
	return o.Fields(Required, Optional)
}

func (o *object) Read(name string) (interface{}, error) {
	child, err := o.loc.Descend(name)
	if err != nil {
		return nil, err
	}
	return ReadNode(child)
}

func (o *object) Copy() Node {
	n := o.schema.Bind(o.loc)
	cp := n.base()
	for name, c := range o.cells {
		if v, ok := c.Peek(); ok {
			cp.cell(name).Set(copyValue(v))
		}
	}
	return n
}

func copyValue(v interface{}) interface{} {
	switch x := v.(type) {
	case Node:
		return x.Copy()
	case []Node:
		out := make([]Node, len(x))
		for i, n := range x {
			out[i] = n.Copy()
		}
		return out
	case []string:
		return append([]string(nil), x...)
	}
	// Arrays, lazy arrays, strings and enumerations are immutable.
	return v
}

func (o *object) Equal(other Node, opts ...EqualOption) (bool, error) {
	return Equal(o.self, other, opts...)
}

func (o *object) Write(path, location string, opts ...WriteOption) error {
	return Write(path, location, o.self, opts...)
}

func (o *object) String() string { return render(o.self) }

// normalize converts a value given to Set into the representation used by
// resolved fields.
func normalize(v interface{}) (interface{}, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case Node, []Node, string, []string, Enum, *Array, *LazyArray:
		return x, nil
	case Numeric:
		return x.Load()
	case []interface{}:
		return normalizeList(x)
	}
	if a, ok, err := arrayFromGo(v); ok || err != nil {
		return a, err
	}
	if nodes, ok := nodeSlice(v); ok {
		return nodes, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedType, "%T", v)
}

func normalizeList(items []interface{}) (interface{}, error) {
	if len(items) == 0 {
		return nil, errors.Wrap(ErrUnsupportedType, "empty list")
	}
	switch items[0].(type) {
	case string:
		out := make([]string, len(items))
		for i, it := range items {
			s, ok := it.(string)
			if !ok {
				return nil, errors.Wrapf(ErrUnsupportedType, "list mixes string and %T", it)
			}
			out[i] = s
		}
		return out, nil
	case Node:
		out := make([]Node, len(items))
		for i, it := range items {
			n, ok := it.(Node)
			if !ok {
				return nil, errors.Wrapf(ErrUnsupportedType, "list mixes nodes and %T", it)
			}
			out[i] = n
		}
		return out, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedType, "list of %T", items[0])
}

var nodeType = reflect.TypeOf((*Node)(nil)).Elem()

// nodeSlice converts a typed slice such as []*Wave to a []Node.
func nodeSlice(v interface{}) ([]Node, bool) {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Slice || !val.Type().Elem().Implements(nodeType) {
		return nil, false
	}
	out := make([]Node, val.Len())
	for i := range out {
		out[i] = val.Index(i).Interface().(Node)
	}
	return out, true
}

// Materialize returns an unbound copy of n in which every stored field has
// been read: lazy arrays are loaded and nested nodes are materialized in
// turn. The result does not depend on the file.
func Materialize(n Node) (Node, error) {
	o := n.base()
	out := o.schema.Bind(Location{})
	for _, name := range o.storedFields() {
		v, err := o.Get(name)
		if err != nil {
			return nil, err
		}
		if v, err = materializeValue(v); err != nil {
			return nil, errors.Wrapf(err, "%s.%s", o.schema.typeName, name)
		}
		out.base().cell(name).Set(v)
	}
	return out, nil
}

// MaterializeAs is Materialize for a concrete node type.
func MaterializeAs[T Node](n T) (T, error) {
	m, err := Materialize(n)
	if err != nil {
		var zero T
		return zero, err
	}
	return m.(T), nil
}

func materializeValue(v interface{}) (interface{}, error) {
	switch x := v.(type) {
	case *LazyArray:
		return x.Load()
	case Node:
		return Materialize(x)
	case []Node:
		out := make([]Node, len(x))
		for i, n := range x {
			m, err := Materialize(n)
			if err != nil {
				return nil, err
			}
			out[i] = m
		}
		return out, nil
	}
	return v, nil
}
