package uff

import (
	"fmt"
)

// FieldKind classifies how a field takes part in reading and writing.
type FieldKind int

const (
	// Required fields must be set before a node can be written.
	Required FieldKind = iota
	// Optional fields are written when set and may be absent.
	Optional
	// Computed fields are derived from other fields and never stored.
	Computed
)

func (k FieldKind) String() string {
	switch k {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case Computed:
		return "computed"
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// Resolver reads a stored field from the location of its node. A resolver
// that fails with errUnset makes the field read as nil; any other error,
// ErrNotFound from deeper inside the field included, is returned by Get.
type Resolver func(loc Location) (interface{}, error)

// Computer derives a computed field from the other fields of its node.
type Computer func(n Node) (interface{}, error)

// Field describes one field of a node type.
type Field struct {
	Name    string
	Kind    FieldKind
	Doc     string
	resolve Resolver
	compute Computer
}

func required(name, doc string, r Resolver) Field {
	return Field{Name: name, Kind: Required, Doc: doc, resolve: r}
}

func optional(name, doc string, r Resolver) Field {
	return Field{Name: name, Kind: Optional, Doc: doc, resolve: r}
}

func computed(name, doc string, c Computer) Field {
	return Field{Name: name, Kind: Computed, Doc: doc, compute: c}
}

// Schema is the field layout of a node type. Schemas form a hierarchy: a
// type inherits the fields of its parent and may redeclare any of them,
// including turning a stored field into a computed one.
type Schema struct {
	class    string
	typeName string
	parent   *Schema
	fields   []Field
	index    map[string]int
	newNode  func() Node
	dynamic  bool

	// prepare converts a field value before it is written.
	prepare func(field string, v interface{}) (interface{}, error)
}

// schemas lists every schema in definition order.
var schemas []*Schema

func defineSchema(class, typeName string, parent *Schema, newNode func() Node, fields ...Field) *Schema {
	s := &Schema{
		class:    class,
		typeName: typeName,
		parent:   parent,
		index:    make(map[string]int),
		newNode:  newNode,
	}
	if parent != nil {
		s.fields = append(s.fields, parent.fields...)
		for k, v := range parent.index {
			s.index[k] = v
		}
		s.prepare = parent.prepare
	}
	for _, f := range fields {
		if i, ok := s.index[f.Name]; ok {
			s.fields[i] = f
			continue
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	schemas = append(schemas, s)
	return s
}

// Class returns the registered class name, such as "uff.point".
func (s *Schema) Class() string { return s.class }

// TypeName returns the name of the Go type implementing the schema.
func (s *Schema) TypeName() string { return s.typeName }

// Parent returns the schema this one extends, or nil.
func (s *Schema) Parent() *Schema { return s.parent }

// Field returns the named field.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Fields returns the names of the fields of the given kinds in declaration
// order. Without kinds all fields are returned.
func (s *Schema) Fields(kinds ...FieldKind) []string {
	var names []string
	for _, f := range s.fields {
		if len(kinds) == 0 || hasKind(kinds, f.Kind) {
			names = append(names, f.Name)
		}
	}
	return names
}

func hasKind(kinds []FieldKind, k FieldKind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}

// IsA reports whether s is other or extends it.
func (s *Schema) IsA(other *Schema) bool {
	for cur := s; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}
	return false
}

// Bind returns a node of this type reading from loc. Nothing is read until a
// field is requested.
func (s *Schema) Bind(loc Location) Node {
	n := s.newNode()
	o := n.base()
	o.schema = s
	o.loc = loc
	o.self = n
	o.cells = make(map[string]*Cell[interface{}])
	for _, f := range s.fields {
		if f.Kind != Computed {
			o.cells[f.Name] = new(Cell[interface{}])
		}
	}
	return n
}

// New returns an unbound node holding values. Keys must name stored fields
// of the schema. Fields that are not given read as nil or their default.
func (s *Schema) New(values Values) (Node, error) {
	n := s.Bind(Location{})
	for name, v := range values {
		if err := n.Set(name, v); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (s *Schema) String() string { return s.class }

// Values holds field values for constructing a node.
type Values map[string]interface{}

// New returns an unbound node of the registered class holding values.
func New(class string, values Values) (Node, error) {
	s, err := lookupSchema(class)
	if err != nil {
		return nil, err
	}
	return s.New(values)
}

func build[T Node](s *Schema, values Values) (T, error) {
	n, err := s.New(values)
	if err != nil {
		var zero T
		return zero, err
	}
	return n.(T), nil
}
