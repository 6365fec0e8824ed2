package uff

import (
	"math"

	"github.com/pkg/errors"
)

// Typed views of field values, shared by the accessors of the node types.

func (o *object) numeric(name string) (Numeric, error) {
	v, err := o.Get(name)
	if err != nil || v == nil {
		return nil, err
	}
	n, ok := v.(Numeric)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedType, "%s.%s holds %T, expected a number", o.schema.typeName, name, v)
	}
	return n, nil
}

func (o *object) node(name string) (Node, error) {
	v, err := o.Get(name)
	if err != nil || v == nil {
		return nil, err
	}
	switch x := v.(type) {
	case Node:
		return x, nil
	case []Node:
		if len(x) == 1 {
			return x[0], nil
		}
		return nil, errors.Wrapf(ErrUnsupportedType, "%s.%s holds %d items, expected one", o.schema.typeName, name, len(x))
	}
	return nil, errors.Wrapf(ErrUnsupportedType, "%s.%s holds %T, expected a node", o.schema.typeName, name, v)
}

// nodes returns a field that holds one node or a list of nodes as a list.
func (o *object) nodes(name string) ([]Node, error) {
	v, err := o.Get(name)
	if err != nil || v == nil {
		return nil, err
	}
	switch x := v.(type) {
	case Node:
		return []Node{x}, nil
	case []Node:
		return x, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedType, "%s.%s holds %T, expected nodes", o.schema.typeName, name, v)
}

func (o *object) text(name string) ([]string, error) {
	v, err := o.Get(name)
	if err != nil || v == nil {
		return nil, err
	}
	switch x := v.(type) {
	case string:
		return []string{x}, nil
	case []string:
		return x, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedType, "%s.%s holds %T, expected text", o.schema.typeName, name, v)
}

// nodeAs returns a node field as the concrete type T.
func nodeAs[T Node](o *object, name string) (T, error) {
	var zero T
	n, err := o.node(name)
	if err != nil || n == nil {
		return zero, err
	}
	t, ok := n.(T)
	if !ok {
		return zero, errors.Wrapf(ErrUnsupportedType, "%s.%s holds %s", o.schema.typeName, name, n.Schema().typeName)
	}
	return t, nil
}

func nodesAs[T Node](o *object, name string) ([]T, error) {
	ns, err := o.nodes(name)
	if err != nil || ns == nil {
		return nil, err
	}
	out := make([]T, len(ns))
	for i, n := range ns {
		t, ok := n.(T)
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedType, "%s.%s item %d holds %s", o.schema.typeName, name, i, n.Schema().typeName)
		}
		out[i] = t
	}
	return out, nil
}

// need returns a prerequisite of a computed field, failing with
// ErrMissingPrerequisite if it is absent.
func (o *object) need(name string) (interface{}, error) {
	v, err := o.Get(name)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errors.Wrapf(ErrMissingPrerequisite, "%s.%s is not set", o.schema.typeName, name)
	}
	return v, nil
}

func (o *object) needArray(name string) (*Array, error) {
	v, err := o.need(name)
	if err != nil {
		return nil, err
	}
	return toArray(v)
}

func (o *object) needFloat(name string) (float64, error) {
	a, err := o.needArray(name)
	if err != nil {
		return 0, err
	}
	return a.Float64()
}

// floatOr returns an optional scalar field, or def if it is not set.
func (o *object) floatOr(name string, def float64) (float64, error) {
	v, err := o.Get(name)
	if err != nil || v == nil {
		return def, err
	}
	a, err := toArray(v)
	if err != nil {
		return 0, err
	}
	return a.Float64()
}

func (o *object) needInt(name string) (int, error) {
	a, err := o.needArray(name)
	if err != nil {
		return 0, err
	}
	return a.Int()
}

func (o *object) needNode(name string) (Node, error) {
	if _, err := o.need(name); err != nil {
		return nil, err
	}
	return o.node(name)
}

// needShape returns the shape of a numeric prerequisite. Lazy values only
// have their metadata read.
func (o *object) needShape(name string) ([]int, error) {
	v, err := o.need(name)
	if err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case *LazyArray:
		return x.Shape()
	case *Array:
		return x.Shape(), nil
	}
	a, err := toArray(v)
	if err != nil {
		return nil, err
	}
	return a.Shape(), nil
}

// needIndex reads part of a numeric prerequisite. Lazy values only read the
// selection.
func (o *object) needIndex(name string, sel ...Selector) (*Array, error) {
	v, err := o.need(name)
	if err != nil {
		return nil, err
	}
	if l, ok := v.(*LazyArray); ok {
		return l.Read(sel...)
	}
	a, err := toArray(v)
	if err != nil {
		return nil, err
	}
	return a.Index(sel...)
}

// needLen returns the length of the first dimension of a prerequisite.
func (o *object) needLen(name string) (int, error) {
	shape, err := o.needShape(name)
	if err != nil {
		return 0, err
	}
	if len(shape) == 0 {
		return 0, errors.Wrapf(ErrIndex, "len() of zero-dimensional %s.%s", o.schema.typeName, name)
	}
	return shape[0], nil
}

// computedArray returns a computed field of n as an array.
func computedArray(n Node, name string) (*Array, error) {
	v, err := n.Get(name)
	if err != nil {
		return nil, err
	}
	return toArray(v)
}

func computedInt(n Node, name string) (int, error) {
	v, err := n.Get(name)
	if err != nil {
		return 0, err
	}
	i, ok := v.(int)
	if !ok {
		return 0, errors.Wrapf(ErrUnsupportedType, "%s.%s holds %T", n.Schema().typeName, name, v)
	}
	return i, nil
}

func computedFloat(n Node, name string) (float64, error) {
	a, err := computedArray(n, name)
	if err != nil {
		return 0, err
	}
	return a.Float64()
}

// meanStep returns the mean difference between consecutive elements, or NaN
// for fewer than two elements.
func meanStep(a *Array) float64 {
	vals := a.re
	if len(vals) < 2 {
		return math.NaN()
	}
	return (vals[len(vals)-1] - vals[0]) / float64(len(vals)-1)
}

// stack combines equally sized vectors into an array with one row per
// element and one column per vector.
func stack(cols ...*Array) (*Array, error) {
	if len(cols) == 0 {
		return nil, errors.New("stack of no arrays")
	}
	n := cols[0].Size()
	re := make([]float64, 0, n*len(cols))
	for _, c := range cols {
		if c.Size() != n {
			return nil, errors.Errorf("stack of sizes %d and %d", n, c.Size())
		}
	}
	for i := 0; i < n; i++ {
		for _, c := range cols {
			re = append(re, c.re[i])
		}
	}
	return newArray(Float64, re, nil, []int{n, len(cols)})
}

// rows combines equally sized vectors into an array with one row per
// vector.
func rows(vecs ...[]float64) (*Array, error) {
	n := len(vecs[0])
	re := make([]float64, 0, n*len(vecs))
	for _, v := range vecs {
		if len(v) != n {
			return nil, errors.Errorf("rows of lengths %d and %d", n, len(v))
		}
		re = append(re, v...)
	}
	return newArray(Float64, re, nil, []int{len(vecs), n})
}

func filled(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func notSupported(what string) Computer {
	return func(Node) (interface{}, error) {
		return nil, errors.Wrapf(ErrNotSupported, "%s computation is not provided", what)
	}
}

// norm returns the euclidean length of the vectors with components x, y and
// z.
func norm(x, y, z *Array) (*Array, error) {
	if x.Size() != y.Size() || x.Size() != z.Size() {
		return nil, errors.Errorf("norm of sizes %d, %d and %d", x.Size(), y.Size(), z.Size())
	}
	re := make([]float64, x.Size())
	for i := range re {
		re[i] = math.Sqrt(x.re[i]*x.re[i] + y.re[i]*y.re[i] + z.re[i]*z.re[i])
	}
	return newArray(Float64, re, nil, x.Shape())
}
