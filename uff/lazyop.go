package uff

import (
	"github.com/pkg/errors"
)

// Operation is a deferred transformation attached to a LazyArray. Each of the
// three functions may be nil, in which case that part is left unchanged.
//
// Index maps an index over the transformed array to an index over the array
// before the transformation, given that array's shape. Shape maps the shape
// before the transformation to the shape after it. Data transforms the values
// that were read.
type Operation struct {
	Name  string
	Data  func(a *Array) (*Array, error)
	Index func(idx Index, shape []int) (Index, error)
	Shape func(shape []int) ([]int, error)
}

// Chain is an ordered list of operations, applied first to last.
type Chain []Operation

// ApplyData applies the data transforms in order.
func (c Chain) ApplyData(a *Array) (*Array, error) {
	for _, op := range c {
		if op.Data == nil {
			continue
		}
		var err error
		if a, err = op.Data(a); err != nil {
			return nil, errors.Wrapf(err, "applying %s", op.Name)
		}
	}
	return a, nil
}

// ApplyIndex rewrites idx so that it addresses the stored array. The shape
// seen by each operation is the stored shape after the operations before it.
func (c Chain) ApplyIndex(idx Index, shape []int) (Index, error) {
	for _, op := range c {
		var err error
		if op.Index != nil {
			if idx, err = op.Index(idx, shape); err != nil {
				return nil, errors.Wrapf(err, "applying %s", op.Name)
			}
		}
		if op.Shape != nil {
			if shape, err = op.Shape(shape); err != nil {
				return nil, errors.Wrapf(err, "applying %s", op.Name)
			}
		}
	}
	return idx, nil
}

// ApplyShape applies the shape transforms in order.
func (c Chain) ApplyShape(shape []int) ([]int, error) {
	for _, op := range c {
		if op.Shape == nil {
			continue
		}
		var err error
		if shape, err = op.Shape(shape); err != nil {
			return nil, errors.Wrapf(err, "applying %s", op.Name)
		}
	}
	return shape, nil
}

func (c Chain) with(ops ...Operation) Chain {
	out := make(Chain, 0, len(c)+len(ops))
	out = append(out, c...)
	return append(out, ops...)
}

// Transpose reverses the dimensions of the array.
func Transpose() Operation {
	return Operation{
		Name: "transpose",
		Data: func(a *Array) (*Array, error) { return a.Transpose(), nil },
		Index: func(idx Index, shape []int) (Index, error) {
			full, err := idx.pad(len(shape))
			if err != nil {
				return nil, err
			}
			for i, j := 0, len(full)-1; i < j; i, j = i+1, j-1 {
				full[i], full[j] = full[j], full[i]
			}
			return full, nil
		},
		Shape: func(shape []int) ([]int, error) {
			out := make([]int, len(shape))
			for i, d := range shape {
				out[len(shape)-1-i] = d
			}
			return out, nil
		},
	}
}

// Squeeze collapses an array holding a single element into a
// zero-dimensional array. Arrays with more elements are rejected with
// ErrScalarShape. The result takes no index, so any selector fails with
// ErrIndex.
func Squeeze() Operation {
	return Operation{
		Name: "squeeze",
		Data: func(a *Array) (*Array, error) {
			if a.Size() != 1 {
				return nil, errors.Wrapf(ErrScalarShape, "shape %v", a.shape)
			}
			return a.Squeeze(), nil
		},
		Index: func(idx Index, shape []int) (Index, error) {
			if len(idx) > 0 {
				return nil, errors.Wrapf(ErrIndex, "%d selectors on a zero-dimensional array", len(idx))
			}
			return idx, nil
		},
		Shape: func(shape []int) ([]int, error) {
			for _, d := range shape {
				if d != 1 {
					return nil, errors.Wrapf(ErrScalarShape, "shape %v", shape)
				}
			}
			return []int{}, nil
		},
	}
}
