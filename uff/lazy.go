package uff

import (
	"fmt"
	"sync/atomic"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/robert-malhotra/go-uff/hdf5"
	"github.com/sirupsen/logrus"
)

// LazyArray is a numeric dataset that has not been read yet. Every access
// opens the file, reads what it needs and closes the file again; nothing is
// cached. Operations such as a transpose are recorded and applied to whatever
// is read, so that only the selected part of the dataset is ever loaded.
//
// A complex LazyArray is stored as a group with "real" and "imag" datasets.
type LazyArray struct {
	loc Location
	ops Chain
}

// NewLazyArray returns a lazy view of the dataset at loc.
func NewLazyArray(loc Location, ops ...Operation) *LazyArray {
	return &LazyArray{loc: loc, ops: Chain(nil).with(ops...)}
}

// NewLazyScalar returns a lazy view of a dataset holding a single value. The
// value reads as a zero-dimensional array.
func NewLazyScalar(loc Location, ops ...Operation) *LazyArray {
	return NewLazyArray(loc, append([]Operation{Squeeze()}, ops...)...)
}

// Location returns the location of the stored dataset.
func (a *LazyArray) Location() Location { return a.loc }

// Operations returns the pending operations.
func (a *LazyArray) Operations() Chain { return Chain(nil).with(a.ops...) }

// T returns a lazy transpose. Nothing is read.
func (a *LazyArray) T() *LazyArray {
	return &LazyArray{loc: a.loc, ops: a.ops.with(Transpose())}
}

// stored opens the dataset holding the real part, and for a complex array
// the one holding the imaginary part.
func (a *LazyArray) stored(fn func(re, im *hdf5.Dataset) error) error {
	return a.loc.Open(func(h *Handle) error {
		attrs, err := h.Attrs()
		if err != nil {
			return err
		}
		isComplex, err := attrs.Flag("complex")
		if err != nil {
			return errors.Wrapf(err, "%s", a.loc)
		}
		if !isComplex {
			ds, ok := h.Dataset()
			if !ok {
				return errors.Wrapf(ErrUnsupportedType, "%s is not a dataset", a.loc)
			}
			return fn(ds, nil)
		}
		parts := make([]*hdf5.Dataset, 2)
		for i, name := range []string{"real", "imag"} {
			child, err := h.Child(name)
			if err != nil {
				return err
			}
			ds, ok := child.Dataset()
			if !ok {
				return errors.Wrapf(ErrUnsupportedType, "%s is not a dataset", child.loc)
			}
			parts[i] = ds
		}
		return fn(parts[0], parts[1])
	})
}

func datasetShape(ds *hdf5.Dataset) []int {
	dims := ds.Shape()
	shape := make([]int, len(dims))
	for i, d := range dims {
		shape[i] = int(d)
	}
	return shape
}

func datasetDType(ds *hdf5.Dataset) (DType, error) {
	t, err := ds.GoType()
	if err != nil {
		return Invalid, err
	}
	d := dtypeOf(t)
	if d == Invalid {
		return Invalid, errors.Wrapf(ErrUnsupportedType, "dataset %s holds %v", ds.Path(), t)
	}
	return d, nil
}

// Shape returns the shape after all pending operations.
func (a *LazyArray) Shape() ([]int, error) {
	var shape []int
	err := a.stored(func(re, _ *hdf5.Dataset) error {
		shape = datasetShape(re)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a.ops.ApplyShape(shape)
}

// Size returns the number of elements.
func (a *LazyArray) Size() (int, error) {
	shape, err := a.Shape()
	if err != nil {
		return 0, err
	}
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n, nil
}

// NDim returns the number of dimensions.
func (a *LazyArray) NDim() (int, error) {
	shape, err := a.Shape()
	return len(shape), err
}

// Len returns the length of the first dimension.
func (a *LazyArray) Len() (int, error) {
	shape, err := a.Shape()
	if err != nil {
		return 0, err
	}
	if len(shape) == 0 {
		return 0, errors.Wrap(ErrIndex, "len() of a zero-dimensional array")
	}
	return shape[0], nil
}

// DType returns the element type. Complex arrays always report Complex128.
func (a *LazyArray) DType() (DType, error) {
	var dtype DType
	err := a.stored(func(re, im *hdf5.Dataset) error {
		if im != nil {
			dtype = Complex128
			return nil
		}
		var err error
		dtype, err = datasetDType(re)
		return err
	})
	return dtype, err
}

// Read reads the selection described by sel, after all pending operations.
// Without selectors the whole array is read.
func (a *LazyArray) Read(sel ...Selector) (*Array, error) {
	var out *Array
	err := a.stored(func(re, im *hdf5.Dataset) error {
		shape := datasetShape(re)
		idx, err := a.ops.ApplyIndex(Index(sel), shape)
		if err != nil {
			return err
		}
		h, err := idx.resolve(shape)
		if err != nil {
			return err
		}
		realPart, err := readSlab(re, h)
		if err != nil {
			return err
		}
		if im == nil {
			out = realPart
			return nil
		}
		imagPart, err := readSlab(im, h)
		if err != nil {
			return err
		}
		out = &Array{shape: realPart.shape, dtype: Complex128, re: realPart.re, im: imagPart.re}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a.ops.ApplyData(out)
}

func readSlab(ds *hdf5.Dataset, h hyperslab) (*Array, error) {
	dtype, err := datasetDType(ds)
	if err != nil {
		return nil, err
	}
	start, count := h.uint64s()
	var vals []float64
	if ds.IsScalar() {
		vals, err = ds.ReadSliceFloat64(nil, nil)
	} else {
		vals, err = ds.ReadSliceFloat64(start, count)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", ds.Path())
	}
	if vals == nil {
		vals = []float64{}
	}
	nbytes := uint64(h.size() * dtype.ItemSize())
	atomic.AddInt64(&stats.payloadReads, 1)
	atomic.AddInt64(&stats.bytesRead, int64(nbytes))
	logger.WithFields(logrus.Fields{
		"dataset": ds.Path(),
		"start":   start,
		"count":   count,
		"size":    humanize.Bytes(nbytes),
	}).Debug("read dataset")
	return newArray(dtype, vals, nil, h.shape())
}

// Load reads the whole array.
func (a *LazyArray) Load() (*Array, error) { return a.Read() }

// Float64 reads a single-element array as a float.
func (a *LazyArray) Float64() (float64, error) {
	v, err := a.Load()
	if err != nil {
		return 0, err
	}
	return v.Float64()
}

// Int reads a single-element array as an integer.
func (a *LazyArray) Int() (int, error) {
	v, err := a.Load()
	if err != nil {
		return 0, err
	}
	return v.Int()
}

// Complex128 reads a single-element array as a complex number.
func (a *LazyArray) Complex128() (complex128, error) {
	v, err := a.Load()
	if err != nil {
		return 0, err
	}
	return v.Complex128()
}

// Add reads the array and returns a + b.
func (a *LazyArray) Add(b interface{}) (*Array, error) { return a.arith(b, (*Array).Add) }

// Sub reads the array and returns a - b.
func (a *LazyArray) Sub(b interface{}) (*Array, error) { return a.arith(b, (*Array).Sub) }

// Mul reads the array and returns a * b.
func (a *LazyArray) Mul(b interface{}) (*Array, error) { return a.arith(b, (*Array).Mul) }

// Div reads the array and returns a / b.
func (a *LazyArray) Div(b interface{}) (*Array, error) { return a.arith(b, (*Array).Div) }

func (a *LazyArray) arith(b interface{}, fn func(*Array, interface{}) (*Array, error)) (*Array, error) {
	v, err := a.Load()
	if err != nil {
		return nil, err
	}
	return fn(v, b)
}

// Equal reads both operands and compares them like Array.Equal.
func (a *LazyArray) Equal(b interface{}) (bool, error) {
	x, err := a.Load()
	if err != nil {
		return false, err
	}
	y, err := toArray(b)
	if err != nil {
		return false, err
	}
	return x.Equal(y), nil
}

func (a *LazyArray) String() string {
	shape, err := a.Shape()
	if err != nil {
		return fmt.Sprintf("<LazyArray %s: %v>", a.loc, err)
	}
	dtype, err := a.DType()
	if err != nil {
		return fmt.Sprintf("<LazyArray %s: %v>", a.loc, err)
	}
	n := 1
	for _, d := range shape {
		n *= d
	}
	return fmt.Sprintf("<LazyArray shape=%s dtype=%s %s>", formatShape(shape), dtype, humanize.Bytes(uint64(n*dtype.ItemSize())))
}
