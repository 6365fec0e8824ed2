package uff

import (
	"fmt"
	"math"
	"math/cmplx"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// DType is the element type of an array.
type DType int

const (
	Invalid DType = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Complex64
	Complex128
)

var dtypeNames = [...]string{
	Invalid:    "invalid",
	Int8:       "int8",
	Int16:      "int16",
	Int32:      "int32",
	Int64:      "int64",
	Uint8:      "uint8",
	Uint16:     "uint16",
	Uint32:     "uint32",
	Uint64:     "uint64",
	Float32:    "float32",
	Float64:    "float64",
	Complex64:  "complex64",
	Complex128: "complex128",
}

func (d DType) String() string {
	if d < 0 || int(d) >= len(dtypeNames) {
		return fmt.Sprintf("DType(%d)", int(d))
	}
	return dtypeNames[d]
}

// ItemSize returns the size of one element in bytes.
func (d DType) ItemSize() int {
	switch d {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64, Complex64:
		return 8
	case Complex128:
		return 16
	}
	return 0
}

// IsComplex reports whether the type has an imaginary part.
func (d DType) IsComplex() bool { return d == Complex64 || d == Complex128 }

// IsFloat reports whether the type is a real floating point type.
func (d DType) IsFloat() bool { return d == Float32 || d == Float64 }

// IsInteger reports whether the type is a signed or unsigned integer type.
func (d DType) IsInteger() bool { return d >= Int8 && d <= Uint64 }

// part returns the real type backing one half of a complex type.
func (d DType) part() DType {
	switch d {
	case Complex64:
		return Float32
	case Complex128:
		return Float64
	}
	return d
}

func dtypeOf(t reflect.Type) DType {
	switch t.Kind() {
	case reflect.Int8:
		return Int8
	case reflect.Int16:
		return Int16
	case reflect.Int32:
		return Int32
	case reflect.Int64, reflect.Int:
		return Int64
	case reflect.Uint8:
		return Uint8
	case reflect.Uint16:
		return Uint16
	case reflect.Uint32:
		return Uint32
	case reflect.Uint64, reflect.Uint:
		return Uint64
	case reflect.Float32:
		return Float32
	case reflect.Float64:
		return Float64
	case reflect.Complex64:
		return Complex64
	case reflect.Complex128:
		return Complex128
	}
	return Invalid
}

// promote returns the type of the result of an arithmetic operation.
func promote(a, b DType, division bool) DType {
	switch {
	case a.IsComplex() || b.IsComplex():
		return Complex128
	case a == Float32 && b == Float32:
		return Float32
	case a.IsFloat() || b.IsFloat() || division:
		return Float64
	}
	return Int64
}

// Real is the set of real element types an Array can be built from.
type Real interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Complex is the set of complex element types an Array can be built from.
type Complex interface {
	~complex64 | ~complex128
}

// Array is an in-memory n-dimensional array in row-major order. Arrays are
// immutable; every operation returns a new Array.
type Array struct {
	shape []int
	dtype DType
	re    []float64
	im    []float64
}

// NewArray returns an array holding data with the given shape. Without a
// shape the array is one-dimensional.
func NewArray[T Real](data []T, shape ...int) (*Array, error) {
	var zero T
	re := make([]float64, len(data))
	for i, v := range data {
		re[i] = float64(v)
	}
	return newArray(dtypeOf(reflect.TypeOf(zero)), re, nil, shape)
}

// NewComplexArray returns a complex array holding data with the given shape.
func NewComplexArray[T Complex](data []T, shape ...int) (*Array, error) {
	var zero T
	re := make([]float64, len(data))
	im := make([]float64, len(data))
	for i, v := range data {
		c := complex128(v)
		re[i], im[i] = real(c), imag(c)
	}
	return newArray(dtypeOf(reflect.TypeOf(zero)), re, im, shape)
}

// MustArray is like NewArray but panics if the shape does not match.
func MustArray[T Real](data []T, shape ...int) *Array {
	a, err := NewArray(data, shape...)
	if err != nil {
		panic(err)
	}
	return a
}

// Scalar returns a zero-dimensional array.
func Scalar[T Real](v T) *Array {
	a, _ := NewArray([]T{v}, []int{}...)
	return a
}

// ComplexScalar returns a zero-dimensional complex array.
func ComplexScalar[T Complex](v T) *Array {
	a, _ := NewComplexArray([]T{v}, []int{}...)
	return a
}

func newArray(dtype DType, re, im []float64, shape []int) (*Array, error) {
	if shape == nil {
		shape = []int{len(re)}
	}
	n := 1
	for _, d := range shape {
		if d < 0 {
			return nil, errors.Errorf("negative dimension in shape %v", shape)
		}
		n *= d
	}
	if n != len(re) {
		return nil, errors.Errorf("shape %v holds %d elements, got %d", shape, n, len(re))
	}
	return &Array{shape: append([]int{}, shape...), dtype: dtype, re: re, im: im}, nil
}

// Shape returns the dimensions of the array.
func (a *Array) Shape() []int { return append([]int{}, a.shape...) }

// NDim returns the number of dimensions.
func (a *Array) NDim() int { return len(a.shape) }

// Size returns the number of elements.
func (a *Array) Size() int { return len(a.re) }

// Len returns the length of the first dimension.
func (a *Array) Len() (int, error) {
	if len(a.shape) == 0 {
		return 0, errors.Wrap(ErrIndex, "len() of a zero-dimensional array")
	}
	return a.shape[0], nil
}

// DType returns the element type.
func (a *Array) DType() DType { return a.dtype }

// IsComplex reports whether the array has an imaginary part.
func (a *Array) IsComplex() bool { return a.im != nil }

// Real returns a copy of the real parts in row-major order.
func (a *Array) Real() []float64 { return append([]float64{}, a.re...) }

// Imag returns a copy of the imaginary parts, or zeros for a real array.
func (a *Array) Imag() []float64 {
	if a.im == nil {
		return make([]float64, len(a.re))
	}
	return append([]float64{}, a.im...)
}

// Complex128s returns the elements as complex numbers.
func (a *Array) Complex128s() []complex128 {
	out := make([]complex128, len(a.re))
	for i := range a.re {
		out[i] = complex(a.re[i], a.imagAt(i))
	}
	return out
}

// Ints returns the real parts truncated to integers.
func (a *Array) Ints() []int {
	out := make([]int, len(a.re))
	for i, v := range a.re {
		out[i] = int(v)
	}
	return out
}

func (a *Array) imagAt(i int) float64 {
	if a.im == nil {
		return 0
	}
	return a.im[i]
}

// Load returns a. It makes *Array a Numeric.
func (a *Array) Load() (*Array, error) { return a, nil }

func (a *Array) single() (int, error) {
	if len(a.re) != 1 {
		return 0, errors.Wrapf(ErrScalarShape, "array of shape %v", a.shape)
	}
	return 0, nil
}

// Float64 converts a single-element real array to a float.
func (a *Array) Float64() (float64, error) {
	i, err := a.single()
	if err != nil {
		return 0, err
	}
	if a.im != nil {
		return 0, errors.Wrap(ErrUnsupportedType, "converting a complex value to float64")
	}
	return a.re[i], nil
}

// Int converts a single-element real array to an integer, truncating toward
// zero.
func (a *Array) Int() (int, error) {
	f, err := a.Float64()
	return int(f), err
}

// Complex128 converts a single-element array to a complex number.
func (a *Array) Complex128() (complex128, error) {
	i, err := a.single()
	if err != nil {
		return 0, err
	}
	return complex(a.re[i], a.imagAt(i)), nil
}

// strides returns the row-major element strides of shape.
func strides(shape []int) []int {
	s := make([]int, len(shape))
	step := 1
	for i := len(shape) - 1; i >= 0; i-- {
		s[i] = step
		step *= shape[i]
	}
	return s
}

// gather copies the elements addressed by an odometer over counts, where
// element k of the odometer maps to base plus the dot product with steps.
func (a *Array) gather(base int, counts, steps []int) (re, im []float64) {
	n := 1
	for _, c := range counts {
		n *= c
	}
	re = make([]float64, 0, n)
	if a.im != nil {
		im = make([]float64, 0, n)
	}
	if n == 0 {
		return re, im
	}
	pos := make([]int, len(counts))
	for {
		off := base
		for d, p := range pos {
			off += p * steps[d]
		}
		re = append(re, a.re[off])
		if a.im != nil {
			im = append(im, a.im[off])
		}
		d := len(pos) - 1
		for ; d >= 0; d-- {
			pos[d]++
			if pos[d] < counts[d] {
				break
			}
			pos[d] = 0
		}
		if d < 0 {
			return re, im
		}
	}
}

// Index returns the selection described by sel.
func (a *Array) Index(sel ...Selector) (*Array, error) {
	h, err := Index(sel).resolve(a.shape)
	if err != nil {
		return nil, err
	}
	return a.slab(h), nil
}

func (a *Array) slab(h hyperslab) *Array {
	st := strides(a.shape)
	base := 0
	for d := range h.start {
		base += h.start[d] * st[d]
	}
	re, im := a.gather(base, h.count, st)
	return &Array{shape: h.shape(), dtype: a.dtype, re: re, im: im}
}

// Transpose reverses the order of the dimensions.
func (a *Array) Transpose() *Array {
	n := len(a.shape)
	st := strides(a.shape)
	counts := make([]int, n)
	steps := make([]int, n)
	for i := 0; i < n; i++ {
		counts[i] = a.shape[n-1-i]
		steps[i] = st[n-1-i]
	}
	re, im := a.gather(0, counts, steps)
	return &Array{shape: counts, dtype: a.dtype, re: re, im: im}
}

// T is shorthand for Transpose.
func (a *Array) T() *Array { return a.Transpose() }

// Squeeze removes all dimensions of length one.
func (a *Array) Squeeze() *Array {
	shape := []int{}
	for _, d := range a.shape {
		if d != 1 {
			shape = append(shape, d)
		}
	}
	return &Array{shape: shape, dtype: a.dtype, re: a.re, im: a.im}
}

// Reshape returns the same elements with a new shape.
func (a *Array) Reshape(shape ...int) (*Array, error) {
	return newArray(a.dtype, a.re, a.im, shape)
}

// Flatten returns a one-dimensional view of the elements.
func (a *Array) Flatten() *Array {
	return &Array{shape: []int{len(a.re)}, dtype: a.dtype, re: a.re, im: a.im}
}

// Equal reports whether both arrays have the same shape and elements. The
// element types are not compared and NaN never equals NaN.
func (a *Array) Equal(b *Array) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.shape) != len(b.shape) {
		return false
	}
	for i := range a.shape {
		if a.shape[i] != b.shape[i] {
			return false
		}
	}
	for i := range a.re {
		if a.re[i] != b.re[i] || a.imagAt(i) != b.imagAt(i) {
			return false
		}
	}
	return true
}

// Map applies fn to every real element.
func (a *Array) Map(fn func(float64) float64) *Array {
	re := make([]float64, len(a.re))
	for i, v := range a.re {
		re[i] = fn(v)
	}
	dtype := a.dtype
	if !dtype.IsFloat() {
		dtype = Float64
	}
	return &Array{shape: a.Shape(), dtype: dtype, re: re}
}

// Add returns a + b. Either operand may be a single element, which is then
// broadcast.
func (a *Array) Add(b interface{}) (*Array, error) { return a.binary("add", b, cadd) }

// Sub returns a - b.
func (a *Array) Sub(b interface{}) (*Array, error) { return a.binary("sub", b, csub) }

// Mul returns a * b.
func (a *Array) Mul(b interface{}) (*Array, error) { return a.binary("mul", b, cmul) }

// Div returns a / b. Division is always true division.
func (a *Array) Div(b interface{}) (*Array, error) { return a.binary("div", b, cdiv) }

func cadd(x, y complex128) complex128 { return x + y }
func csub(x, y complex128) complex128 { return x - y }
func cmul(x, y complex128) complex128 { return x * y }

func cdiv(x, y complex128) complex128 {
	if imag(x) == 0 && imag(y) == 0 {
		return complex(real(x)/real(y), 0)
	}
	if y == 0 {
		return cmplx.NaN()
	}
	return x / y
}

func (a *Array) binary(name string, other interface{}, fn func(x, y complex128) complex128) (*Array, error) {
	b, err := toArray(other)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}
	var shape []int
	switch {
	case sameShape(a.shape, b.shape):
		shape = a.Shape()
	case b.Size() == 1:
		shape = a.Shape()
	case a.Size() == 1:
		shape = b.Shape()
	default:
		return nil, errors.Errorf("%s: cannot broadcast shapes %v and %v", name, a.shape, b.shape)
	}
	n := 1
	for _, d := range shape {
		n *= d
	}
	dtype := promote(a.dtype, b.dtype, name == "div")
	re := make([]float64, n)
	var im []float64
	if dtype.IsComplex() {
		im = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		ia, ib := i, i
		if a.Size() == 1 {
			ia = 0
		}
		if b.Size() == 1 {
			ib = 0
		}
		z := fn(complex(a.re[ia], a.imagAt(ia)), complex(b.re[ib], b.imagAt(ib)))
		re[i] = real(z)
		if im != nil {
			im[i] = imag(z)
		}
	}
	if dtype.IsInteger() {
		for i := range re {
			re[i] = math.Trunc(re[i])
		}
	}
	return &Array{shape: shape, dtype: dtype, re: re, im: im}, nil
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// values returns the elements as a flat typed slice for storage. For a
// complex array the real and imaginary parts are returned separately.
func (a *Array) values() (re, im interface{}) {
	part := a.dtype.part()
	re = typedSlice(part, a.re)
	if a.im != nil {
		im = typedSlice(part, a.im)
	}
	return re, im
}

func typedSlice(dtype DType, vals []float64) interface{} {
	switch dtype {
	case Int8:
		return convertSlice[int8](vals)
	case Int16:
		return convertSlice[int16](vals)
	case Int32:
		return convertSlice[int32](vals)
	case Int64:
		return convertSlice[int64](vals)
	case Uint8:
		return convertSlice[uint8](vals)
	case Uint16:
		return convertSlice[uint16](vals)
	case Uint32:
		return convertSlice[uint32](vals)
	case Uint64:
		return convertSlice[uint64](vals)
	case Float32:
		return convertSlice[float32](vals)
	}
	return append([]float64{}, vals...)
}

func convertSlice[T Real](vals []float64) []T {
	out := make([]T, len(vals))
	for i, v := range vals {
		out[i] = T(v)
	}
	return out
}

func (a *Array) String() string {
	return fmt.Sprintf("<Array shape=%s dtype=%s>", formatShape(a.shape), a.dtype)
}

func formatShape(shape []int) string {
	parts := make([]string, len(shape))
	for i, d := range shape {
		parts[i] = fmt.Sprint(d)
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Numeric is a value that can produce an in-memory array. *Array and
// *LazyArray are Numeric.
type Numeric interface {
	Load() (*Array, error)
}

// toArray converts an operand to an array. Accepted operands are Numeric
// values, Go numbers and flat slices of Go numbers.
func toArray(v interface{}) (*Array, error) {
	if n, ok := v.(Numeric); ok {
		return n.Load()
	}
	a, ok, err := arrayFromGo(v)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedType, "%T is not numeric", v)
	}
	return a, nil
}

// arrayFromGo converts a Go number or a rectangular, possibly nested, slice
// of Go numbers to an Array. ok is false if v is not numeric.
func arrayFromGo(v interface{}) (a *Array, ok bool, err error) {
	if v == nil {
		return nil, false, nil
	}
	val := reflect.ValueOf(v)
	var shape []int
	t := val.Type()
	for t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		t = t.Elem()
	}
	dtype := dtypeOf(t)
	if dtype == Invalid {
		return nil, false, nil
	}
	for cur := val; cur.Kind() == reflect.Slice || cur.Kind() == reflect.Array; {
		shape = append(shape, cur.Len())
		if cur.Len() == 0 {
			break
		}
		cur = cur.Index(0)
	}
	var re, im []float64
	var walk func(v reflect.Value, depth int) error
	walk = func(v reflect.Value, depth int) error {
		if depth < len(shape) {
			if v.Len() != shape[depth] {
				return errors.Wrapf(ErrUnsupportedType, "ragged slice: length %d at depth %d, expected %d", v.Len(), depth, shape[depth])
			}
			for i := 0; i < v.Len(); i++ {
				if err := walk(v.Index(i), depth+1); err != nil {
					return err
				}
			}
			return nil
		}
		switch {
		case v.CanInt():
			re = append(re, float64(v.Int()))
		case v.CanUint():
			re = append(re, float64(v.Uint()))
		case v.CanFloat():
			re = append(re, v.Float())
		case v.CanComplex():
			c := v.Complex()
			re = append(re, real(c))
			im = append(im, imag(c))
		}
		return nil
	}
	if err := walk(val, 0); err != nil {
		return nil, true, errors.Wrapf(ErrUnsupportedType, "%v", err)
	}
	if !dtype.IsComplex() {
		im = nil
	} else if im == nil {
		im = []float64{}
	}
	if re == nil {
		re = []float64{}
	}
	if shape == nil {
		shape = []int{}
	}
	a, err = newArray(dtype, re, im, shape)
	return a, true, err
}

// meshgridIJ returns the matrix-indexed grids of two vectors: the first grid
// repeats x down the rows and the second repeats y along the columns.
func meshgridIJ(x, y *Array) (*Array, *Array) {
	nx, ny := x.Size(), y.Size()
	gx := make([]float64, nx*ny)
	gy := make([]float64, nx*ny)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			gx[i*ny+j] = x.re[i]
			gy[i*ny+j] = y.re[j]
		}
	}
	shape := []int{nx, ny}
	return &Array{shape: shape, dtype: Float64, re: gx}, &Array{shape: append([]int{}, shape...), dtype: Float64, re: gy}
}

// zip combines two arrays of equal size element by element.
func zip(a, b *Array, fn func(x, y float64) float64) (*Array, error) {
	if a.Size() != b.Size() {
		return nil, errors.Errorf("size mismatch: %v and %v", a.shape, b.shape)
	}
	re := make([]float64, len(a.re))
	for i := range re {
		re[i] = fn(a.re[i], b.re[i])
	}
	return &Array{shape: a.Shape(), dtype: Float64, re: re}, nil
}
