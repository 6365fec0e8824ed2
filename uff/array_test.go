package uff

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grid(t *testing.T) *Array {
	t.Helper()
	data := make([]float64, 24)
	for i := range data {
		data[i] = float64(i)
	}
	a, err := NewArray(data, 2, 3, 4)
	require.NoError(t, err)
	return a
}

func TestNewArrayShape(t *testing.T) {
	a, err := NewArray([]int32{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []int{3}, a.Shape())
	assert.Equal(t, Int32, a.DType())

	_, err = NewArray([]float64{1, 2, 3}, 2, 2)
	assert.Error(t, err)

	s := Scalar(2.5)
	assert.Equal(t, 0, s.NDim())
	assert.Equal(t, "()", formatShape(s.Shape()))
	_, err = s.Len()
	assert.ErrorIs(t, err, ErrIndex)
}

func TestArrayFromGo(t *testing.T) {
	a, ok, err := arrayFromGo([][]int16{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []int{2, 3}, a.Shape())
	assert.Equal(t, Int16, a.DType())
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, a.Real())

	_, ok, err = arrayFromGo([][]float64{{1, 2}, {3}})
	assert.True(t, ok)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, ok, _ = arrayFromGo("text")
	assert.False(t, ok)

	c, ok, err := arrayFromGo([]complex64{1 + 2i})
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, c.IsComplex())
	assert.Equal(t, []complex128{1 + 2i}, c.Complex128s())
}

func TestArrayIndex(t *testing.T) {
	a := grid(t)

	tests := []struct {
		name  string
		sel   []Selector
		shape []int
		vals  []float64
	}{
		{"element", []Selector{At(1), At(2), At(3)}, []int{}, []float64{23}},
		{"negative", []Selector{At(-1), At(-1), At(-1)}, []int{}, []float64{23}},
		{"row", []Selector{At(0), At(1)}, []int{4}, []float64{4, 5, 6, 7}},
		{"column", []Selector{Full(), Full(), At(0)}, []int{2, 3}, []float64{0, 4, 8, 12, 16, 20}},
		{"span", []Selector{At(1), Span(1, 3), Span(2, 10)}, []int{2, 2}, []float64{18, 19, 22, 23}},
		{"empty span", []Selector{Span(2, 1)}, []int{0, 3, 4}, []float64{}},
		{"negative span", []Selector{At(0), At(0), Span(-2, 4)}, []int{2}, []float64{2, 3}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := a.Index(tc.sel...)
			require.NoError(t, err)
			assert.Equal(t, tc.shape, got.Shape())
			assert.Equal(t, tc.vals, got.Real())
		})
	}

	_, err := a.Index(At(2))
	assert.ErrorIs(t, err, ErrIndex)
	_, err = a.Index(Full(), Full(), Full(), Full())
	assert.ErrorIs(t, err, ErrIndex)
}

func TestArrayTranspose(t *testing.T) {
	a := grid(t)
	tr := a.Transpose()
	assert.Equal(t, []int{4, 3, 2}, tr.Shape())

	v, err := tr.Index(At(3), At(1), At(0))
	require.NoError(t, err)
	f, err := v.Float64()
	require.NoError(t, err)
	assert.Equal(t, 7.0, f)

	assert.True(t, tr.T().Equal(a))
}

func TestArraySqueezeReshape(t *testing.T) {
	a := MustArray([]float64{1, 2, 3}, 1, 3, 1)
	assert.Equal(t, []int{3}, a.Squeeze().Shape())

	r, err := a.Reshape(3, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, r.Shape())
	_, err = a.Reshape(2, 2)
	assert.Error(t, err)

	assert.Equal(t, []int{3}, r.Flatten().Shape())
}

func TestArrayScalarConversions(t *testing.T) {
	f, err := MustArray([]float64{2.75}, 1, 1).Float64()
	require.NoError(t, err)
	assert.Equal(t, 2.75, f)

	i, err := Scalar(-3.9).Int()
	require.NoError(t, err)
	assert.Equal(t, -3, i)

	_, err = MustArray([]float64{1, 2}).Float64()
	assert.ErrorIs(t, err, ErrScalarShape)

	_, err = ComplexScalar(1 + 1i).Float64()
	assert.ErrorIs(t, err, ErrUnsupportedType)

	c, err := ComplexScalar(complex64(1 - 2i)).Complex128()
	require.NoError(t, err)
	assert.Equal(t, 1-2i, c)
}

func TestArrayArithmetic(t *testing.T) {
	a := MustArray([]int64{1, 2, 3})

	sum, err := a.Add(MustArray([]int64{10, 20, 30}))
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 22, 33}, sum.Real())
	assert.Equal(t, Int64, sum.DType())

	scaled, err := a.Mul(0.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1, 1.5}, scaled.Real())
	assert.Equal(t, Float64, scaled.DType())

	q, err := a.Div(2)
	require.NoError(t, err)
	assert.Equal(t, Float64, q.DType())
	assert.Equal(t, []float64{0.5, 1, 1.5}, q.Real())

	diff, err := Scalar(10).Sub(a)
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 8, 7}, diff.Real())

	z, err := a.Mul(ComplexScalar(1i))
	require.NoError(t, err)
	assert.True(t, z.IsComplex())
	assert.Equal(t, []complex128{1i, 2i, 3i}, z.Complex128s())

	_, err = a.Add(MustArray([]int64{1, 2}))
	assert.Error(t, err)
	_, err = a.Add("x")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestArrayEqual(t *testing.T) {
	a := MustArray([]int64{1, 2, 3})
	assert.True(t, a.Equal(MustArray([]float64{1, 2, 3})), "element types are not compared")
	assert.False(t, a.Equal(MustArray([]int64{1, 2, 3}, 3, 1)))
	assert.False(t, a.Equal(MustArray([]int64{1, 2, 4})))

	nan := MustArray([]float64{math.NaN()})
	assert.False(t, nan.Equal(nan))
}

func TestArrayString(t *testing.T) {
	assert.Equal(t, "<Array shape=(3,) dtype=float64>", MustArray([]float64{1, 2, 3}).String())
	assert.Equal(t, "<Array shape=(2, 2) dtype=int8>", MustArray([]int8{1, 2, 3, 4}, 2, 2).String())
}

func TestMeshgridIJ(t *testing.T) {
	gx, gz := meshgridIJ(MustArray([]float64{1, 2}), MustArray([]float64{10, 20, 30}))
	assert.Equal(t, []int{2, 3}, gx.Shape())
	assert.Equal(t, []float64{1, 1, 1, 2, 2, 2}, gx.Real())
	assert.Equal(t, []float64{10, 20, 30, 10, 20, 30}, gz.Real())
}

func TestChain(t *testing.T) {
	c := Chain{Transpose(), Squeeze()}

	shape, err := c.ApplyShape([]int{1, 1})
	require.NoError(t, err)
	assert.Equal(t, []int{}, shape)

	_, err = c.ApplyShape([]int{1, 2})
	assert.ErrorIs(t, err, ErrScalarShape)

	idx, err := Chain{Transpose()}.ApplyIndex(Index{At(1)}, []int{2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, Index{Full(), Full(), At(1)}, idx)

	idx, err = Chain{Transpose(), Transpose()}.ApplyIndex(Index{At(1)}, []int{2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, Index{At(1), Full(), Full()}, idx)
}
