package uff

import (
	"fmt"

	"github.com/pkg/errors"
)

type selectorKind int

const (
	selFull selectorKind = iota
	selAt
	selSpan
)

// Selector selects along one dimension of an array. An At selector removes
// the dimension from the result; Full and Span keep it.
type Selector struct {
	kind        selectorKind
	start, stop int
}

// Full selects a whole dimension.
func Full() Selector { return Selector{kind: selFull} }

// At selects a single position. Negative positions count from the end.
func At(i int) Selector { return Selector{kind: selAt, start: i} }

// Span selects positions start (inclusive) to stop (exclusive). Negative
// bounds count from the end and bounds past either end are clamped.
func Span(start, stop int) Selector { return Selector{kind: selSpan, start: start, stop: stop} }

func (s Selector) String() string {
	switch s.kind {
	case selAt:
		return fmt.Sprint(s.start)
	case selSpan:
		return fmt.Sprintf("%d:%d", s.start, s.stop)
	}
	return ":"
}

// Index is a selection over the leading dimensions of an array. Dimensions
// past the end of the index are selected in full; an empty index selects
// everything.
type Index []Selector

// pad extends the index with Full selectors up to ndim dimensions.
func (idx Index) pad(ndim int) (Index, error) {
	if len(idx) > ndim {
		return nil, errors.Wrapf(ErrIndex, "%d indices for a %d-dimensional array", len(idx), ndim)
	}
	out := make(Index, ndim)
	copy(out, idx)
	for i := len(idx); i < ndim; i++ {
		out[i] = Full()
	}
	return out, nil
}

// hyperslab is an index resolved against a shape.
type hyperslab struct {
	start, count []int
	keep         []bool
}

func (h hyperslab) shape() []int {
	out := []int{}
	for i, c := range h.count {
		if h.keep[i] {
			out = append(out, c)
		}
	}
	return out
}

func (h hyperslab) size() int {
	n := 1
	for _, c := range h.count {
		n *= c
	}
	return n
}

func (h hyperslab) uint64s() (start, count []uint64) {
	start = make([]uint64, len(h.start))
	count = make([]uint64, len(h.count))
	for i := range h.start {
		start[i] = uint64(h.start[i])
		count[i] = uint64(h.count[i])
	}
	return start, count
}

// resolve computes the hyperslab the index selects from an array of the
// given shape.
func (idx Index) resolve(shape []int) (hyperslab, error) {
	full, err := idx.pad(len(shape))
	if err != nil {
		return hyperslab{}, err
	}
	h := hyperslab{
		start: make([]int, len(shape)),
		count: make([]int, len(shape)),
		keep:  make([]bool, len(shape)),
	}
	for d, sel := range full {
		n := shape[d]
		switch sel.kind {
		case selFull:
			h.start[d], h.count[d], h.keep[d] = 0, n, true
		case selAt:
			i := sel.start
			if i < 0 {
				i += n
			}
			if i < 0 || i >= n {
				return hyperslab{}, errors.Wrapf(ErrIndex, "index %d for axis %d with size %d", sel.start, d, n)
			}
			h.start[d], h.count[d] = i, 1
		case selSpan:
			lo, hi := clamp(sel.start, n), clamp(sel.stop, n)
			if hi < lo {
				hi = lo
			}
			h.start[d], h.count[d], h.keep[d] = lo, hi-lo, true
		}
	}
	return h, nil
}

func clamp(i, n int) int {
	if i < 0 {
		i += n
	}
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
