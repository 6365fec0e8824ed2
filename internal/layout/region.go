package layout

import "fmt"

// extractHyperslab copies the count-shaped box at start out of data, a
// row-major array shaped dims.
func extractHyperslab(data []byte, dims []uint64, start, count []uint64, elementSize uint64) ([]byte, error) {
	if len(dims) == 0 {
		return nil, fmt.Errorf("cannot extract hyperslab from scalar dataset")
	}
	n := uint64(1)
	for _, k := range count {
		n *= k
	}
	out := make([]byte, n*elementSize)
	copyRegion(out, data, count, make([]uint64, len(dims)), dims, start, count, elementSize)
	return out, nil
}

// copyChunkToSlice copies the part of a chunk at chunkOffset that falls
// inside the selection into output, which is shaped selCount. Stored chunks
// always have the full chunk shape, even at the dataset edge.
func copyChunkToSlice(output, chunk []byte, chunkOffset, dims []uint64, chunkDims []uint32, selStart, selCount []uint64, elementSize uint64) {
	n := len(dims)
	shape := make([]uint64, n)
	srcAt := make([]uint64, n)
	dstAt := make([]uint64, n)
	extent := make([]uint64, n)
	for d := 0; d < n; d++ {
		shape[d] = uint64(chunkDims[d])
		lo := max(selStart[d], chunkOffset[d])
		hi := min(selStart[d]+selCount[d], chunkOffset[d]+shape[d], dims[d])
		if hi <= lo {
			return
		}
		srcAt[d], dstAt[d], extent[d] = lo-chunkOffset[d], lo-selStart[d], hi-lo
	}
	copyRegion(output, chunk, selCount, dstAt, shape, srcAt, extent, elementSize)
}

// copyRegion copies a box of extent elements per dimension from src, a
// row-major array shaped srcDims, starting at srcAt, into dst, shaped
// dstDims, starting at dstAt. Rows that would run past either buffer are
// skipped.
func copyRegion(dst, src []byte, dstDims, dstAt, srcDims, srcAt, extent []uint64, elementSize uint64) {
	n := len(extent)
	if n == 0 {
		return
	}
	dstStride := strides(dstDims, elementSize)
	srcStride := strides(srcDims, elementSize)
	row := extent[n-1] * elementSize

	var walk func(d int, so, do uint64)
	walk = func(d int, so, do uint64) {
		if d == n-1 {
			s := so + srcAt[d]*elementSize
			t := do + dstAt[d]*elementSize
			if s+row <= uint64(len(src)) && t+row <= uint64(len(dst)) {
				copy(dst[t:t+row], src[s:s+row])
			}
			return
		}
		for i := uint64(0); i < extent[d]; i++ {
			walk(d+1, so+(srcAt[d]+i)*srcStride[d], do+(dstAt[d]+i)*dstStride[d])
		}
	}
	walk(0, 0, 0)
}

func strides(dims []uint64, elementSize uint64) []uint64 {
	s := make([]uint64, len(dims))
	acc := elementSize
	for d := len(dims) - 1; d >= 0; d-- {
		s[d] = acc
		acc *= dims[d]
	}
	return s
}
