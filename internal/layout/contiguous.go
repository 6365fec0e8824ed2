package layout

import (
	"fmt"

	"github.com/robert-malhotra/go-uff/internal/binary"
	"github.com/robert-malhotra/go-uff/internal/message"
)

// Contiguous represents contiguous storage layout.
// Data is stored in a single contiguous block in the file.
type Contiguous struct {
	address   uint64
	size      uint64
	dataspace *message.Dataspace
	datatype  *message.Datatype
	reader    *binary.Reader
}

// NewContiguous creates a new contiguous layout handler.
func NewContiguous(
	layout *message.DataLayout,
	dataspace *message.Dataspace,
	datatype *message.Datatype,
	reader *binary.Reader,
) *Contiguous {
	size := layout.Size
	if size == 0 {
		// Calculate size from dataspace and datatype
		size = calculateDataSize(dataspace, datatype)
	}

	return &Contiguous{
		address:   layout.Address,
		size:      size,
		dataspace: dataspace,
		datatype:  datatype,
		reader:    reader,
	}
}

func (c *Contiguous) Class() message.LayoutClass {
	return message.LayoutContiguous
}

// Read reads all data from contiguous storage.
func (c *Contiguous) Read() ([]byte, error) {
	// Check for undefined address (no data allocated)
	if c.reader.IsUndefinedOffset(c.address) {
		return nil, fmt.Errorf("contiguous data not allocated")
	}

	if c.size == 0 {
		return []byte{}, nil
	}

	// Read data directly from the file
	r := c.reader.At(int64(c.address))
	data, err := r.ReadBytes(int(c.size))
	if err != nil {
		return nil, fmt.Errorf("reading contiguous data: %w", err)
	}

	return data, nil
}

// Address returns the data address.
func (c *Contiguous) Address() uint64 {
	return c.address
}

// Size returns the data size in bytes.
func (c *Contiguous) Size() uint64 {
	return c.size
}

// ReadSlice reads a hyperslab from contiguous storage. Only the selected
// bytes are read: trailing dimensions that are selected in full are merged
// into a single run, and each remaining run is read with one call.
func (c *Contiguous) ReadSlice(start, count []uint64) ([]byte, error) {
	dims := c.dataspace.Dimensions
	if len(dims) == 0 {
		if len(start) == 0 && len(count) == 0 {
			return c.Read()
		}
		return nil, fmt.Errorf("cannot slice scalar dataset with non-empty start/count")
	}

	if len(start) != len(dims) || len(count) != len(dims) {
		return nil, fmt.Errorf("start and count must have %d dimensions, got %d and %d",
			len(dims), len(start), len(count))
	}

	total := uint64(1)
	for d := 0; d < len(dims); d++ {
		if start[d]+count[d] > dims[d] {
			return nil, fmt.Errorf("slice out of bounds: dimension %d, start=%d, count=%d, size=%d",
				d, start[d], count[d], dims[d])
		}
		total *= count[d]
	}

	elementSize := uint64(c.datatype.Size)
	if total == 0 {
		return []byte{}, nil
	}
	if c.reader.IsUndefinedOffset(c.address) {
		return nil, fmt.Errorf("contiguous data not allocated")
	}

	// Byte strides of the stored array
	ndims := len(dims)
	strides := make([]uint64, ndims)
	strides[ndims-1] = elementSize
	for d := ndims - 2; d >= 0; d-- {
		strides[d] = strides[d+1] * dims[d+1]
	}

	// Merge trailing dimensions that are read in full
	split := ndims - 1
	for split > 0 && start[split] == 0 && count[split] == dims[split] {
		split--
	}
	runBytes := count[split] * strides[split]

	result := make([]byte, 0, total*elementSize)
	idx := make([]uint64, split)
	for {
		offset := start[split] * strides[split]
		for d := 0; d < split; d++ {
			offset += (start[d] + idx[d]) * strides[d]
		}

		r := c.reader.At(int64(c.address + offset))
		run, err := r.ReadBytes(int(runBytes))
		if err != nil {
			return nil, fmt.Errorf("reading contiguous data: %w", err)
		}
		result = append(result, run...)

		// Advance the outer index, last dimension fastest
		d := split - 1
		for ; d >= 0; d-- {
			idx[d]++
			if idx[d] < count[d] {
				break
			}
			idx[d] = 0
		}
		if d < 0 {
			break
		}
	}

	return result, nil
}
