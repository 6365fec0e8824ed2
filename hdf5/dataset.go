package hdf5

import (
	"fmt"
	"path"
	"reflect"

	"github.com/robert-malhotra/go-uff/internal/binary"
	"github.com/robert-malhotra/go-uff/internal/dtype"
	"github.com/robert-malhotra/go-uff/internal/layout"
	"github.com/robert-malhotra/go-uff/internal/message"
	"github.com/robert-malhotra/go-uff/internal/object"
)

// Dataset represents an HDF5 dataset.
type Dataset struct {
	file      *File
	path      string
	header    *object.Header
	dataspace *message.Dataspace
	datatype  *message.Datatype
	layout    layout.Layout
}

// newDataset creates a Dataset from an object header.
func newDataset(f *File, path string, header *object.Header) (*Dataset, error) {
	ds := &Dataset{
		file:   f,
		path:   path,
		header: header,
	}

	// Get dataspace
	ds.dataspace = header.Dataspace()
	if ds.dataspace == nil {
		return nil, fmt.Errorf("dataset missing dataspace message")
	}

	// Get datatype
	ds.datatype = header.Datatype()
	if ds.datatype == nil {
		return nil, fmt.Errorf("dataset missing datatype message")
	}

	// Get layout
	layoutMsg := header.DataLayout()
	if layoutMsg == nil {
		return nil, fmt.Errorf("dataset missing layout message")
	}

	// Create layout handler
	filterMsg := header.FilterPipeline()
	var err error
	ds.layout, err = layout.New(layoutMsg, ds.dataspace, ds.datatype, filterMsg, f.reader)
	if err != nil {
		return nil, fmt.Errorf("creating layout: %w", err)
	}

	return ds, nil
}

// Name returns the last component of the dataset path.
func (d *Dataset) Name() string {
	return path.Base(d.path)
}

// Path returns the absolute path of the dataset.
func (d *Dataset) Path() string {
	return d.path
}

// Shape returns the dimensions of the dataset, or nil for a scalar.
func (d *Dataset) Shape() []uint64 {
	if d.dataspace.IsScalar() {
		return nil
	}
	return d.dataspace.Dimensions
}

// NumElements returns the total number of elements.
func (d *Dataset) NumElements() uint64 {
	return d.dataspace.NumElements()
}

// IsScalar reports whether the dataset has a scalar dataspace.
func (d *Dataset) IsScalar() bool {
	return d.dataspace.IsScalar()
}

// DtypeClass returns the datatype class.
func (d *Dataset) DtypeClass() message.DatatypeClass {
	return d.datatype.Class
}

// GoType returns the Go element type the stored datatype decodes to.
func (d *Dataset) GoType() (reflect.Type, error) {
	return dtype.GoType(d.datatype)
}

// Read decodes the whole dataset into dest, a pointer to a slice.
func (d *Dataset) Read(dest interface{}) error {
	raw, err := d.layout.Read()
	if err != nil {
		return fmt.Errorf("reading %s: %w", d.path, err)
	}
	return dtype.ConvertWithReader(d.datatype, raw, d.dataspace.NumElements(), dest, d.file.reader)
}

// ReadFloat64 reads the whole dataset as float64 values.
func (d *Dataset) ReadFloat64() ([]float64, error) {
	var out []float64
	err := d.Read(&out)
	return out, err
}

// ReadSlice returns the raw bytes of the hyperslab with the given start and
// count per dimension, in row-major order. Only the chunks the hyperslab
// touches are read. A scalar dataset takes empty start and count.
func (d *Dataset) ReadSlice(start, count []uint64) ([]byte, error) {
	if len(start) != len(count) {
		return nil, fmt.Errorf("start has %d dimensions, count has %d", len(start), len(count))
	}
	raw, err := d.layout.ReadSlice(start, count)
	if err != nil {
		return nil, fmt.Errorf("reading slice of %s: %w", d.path, err)
	}
	return raw, nil
}

// ReadSliceFloat64 reads a hyperslab as float64 values.
func (d *Dataset) ReadSliceFloat64(start, count []uint64) ([]float64, error) {
	raw, err := d.ReadSlice(start, count)
	if err != nil {
		return nil, err
	}
	n := uint64(1)
	for _, c := range count {
		n *= c
	}
	var out []float64
	err = dtype.ConvertWithReader(d.datatype, raw, n, &out, d.file.reader)
	return out, err
}

// Attrs returns the names of the attributes attached to the dataset.
func (d *Dataset) Attrs() []string {
	return attrNames(d.header)
}

// Attr returns the named attribute, or nil if the dataset has none.
func (d *Dataset) Attr(name string) *Attribute {
	return findAttr(d.header, d.file.reader, name)
}

// attrNames lists the attribute messages of an object header.
func attrNames(h *object.Header) []string {
	var names []string
	for _, msg := range h.GetMessages(message.TypeAttribute) {
		names = append(names, msg.(*message.Attribute).Name)
	}
	return names
}

func findAttr(h *object.Header, r *binary.Reader, name string) *Attribute {
	for _, msg := range h.GetMessages(message.TypeAttribute) {
		if attr := msg.(*message.Attribute); attr.Name == name {
			return &Attribute{msg: attr, reader: r}
		}
	}
	return nil
}
