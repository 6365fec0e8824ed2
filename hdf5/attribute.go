package hdf5

import (
	"fmt"

	"github.com/robert-malhotra/go-uff/internal/binary"
	"github.com/robert-malhotra/go-uff/internal/dtype"
	"github.com/robert-malhotra/go-uff/internal/message"
)

// Attribute is a named value attached to a group or dataset. UFF files use
// attributes for class tags, list sizes and the complex/array flags.
type Attribute struct {
	msg    *message.Attribute
	reader *binary.Reader // resolves variable-length strings in the global heap
}

// Name returns the attribute name.
func (a *Attribute) Name() string {
	return a.msg.Name
}

// Shape returns the dimensions of the attribute value, or nil for a scalar.
func (a *Attribute) Shape() []uint64 {
	if a.IsScalar() {
		return nil
	}
	return a.msg.Dataspace.Dimensions
}

// NumElements returns the total number of elements.
func (a *Attribute) NumElements() uint64 {
	if a.msg.Dataspace == nil {
		return 1
	}
	return a.msg.Dataspace.NumElements()
}

// IsScalar reports whether the attribute has a scalar dataspace.
func (a *Attribute) IsScalar() bool {
	return a.msg.Dataspace == nil || a.msg.Dataspace.IsScalar()
}

// DtypeClass returns the datatype class.
func (a *Attribute) DtypeClass() message.DatatypeClass {
	if a.msg.Datatype == nil {
		return 0
	}
	return a.msg.Datatype.Class
}

// Read decodes the attribute value into dest, a pointer to a slice.
func (a *Attribute) Read(dest interface{}) error {
	if a.msg.Datatype == nil {
		return fmt.Errorf("attribute %q has no datatype", a.msg.Name)
	}
	if a.msg.Data == nil {
		return fmt.Errorf("attribute %q has no data", a.msg.Name)
	}
	return dtype.ConvertWithReader(a.msg.Datatype, a.msg.Data, a.NumElements(), dest, a.reader)
}

func readAttr[T any](a *Attribute) ([]T, error) {
	var out []T
	err := a.Read(&out)
	return out, err
}

func readAttrScalar[T any](a *Attribute) (T, error) {
	var zero T
	vals, err := readAttr[T](a)
	if err != nil {
		return zero, err
	}
	if len(vals) == 0 {
		return zero, fmt.Errorf("attribute %q is empty", a.msg.Name)
	}
	return vals[0], nil
}

// ReadFloat64 reads the attribute as float64 values.
func (a *Attribute) ReadFloat64() ([]float64, error) { return readAttr[float64](a) }

// ReadInt64 reads the attribute as int64 values.
func (a *Attribute) ReadInt64() ([]int64, error) { return readAttr[int64](a) }

// ReadInt32 reads the attribute as int32 values.
func (a *Attribute) ReadInt32() ([]int32, error) { return readAttr[int32](a) }

// ReadString reads the attribute as string values.
func (a *Attribute) ReadString() ([]string, error) { return readAttr[string](a) }

// ReadScalarInt64 reads the first element as an int64.
func (a *Attribute) ReadScalarInt64() (int64, error) { return readAttrScalar[int64](a) }

// ReadScalarFloat64 reads the first element as a float64.
func (a *Attribute) ReadScalarFloat64() (float64, error) { return readAttrScalar[float64](a) }

// ReadScalarString reads the first element as a string.
func (a *Attribute) ReadScalarString() (string, error) { return readAttrScalar[string](a) }

// Value decodes the attribute into a Go value chosen by its datatype:
// signed integers and enums as int64, unsigned integers as uint64, floats
// as float64 and strings as string. A scalar dataspace holding one element
// yields the bare value, anything else a slice. Other classes yield the
// raw bytes.
func (a *Attribute) Value() (interface{}, error) {
	if a.msg.Datatype == nil {
		return nil, fmt.Errorf("attribute %q has no datatype", a.msg.Name)
	}
	dt := a.msg.Datatype
	switch {
	case dt.Class == message.ClassFixedPoint && !dt.Signed, dt.Class == message.ClassBitfield:
		return attrValue[uint64](a)
	case dt.Class == message.ClassFixedPoint, dt.Class == message.ClassEnum:
		return attrValue[int64](a)
	case dt.Class == message.ClassFloatPoint:
		return attrValue[float64](a)
	case dt.Class == message.ClassString, dt.Class == message.ClassVarLen && dt.IsVarLenString:
		return attrValue[string](a)
	}
	return append([]byte(nil), a.msg.Data...), nil
}

// attrValue unwraps a one-element slice read from a scalar dataspace.
func attrValue[T any](a *Attribute) (interface{}, error) {
	vals, err := readAttr[T](a)
	if err != nil {
		return nil, err
	}
	if a.IsScalar() && len(vals) == 1 {
		return vals[0], nil
	}
	return vals, nil
}
