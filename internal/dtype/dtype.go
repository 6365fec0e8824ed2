package dtype

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/robert-malhotra/go-uff/internal/message"
)

var (
	signedTypes = map[uint32]reflect.Type{
		1: reflect.TypeOf(int8(0)), 2: reflect.TypeOf(int16(0)),
		4: reflect.TypeOf(int32(0)), 8: reflect.TypeOf(int64(0)),
	}
	unsignedTypes = map[uint32]reflect.Type{
		1: reflect.TypeOf(uint8(0)), 2: reflect.TypeOf(uint16(0)),
		4: reflect.TypeOf(uint32(0)), 8: reflect.TypeOf(uint64(0)),
	}
	floatTypes = map[uint32]reflect.Type{
		4: reflect.TypeOf(float32(0)), 8: reflect.TypeOf(float64(0)),
	}
)

// GoType returns the Go element type a stored datatype decodes to.
// Enumerations decode as their integer base and bitfields as unsigned
// integers.
func GoType(dt *message.Datatype) (reflect.Type, error) {
	if dt == nil {
		return nil, fmt.Errorf("nil datatype")
	}

	var t reflect.Type
	switch dt.Class {
	case message.ClassFixedPoint, message.ClassEnum:
		if dt.Signed {
			t = signedTypes[dt.Size]
		} else {
			t = unsignedTypes[dt.Size]
		}
	case message.ClassBitfield:
		t = unsignedTypes[dt.Size]
	case message.ClassFloatPoint:
		t = floatTypes[dt.Size]
	case message.ClassString:
		return reflect.TypeOf(""), nil
	case message.ClassVarLen:
		if dt.IsVarLenString {
			return reflect.TypeOf(""), nil
		}
		return nil, fmt.Errorf("variable-length sequences are not supported")
	default:
		return nil, fmt.Errorf("unsupported datatype class: %d", dt.Class)
	}
	if t == nil {
		return nil, fmt.Errorf("unsupported %d-byte size for class %d", dt.Size, dt.Class)
	}
	return t, nil
}

// ByteOrder returns the binary.ByteOrder for the datatype.
func ByteOrder(dt *message.Datatype) binary.ByteOrder {
	if dt.ByteOrder == message.OrderBE {
		return binary.BigEndian
	}
	return binary.LittleEndian
}
