package dtype

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	"github.com/robert-malhotra/go-uff/internal/message"
)

// Encode converts a Go value, a slice or array of numbers or a single
// number, to the raw bytes of a numeric datatype.
func Encode(dt *message.Datatype, src interface{}) ([]byte, error) {
	if dt == nil {
		return nil, fmt.Errorf("nil datatype")
	}
	if dt.Class != message.ClassFixedPoint && dt.Class != message.ClassFloatPoint {
		return nil, fmt.Errorf("unsupported datatype class for encoding: %d", dt.Class)
	}

	v := reflect.ValueOf(src)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		one := reflect.MakeSlice(reflect.SliceOf(v.Type()), 1, 1)
		one.Index(0).Set(v)
		v = one
	}

	order := ByteOrder(dt)
	size := int(dt.Size)
	data := make([]byte, v.Len()*size)
	for i := 0; i < v.Len(); i++ {
		if err := putElement(dt, order, data[i*size:(i+1)*size], v.Index(i)); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func putElement(dt *message.Datatype, order binary.ByteOrder, dst []byte, elem reflect.Value) error {
	var bits uint64
	switch elem.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		if dt.Class != message.ClassFixedPoint {
			return fmt.Errorf("cannot encode %v as float", elem.Kind())
		}
		bits = uint64(elem.Int())
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		if dt.Class != message.ClassFixedPoint {
			return fmt.Errorf("cannot encode %v as float", elem.Kind())
		}
		bits = elem.Uint()
	case reflect.Float32, reflect.Float64:
		if dt.Class != message.ClassFloatPoint {
			return fmt.Errorf("cannot encode %v as fixed-point", elem.Kind())
		}
		if len(dst) == 4 {
			bits = uint64(math.Float32bits(float32(elem.Float())))
		} else {
			bits = math.Float64bits(elem.Float())
		}
	default:
		return fmt.Errorf("cannot encode %v", elem.Kind())
	}

	switch len(dst) {
	case 1:
		dst[0] = byte(bits)
	case 2:
		order.PutUint16(dst, uint16(bits))
	case 4:
		order.PutUint32(dst, uint32(bits))
	case 8:
		order.PutUint64(dst, bits)
	default:
		return fmt.Errorf("unsupported element size %d", len(dst))
	}
	return nil
}

// GoTypeToDatatype picks the little-endian numeric datatype for a Go
// element type. Slices and arrays map to their element type. Strings have
// no datatype here; attributes store them as fixed-length strings instead.
func GoTypeToDatatype(t reflect.Type) (*message.Datatype, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Int8:
		return message.NewFixedPointDatatype(1, true, message.OrderLE), nil
	case reflect.Int16:
		return message.NewFixedPointDatatype(2, true, message.OrderLE), nil
	case reflect.Int32:
		return message.NewFixedPointDatatype(4, true, message.OrderLE), nil
	case reflect.Int64, reflect.Int:
		return message.NewFixedPointDatatype(8, true, message.OrderLE), nil
	case reflect.Uint8:
		return message.NewFixedPointDatatype(1, false, message.OrderLE), nil
	case reflect.Uint16:
		return message.NewFixedPointDatatype(2, false, message.OrderLE), nil
	case reflect.Uint32:
		return message.NewFixedPointDatatype(4, false, message.OrderLE), nil
	case reflect.Uint64, reflect.Uint:
		return message.NewFixedPointDatatype(8, false, message.OrderLE), nil
	case reflect.Float32:
		return message.NewFloatDatatype(4, message.OrderLE), nil
	case reflect.Float64:
		return message.NewFloatDatatype(8, message.OrderLE), nil
	default:
		return nil, fmt.Errorf("unsupported Go type: %v", t)
	}
}
