package dtype

import (
	"fmt"
	"math"
	"reflect"
	"unsafe"

	"github.com/robert-malhotra/go-uff/internal/binary"
	"github.com/robert-malhotra/go-uff/internal/heap"
	"github.com/robert-malhotra/go-uff/internal/message"
)

// Convert decodes n elements of raw data into dest, a pointer to a slice.
func Convert(dt *message.Datatype, data []byte, n uint64, dest interface{}) error {
	return ConvertWithReader(dt, data, n, dest, nil)
}

// ConvertWithReader is Convert with access to the file, which
// variable-length strings need to reach the global heap.
func ConvertWithReader(dt *message.Datatype, data []byte, n uint64, dest interface{}, reader *binary.Reader) error {
	if dt == nil {
		return fmt.Errorf("nil datatype")
	}
	ptr := reflect.ValueOf(dest)
	if ptr.Kind() != reflect.Ptr || ptr.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("dest must be a pointer to a slice, got %T", dest)
	}
	out := ptr.Elem()
	if out.Len() < int(n) {
		out.Set(reflect.MakeSlice(out.Type(), int(n), int(n)))
	}

	switch dt.Class {
	case message.ClassFixedPoint, message.ClassFloatPoint, message.ClassEnum, message.ClassBitfield:
		return convertNumeric(dt, data, n, out)
	case message.ClassString:
		return convertString(dt, data, n, out)
	case message.ClassVarLen:
		if !dt.IsVarLenString {
			return fmt.Errorf("variable-length sequences are not supported")
		}
		return convertVarLenString(data, n, out, reader)
	default:
		return fmt.Errorf("unsupported datatype class for conversion: %d", dt.Class)
	}
}

func convertNumeric(dt *message.Datatype, data []byte, n uint64, out reflect.Value) error {
	size := int(dt.Size)
	if need := int(n) * size; need > len(data) {
		return fmt.Errorf("not enough data: need %d bytes, have %d", need, len(data))
	}
	if sameLayout(dt, out.Type().Elem()) {
		if n > 0 {
			dst := unsafe.Slice((*byte)(out.UnsafePointer()), int(n)*size)
			copy(dst, data)
		}
		return nil
	}

	order := ByteOrder(dt)
	for i := 0; i < int(n); i++ {
		b := data[i*size : (i+1)*size]
		var bits uint64
		switch size {
		case 1:
			bits = uint64(b[0])
		case 2:
			bits = uint64(order.Uint16(b))
		case 4:
			bits = uint64(order.Uint32(b))
		case 8:
			bits = order.Uint64(b)
		default:
			return fmt.Errorf("unsupported element size: %d", size)
		}

		var v reflect.Value
		switch {
		case dt.Class == message.ClassFloatPoint && size == 4:
			v = reflect.ValueOf(float64(math.Float32frombits(uint32(bits))))
		case dt.Class == message.ClassFloatPoint:
			v = reflect.ValueOf(math.Float64frombits(bits))
		case dt.Signed:
			shift := 64 - 8*size
			v = reflect.ValueOf(int64(bits<<shift) >> shift)
		default:
			v = reflect.ValueOf(bits)
		}
		elem := out.Index(i)
		if !v.Type().ConvertibleTo(elem.Type()) || elem.Kind() == reflect.String {
			return fmt.Errorf("cannot convert %s to %s", v.Type(), elem.Type())
		}
		elem.Set(v.Convert(elem.Type()))
	}
	return nil
}

// sameLayout reports whether stored elements already have the memory
// layout of t, so the bytes can be copied as they are.
func sameLayout(dt *message.Datatype, t reflect.Type) bool {
	if dt.ByteOrder != message.OrderLE || uintptr(dt.Size) != t.Size() {
		return false
	}
	switch t.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return dt.Class == message.ClassFixedPoint && dt.Signed
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return dt.Class == message.ClassFixedPoint && !dt.Signed
	case reflect.Float32, reflect.Float64:
		return dt.Class == message.ClassFloatPoint
	}
	return false
}

func convertString(dt *message.Datatype, data []byte, n uint64, out reflect.Value) error {
	if out.Type().Elem().Kind() != reflect.String {
		return fmt.Errorf("cannot convert strings to %s", out.Type().Elem())
	}
	size := int(dt.Size)
	for i := 0; i < int(n) && (i+1)*size <= len(data); i++ {
		s := data[i*size : (i+1)*size]
		end := 0
		for end < len(s) && s[end] != 0 {
			end++
		}
		if dt.StringPadding == message.PadSpacePad {
			for end > 0 && s[end-1] == ' ' {
				end--
			}
		}
		out.Index(i).SetString(string(s[:end]))
	}
	return nil
}

// convertVarLenString resolves references of the form sequence length (4
// bytes), heap collection address and object index (4 bytes).
func convertVarLenString(data []byte, n uint64, out reflect.Value, reader *binary.Reader) error {
	if out.Type().Elem().Kind() != reflect.String {
		return fmt.Errorf("cannot convert strings to %s", out.Type().Elem())
	}
	offsetSize := 8
	if reader != nil {
		offsetSize = reader.OffsetSize()
	}
	refSize := 8 + offsetSize
	heaps := make(map[uint64]*heap.GlobalHeap)

	for i := 0; i < int(n) && (i+1)*refSize <= len(data); i++ {
		id, err := heap.ParseGlobalHeapID(data[i*refSize+4:(i+1)*refSize], offsetSize)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		if id.CollectionAddress == 0 {
			out.Index(i).SetString("")
			continue
		}
		if reader == nil {
			return fmt.Errorf("variable-length string at 0x%x needs a file reader", id.CollectionAddress)
		}
		gh, ok := heaps[id.CollectionAddress]
		if !ok {
			if gh, err = heap.ReadGlobalHeap(reader, id.CollectionAddress); err != nil {
				return fmt.Errorf("reading global heap at 0x%x: %w", id.CollectionAddress, err)
			}
			heaps[id.CollectionAddress] = gh
		}
		s, err := gh.GetString(uint16(id.ObjectIndex))
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		out.Index(i).SetString(s)
	}
	return nil
}
