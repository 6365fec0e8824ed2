package message

import (
	"fmt"

	"github.com/robert-malhotra/go-uff/internal/binary"
)

// ieeeProperties holds the 12-byte float property block: bit offset, bit
// precision, exponent location and size, mantissa location and size, and
// exponent bias.
var ieeeProperties = map[uint32][]byte{
	4: {0, 0, 32, 0, 23, 8, 0, 23, 127, 0, 0, 0},
	8: {0, 0, 64, 0, 52, 11, 0, 52, 255, 3, 0, 0},
}

// Serialize writes a version 1 datatype message. Only the classes the
// writer produces are supported: fixed-point, floating-point and
// fixed-length strings.
func (m *Datatype) Serialize(w *binary.Writer) error {
	if err := w.WriteUint8(uint8(m.Class) | 1<<4); err != nil {
		return err
	}
	bits := []byte{byte(m.ClassBits), byte(m.ClassBits >> 8), byte(m.ClassBits >> 16)}
	if err := w.WriteBytes(bits); err != nil {
		return err
	}
	if err := w.WriteUint32(m.Size); err != nil {
		return err
	}

	switch m.Class {
	case ClassFixedPoint:
		if err := w.WriteUint16(m.BitOffset); err != nil {
			return err
		}
		return w.WriteUint16(m.BitPrecision)
	case ClassFloatPoint:
		props := m.Properties
		if len(props) < 12 {
			props = ieeeProperties[m.Size]
		}
		if props == nil {
			return fmt.Errorf("no float properties for %d-byte type", m.Size)
		}
		return w.WriteBytes(props[:12])
	case ClassString:
		return nil
	default:
		return fmt.Errorf("cannot serialize datatype class %d", m.Class)
	}
}

// SerializedSize returns the encoded size of the message.
func (m *Datatype) SerializedSize(w *binary.Writer) int {
	switch m.Class {
	case ClassFixedPoint:
		return 12
	case ClassFloatPoint:
		return 20
	default:
		return 8
	}
}

// NewFixedPointDatatype creates an integer datatype.
func NewFixedPointDatatype(size uint32, signed bool, byteOrder ByteOrder) *Datatype {
	classBits := uint32(byteOrder)
	if signed {
		classBits |= 0x08
	}
	return &Datatype{
		Class:        ClassFixedPoint,
		ClassBits:    classBits,
		Size:         size,
		ByteOrder:    byteOrder,
		BitPrecision: uint16(size * 8),
		Signed:       signed,
	}
}

// NewFloatDatatype creates an IEEE 754 datatype of 4 or 8 bytes. The class
// bits carry the byte order, mantissa normalization (bit 5) and the sign
// bit location (second byte), matching what h5py writes.
func NewFloatDatatype(size uint32, byteOrder ByteOrder) *Datatype {
	sign := size*8 - 1
	return &Datatype{
		Class:      ClassFloatPoint,
		ClassBits:  uint32(byteOrder) | 1<<5 | sign<<8,
		Size:       size,
		ByteOrder:  byteOrder,
		Properties: ieeeProperties[size],
	}
}

// NewStringDatatype creates a fixed-length string datatype.
func NewStringDatatype(size uint32, padding StringPadding, charset CharacterSet) *Datatype {
	return &Datatype{
		Class:         ClassString,
		ClassBits:     uint32(padding) | uint32(charset)<<4,
		Size:          size,
		StringPadding: padding,
		CharSet:       charset,
	}
}
