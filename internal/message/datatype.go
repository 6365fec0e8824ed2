package message

import (
	"encoding/binary"
	"fmt"

	binpkg "github.com/robert-malhotra/go-uff/internal/binary"
)

// DatatypeClass is the class field of a datatype message.
type DatatypeClass uint8

const (
	ClassFixedPoint DatatypeClass = 0
	ClassFloatPoint DatatypeClass = 1
	ClassTime       DatatypeClass = 2
	ClassString     DatatypeClass = 3
	ClassBitfield   DatatypeClass = 4
	ClassOpaque     DatatypeClass = 5
	ClassCompound   DatatypeClass = 6
	ClassReference  DatatypeClass = 7
	ClassEnum       DatatypeClass = 8
	ClassVarLen     DatatypeClass = 9
	ClassArray      DatatypeClass = 10
)

// ByteOrder of a numeric datatype.
type ByteOrder uint8

const (
	OrderLE ByteOrder = 0
	OrderBE ByteOrder = 1
)

// StringPadding says how a fixed-length string fills unused bytes.
type StringPadding uint8

const (
	PadNullTerm StringPadding = 0
	PadNullPad  StringPadding = 1
	PadSpacePad StringPadding = 2
)

// CharacterSet is the encoding of string data.
type CharacterSet uint8

const (
	CharsetASCII CharacterSet = 0
	CharsetUTF8  CharacterSet = 1
)

// Datatype is a datatype message (type 0x0003). Only the classes UFF
// payloads use are decoded in detail: numbers, enumerations over integers,
// bitfields and strings. Other classes keep their class and size so a
// reader can report them.
type Datatype struct {
	Class     DatatypeClass
	ClassBits uint32
	Size      uint32
	ByteOrder ByteOrder

	// Integers, and the base type of an enumeration.
	BitOffset    uint16
	BitPrecision uint16
	Signed       bool

	StringPadding  StringPadding
	CharSet        CharacterSet
	IsVarLenString bool

	// Float property block, kept verbatim for rewriting.
	Properties []byte
}

func (m *Datatype) Type() Type { return TypeDatatype }

// IsInteger reports whether the datatype is a fixed-point integer.
func (m *Datatype) IsInteger() bool {
	return m.Class == ClassFixedPoint
}

// IsFloat reports whether the datatype is an IEEE float.
func (m *Datatype) IsFloat() bool {
	return m.Class == ClassFloatPoint
}

func parseDatatype(data []byte, r *binpkg.Reader) (*Datatype, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("datatype message too short")
	}

	bits := uint32(data[1]) | uint32(data[2])<<8 | uint32(data[3])<<16
	dt := &Datatype{
		Class:     DatatypeClass(data[0] & 0x0f),
		ClassBits: bits,
		Size:      binary.LittleEndian.Uint32(data[4:8]),
	}
	props := data[8:]

	switch dt.Class {
	case ClassFixedPoint, ClassBitfield:
		dt.ByteOrder = ByteOrder(bits & 0x01)
		dt.Signed = dt.Class == ClassFixedPoint && bits&0x08 != 0
		if len(props) >= 4 {
			dt.BitOffset = binary.LittleEndian.Uint16(props[0:2])
			dt.BitPrecision = binary.LittleEndian.Uint16(props[2:4])
		}
	case ClassFloatPoint:
		dt.ByteOrder = ByteOrder(bits & 0x01)
		if len(props) >= 12 {
			dt.Properties = props[:12]
		}
	case ClassString:
		dt.StringPadding = StringPadding(bits & 0x0f)
		dt.CharSet = CharacterSet((bits >> 4) & 0x0f)
	case ClassVarLen:
		dt.IsVarLenString = bits&0x0f == 1
		dt.CharSet = CharacterSet((bits >> 8) & 0x0f)
	case ClassEnum:
		// The base integer type leads the property list.
		base, err := parseDatatype(props, r)
		if err != nil {
			return nil, fmt.Errorf("enumeration base type: %w", err)
		}
		dt.ByteOrder = base.ByteOrder
		dt.Signed = base.Signed
		dt.BitPrecision = base.BitPrecision
	}

	return dt, nil
}
