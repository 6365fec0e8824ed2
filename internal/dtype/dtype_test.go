package dtype

import (
	"reflect"
	"testing"

	"github.com/robert-malhotra/go-uff/internal/message"
)

func fixed(size uint32, signed bool, order message.ByteOrder) *message.Datatype {
	return &message.Datatype{Class: message.ClassFixedPoint, Size: size, Signed: signed, ByteOrder: order}
}

func TestGoType(t *testing.T) {
	tests := []struct {
		name string
		dt   *message.Datatype
		want reflect.Type
	}{
		{"int8", fixed(1, true, message.OrderLE), reflect.TypeOf(int8(0))},
		{"uint16", fixed(2, false, message.OrderLE), reflect.TypeOf(uint16(0))},
		{"int64", fixed(8, true, message.OrderBE), reflect.TypeOf(int64(0))},
		{"float32", &message.Datatype{Class: message.ClassFloatPoint, Size: 4}, reflect.TypeOf(float32(0))},
		{"float64", &message.Datatype{Class: message.ClassFloatPoint, Size: 8}, reflect.TypeOf(float64(0))},
		{"enum", &message.Datatype{Class: message.ClassEnum, Size: 1, Signed: true}, reflect.TypeOf(int8(0))},
		{"bitfield", &message.Datatype{Class: message.ClassBitfield, Size: 4}, reflect.TypeOf(uint32(0))},
		{"string", &message.Datatype{Class: message.ClassString, Size: 10}, reflect.TypeOf("")},
		{"varlen string", &message.Datatype{Class: message.ClassVarLen, IsVarLenString: true}, reflect.TypeOf("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GoType(tt.dt)
			if err != nil {
				t.Fatalf("GoType failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	for _, dt := range []*message.Datatype{
		nil,
		{Class: message.ClassCompound, Size: 16},
		{Class: message.ClassVarLen},
		{Class: message.ClassFloatPoint, Size: 2},
	} {
		if _, err := GoType(dt); err == nil {
			t.Errorf("expected error for %+v", dt)
		}
	}
}

func TestConvertNative(t *testing.T) {
	data := []byte{1, 0, 0, 0, 0xfe, 0xff, 0xff, 0xff}
	var got []int32
	if err := Convert(fixed(4, true, message.OrderLE), data, 2, &got); err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != -2 {
		t.Errorf("got %v", got)
	}

	floats := []byte{0, 0, 0, 0, 0, 0, 0xf8, 0x3f, 0, 0, 0, 0, 0, 0, 0x04, 0x40}
	var f []float64
	if err := Convert(&message.Datatype{Class: message.ClassFloatPoint, Size: 8}, floats, 2, &f); err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if f[0] != 1.5 || f[1] != 2.5 {
		t.Errorf("got %v", f)
	}
}

func TestConvertWidens(t *testing.T) {
	tests := []struct {
		name string
		dt   *message.Datatype
		data []byte
		want []float64
	}{
		{"int8 sign extends", fixed(1, true, message.OrderLE), []byte{0xff, 0x7f}, []float64{-1, 127}},
		{"uint8", fixed(1, false, message.OrderLE), []byte{0xff}, []float64{255}},
		{"big-endian int16", fixed(2, true, message.OrderBE), []byte{0xff, 0xfe, 0x01, 0x00}, []float64{-2, 256}},
		{"float32", &message.Datatype{Class: message.ClassFloatPoint, Size: 4}, []byte{0, 0, 0xc0, 0x3f}, []float64{1.5}},
		{"enum", &message.Datatype{Class: message.ClassEnum, Size: 1}, []byte{7}, []float64{7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []float64
			if err := Convert(tt.dt, tt.data, uint64(len(tt.want)), &got); err != nil {
				t.Fatalf("Convert failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestConvertString(t *testing.T) {
	data := []byte("hello\x00\x00\x00ab\x00\x00\x00\x00\x00\x00")
	var got []string
	if err := Convert(&message.Datatype{Class: message.ClassString, Size: 8}, data, 2, &got); err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"hello", "ab"}) {
		t.Errorf("got %q", got)
	}

	padded := &message.Datatype{Class: message.ClassString, Size: 6, StringPadding: message.PadSpacePad}
	if err := Convert(padded, []byte("uff   "), 1, &got); err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if got[0] != "uff" {
		t.Errorf("space padding kept: %q", got[0])
	}
}

func TestConvertErrors(t *testing.T) {
	var floats []float64
	var strs []string
	var scalar float64
	tests := []struct {
		name string
		dt   *message.Datatype
		data []byte
		dest interface{}
	}{
		{"compound", &message.Datatype{Class: message.ClassCompound, Size: 8}, make([]byte, 8), &floats},
		{"not a slice", fixed(1, false, message.OrderLE), []byte{1}, &scalar},
		{"short data", fixed(4, true, message.OrderLE), []byte{1, 2}, &floats},
		{"number into string", fixed(1, false, message.OrderLE), []byte{65}, &strs},
		{"string into number", &message.Datatype{Class: message.ClassString, Size: 1}, []byte("a"), &floats},
	}
	for _, tt := range tests {
		if err := Convert(tt.dt, tt.data, 1, tt.dest); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	dt, err := GoTypeToDatatype(reflect.TypeOf([]float32{}))
	if err != nil {
		t.Fatalf("GoTypeToDatatype failed: %v", err)
	}
	raw, err := Encode(dt, []float32{1.5, -2})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(raw) != 8 {
		t.Fatalf("expected 8 bytes, got %d", len(raw))
	}

	var got []float32
	if err := Convert(dt, raw, 2, &got); err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if got[0] != 1.5 || got[1] != -2 {
		t.Errorf("round trip gave %v", got)
	}

	raw, err = Encode(message.NewFixedPointDatatype(2, true, message.OrderBE), int16(-2))
	if err != nil {
		t.Fatalf("Encode scalar failed: %v", err)
	}
	if raw[0] != 0xff || raw[1] != 0xfe {
		t.Errorf("big-endian int16 encoded as % x", raw)
	}
}

func TestEncodeRejectsMismatchedKinds(t *testing.T) {
	if _, err := Encode(message.NewFloatDatatype(8, message.OrderLE), []int32{1}); err == nil {
		t.Error("expected error encoding ints as float")
	}
	if _, err := Encode(message.NewFixedPointDatatype(4, true, message.OrderLE), []float64{1}); err == nil {
		t.Error("expected error encoding floats as fixed-point")
	}
	if _, err := Encode(&message.Datatype{Class: message.ClassString, Size: 4}, []string{"a"}); err == nil {
		t.Error("expected error encoding a string datatype")
	}
}

func TestGoTypeToDatatypeRejectsStrings(t *testing.T) {
	for _, v := range []interface{}{"a", []string{"a"}, struct{}{}} {
		if _, err := GoTypeToDatatype(reflect.TypeOf(v)); err == nil {
			t.Errorf("expected error for %T", v)
		}
	}
}
