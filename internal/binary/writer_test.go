package binary

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// sink is a growable io.WriterAt.
type sink struct{ buf []byte }

func (s *sink) WriteAt(p []byte, off int64) (int, error) {
	if end := int(off) + len(p); end > len(s.buf) {
		s.buf = append(s.buf, make([]byte, end-len(s.buf))...)
	}
	return copy(s.buf[off:], p), nil
}

func TestWriterRoundTrip(t *testing.T) {
	out := &sink{}
	w := NewWriter(out, le8)
	w.WriteUint8(0xAB)
	w.WriteUint16(0x1234)
	w.WriteUint32(0xDEADBEEF)
	w.WriteUint64(0x123456789ABCDEF0)
	w.WriteOffset(0xCAFEBABE)
	w.WriteLength(42)
	if w.Pos() != 1+2+4+8+8+8 {
		t.Fatalf("Pos = %d", w.Pos())
	}

	r := NewReader(bytes.NewReader(out.buf), le8)
	v8, _ := r.ReadUint8()
	v16, _ := r.ReadUint16()
	v32, _ := r.ReadUint32()
	v64, _ := r.ReadUint64()
	off, _ := r.ReadOffset()
	length, _ := r.ReadLength()
	if v8 != 0xAB || v16 != 0x1234 || v32 != 0xDEADBEEF || v64 != 0x123456789ABCDEF0 || off != 0xCAFEBABE || length != 42 {
		t.Errorf("read back %x %x %x %x %x %d", v8, v16, v32, v64, off, length)
	}
}

func TestWriterSmallOffsets(t *testing.T) {
	out := &sink{}
	w := NewWriter(out, Config{ByteOrder: binary.LittleEndian, OffsetSize: 4, LengthSize: 2})
	w.WriteOffset(w.UndefinedOffset())
	w.WriteLength(0x0102)
	want := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x02, 0x01}
	if !bytes.Equal(out.buf, want) {
		t.Errorf("wrote %v, want %v", out.buf, want)
	}
}

func TestWriterPositioning(t *testing.T) {
	out := &sink{}
	w := NewWriter(out, le8)
	w.At(4).WriteUint8(7)
	if w.Pos() != 0 {
		t.Errorf("At moved the parent to %d", w.Pos())
	}
	w.Skip(5)
	w.Align(8)
	w.WriteUint8(9)
	if !bytes.Equal(out.buf, []byte{0, 0, 0, 0, 7, 0, 0, 0, 9}) {
		t.Errorf("buffer %v", out.buf)
	}
}

func TestWriterBigEndian(t *testing.T) {
	out := &sink{}
	w := NewWriter(out, Config{ByteOrder: binary.BigEndian, OffsetSize: 8, LengthSize: 8})
	w.WriteUint32(0x12345678)
	if !bytes.Equal(out.buf, []byte{0x12, 0x34, 0x56, 0x78}) {
		t.Errorf("wrote %v", out.buf)
	}
}
