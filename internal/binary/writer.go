package binary

import (
	"encoding/binary"
	"io"
)

// Writer is the write-side counterpart of Reader.
type Writer struct {
	dst io.WriterAt
	cfg Config
	pos int64
}

// NewWriter returns a writer positioned at the start of w.
func NewWriter(w io.WriterAt, cfg Config) *Writer {
	return &Writer{dst: w, cfg: cfg}
}

// At returns a copy of the writer positioned at offset.
func (w *Writer) At(offset int64) *Writer {
	c := *w
	c.pos = offset
	return &c
}

func (w *Writer) Pos() int64                  { return w.pos }
func (w *Writer) Skip(n int64)                { w.pos += n }
func (w *Writer) Align(n int64)               { w.pos = alignUp(w.pos, n) }
func (w *Writer) OffsetSize() int             { return w.cfg.OffsetSize }
func (w *Writer) LengthSize() int             { return w.cfg.LengthSize }
func (w *Writer) ByteOrder() binary.ByteOrder { return w.cfg.ByteOrder }

// UndefinedOffset returns the all-ones address for the configured width.
func (w *Writer) UndefinedOffset() uint64 { return undefined(w.cfg.OffsetSize) }

// WriteBytes writes data at the current position.
func (w *Writer) WriteBytes(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	n, err := w.dst.WriteAt(data, w.pos)
	w.pos += int64(n)
	return err
}

// WriteUintN writes v as an n byte unsigned integer.
func (w *Writer) WriteUintN(v uint64, n int) error {
	buf := make([]byte, n)
	encodeUint(w.cfg.ByteOrder, buf, v)
	return w.WriteBytes(buf)
}

func (w *Writer) WriteUint8(v uint8) error   { return w.WriteUintN(uint64(v), 1) }
func (w *Writer) WriteUint16(v uint16) error { return w.WriteUintN(uint64(v), 2) }
func (w *Writer) WriteUint32(v uint32) error { return w.WriteUintN(uint64(v), 4) }
func (w *Writer) WriteUint64(v uint64) error { return w.WriteUintN(v, 8) }

// WriteOffset writes a file address.
func (w *Writer) WriteOffset(v uint64) error { return w.WriteUintN(v, w.cfg.OffsetSize) }

// WriteLength writes a size field.
func (w *Writer) WriteLength(v uint64) error { return w.WriteUintN(v, w.cfg.LengthSize) }

func encodeUint(order binary.ByteOrder, buf []byte, v uint64) {
	switch len(buf) {
	case 1:
		buf[0] = uint8(v)
	case 2:
		order.PutUint16(buf, uint16(v))
	case 4:
		order.PutUint32(buf, uint32(v))
	case 8:
		order.PutUint64(buf, v)
	default:
		for i := range buf {
			buf[i] = byte(v >> (8 * i))
		}
	}
}
