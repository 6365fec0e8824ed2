// Package binary reads and writes the fixed and variable width integers that
// HDF5 structures are built from.
package binary

import (
	"encoding/binary"
	"io"
)

// Config holds the integer layout of a file, taken from its superblock.
type Config struct {
	ByteOrder  binary.ByteOrder
	OffsetSize int // width of file addresses: 2, 4 or 8
	LengthSize int // width of sizes: 2, 4 or 8
}

// Reader reads sequentially from a position in an io.ReaderAt. Readers
// derived with At share the source but move independently.
type Reader struct {
	src io.ReaderAt
	cfg Config
	pos int64
}

// NewReader returns a reader positioned at the start of r.
func NewReader(r io.ReaderAt, cfg Config) *Reader {
	return &Reader{src: r, cfg: cfg}
}

// At returns a copy of the reader positioned at offset.
func (r *Reader) At(offset int64) *Reader {
	c := *r
	c.pos = offset
	return &c
}

func (r *Reader) Pos() int64                  { return r.pos }
func (r *Reader) Skip(n int64)                { r.pos += n }
func (r *Reader) Align(n int64)               { r.pos = alignUp(r.pos, n) }
func (r *Reader) OffsetSize() int             { return r.cfg.OffsetSize }
func (r *Reader) LengthSize() int             { return r.cfg.LengthSize }
func (r *Reader) ByteOrder() binary.ByteOrder { return r.cfg.ByteOrder }

// Peek reads n bytes without moving.
func (r *Reader) Peek(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := r.src.ReadAt(buf, r.pos); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadBytes reads exactly n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	buf, err := r.Peek(n)
	if err != nil {
		return nil, err
	}
	r.pos += int64(len(buf))
	return buf, nil
}

// ReadUintN reads an n byte unsigned integer.
func (r *Reader) ReadUintN(n int) (uint64, error) {
	buf, err := r.ReadBytes(n)
	if err != nil {
		return 0, err
	}
	return decodeUint(r.cfg.ByteOrder, buf), nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	v, err := r.ReadUintN(1)
	return uint8(v), err
}

func (r *Reader) ReadUint16() (uint16, error) {
	v, err := r.ReadUintN(2)
	return uint16(v), err
}

func (r *Reader) ReadUint32() (uint32, error) {
	v, err := r.ReadUintN(4)
	return uint32(v), err
}

func (r *Reader) ReadUint64() (uint64, error) { return r.ReadUintN(8) }

// ReadOffset reads a file address.
func (r *Reader) ReadOffset() (uint64, error) { return r.ReadUintN(r.cfg.OffsetSize) }

// ReadLength reads a size field.
func (r *Reader) ReadLength() (uint64, error) { return r.ReadUintN(r.cfg.LengthSize) }

// IsUndefinedOffset reports whether v is the all-ones address that marks an
// unset link in the file.
func (r *Reader) IsUndefinedOffset(v uint64) bool { return v == undefined(r.cfg.OffsetSize) }

// undefined returns the all-ones value of an n byte field.
func undefined(n int) uint64 {
	if n >= 8 {
		return ^uint64(0)
	}
	return 1<<(8*uint(n)) - 1
}

func decodeUint(order binary.ByteOrder, buf []byte) uint64 {
	switch len(buf) {
	case 1:
		return uint64(buf[0])
	case 2:
		return uint64(order.Uint16(buf))
	case 4:
		return uint64(order.Uint32(buf))
	case 8:
		return order.Uint64(buf)
	}
	// Odd widths only occur in little-endian files.
	var v uint64
	for i := len(buf) - 1; i >= 0; i-- {
		v = v<<8 | uint64(buf[i])
	}
	return v
}

func alignUp(pos, n int64) int64 {
	if n <= 1 {
		return pos
	}
	if rem := pos % n; rem != 0 {
		pos += n - rem
	}
	return pos
}
