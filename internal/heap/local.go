package heap

import (
	"bytes"
	"fmt"

	"github.com/robert-malhotra/go-uff/internal/binary"
)

// LocalHeap is the data segment of a local heap, holding the
// NUL-terminated member names of an old-style group.
type LocalHeap struct {
	data []byte
}

// ReadLocalHeap reads the local heap header at address and loads its
// data segment.
func ReadLocalHeap(r *binary.Reader, address uint64) (*LocalHeap, error) {
	hr := r.At(int64(address))
	if err := expectHeader(hr, "HEAP", 0); err != nil {
		return nil, fmt.Errorf("local heap at 0x%x: %w", address, err)
	}

	size, err := hr.ReadLength()
	if err != nil {
		return nil, err
	}
	// Free list head, unused when reading.
	if _, err := hr.ReadLength(); err != nil {
		return nil, err
	}
	dataAddr, err := hr.ReadOffset()
	if err != nil {
		return nil, err
	}

	data, err := r.At(int64(dataAddr)).ReadBytes(int(size))
	if err != nil {
		return nil, fmt.Errorf("reading local heap data: %w", err)
	}
	return &LocalHeap{data: data}, nil
}

// GetString returns the string starting at offset, or "" past the end.
func (h *LocalHeap) GetString(offset uint64) string {
	if offset >= uint64(len(h.data)) {
		return ""
	}
	return cstring(h.data[offset:])
}

// expectHeader checks a 4-byte signature and version byte, then skips
// the three reserved bytes that follow in both heap headers.
func expectHeader(r *binary.Reader, sig string, version uint8) error {
	got, err := r.ReadBytes(4)
	if err != nil {
		return err
	}
	if string(got) != sig {
		return fmt.Errorf("invalid signature %q, expected %q", got, sig)
	}
	v, err := r.ReadUint8()
	if err != nil {
		return err
	}
	if v != version {
		return fmt.Errorf("unsupported version %d", v)
	}
	r.Skip(3)
	return nil
}

func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
