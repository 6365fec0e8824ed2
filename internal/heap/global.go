package heap

import (
	"encoding/binary"
	"fmt"

	binpkg "github.com/robert-malhotra/go-uff/internal/binary"
)

// GlobalHeap is one global heap collection: its objects keyed by index.
type GlobalHeap struct {
	objects map[uint16][]byte
}

// GlobalHeapID addresses an object inside a collection.
type GlobalHeapID struct {
	CollectionAddress uint64
	ObjectIndex       uint32
}

// ReadGlobalHeap reads the collection at address. Objects are read in
// order until the free-space object (index 0) or the end of the
// collection.
func ReadGlobalHeap(r *binpkg.Reader, address uint64) (*GlobalHeap, error) {
	if address == 0 || r.IsUndefinedOffset(address) {
		return nil, fmt.Errorf("invalid global heap address 0x%x", address)
	}
	hr := r.At(int64(address))
	if err := expectHeader(hr, "GCOL", 1); err != nil {
		return nil, fmt.Errorf("global heap at 0x%x: %w", address, err)
	}
	size, err := hr.ReadLength()
	if err != nil {
		return nil, err
	}

	h := &GlobalHeap{objects: make(map[uint16][]byte)}
	end := int64(address) + int64(size)
	objHeader := int64(8 + r.LengthSize())
	for hr.Pos()+objHeader <= end {
		index, err := hr.ReadUint16()
		if err != nil || index == 0 {
			break
		}
		hr.Skip(6) // reference count and reserved
		n, err := hr.ReadLength()
		if err != nil {
			break
		}
		data, err := hr.ReadBytes(int(n))
		if err != nil {
			break
		}
		h.objects[index] = data
		hr.Skip(int64(-n & 7)) // objects are padded to 8 bytes
	}
	return h, nil
}

// GetString returns object index as a string, cut at the first NUL.
func (h *GlobalHeap) GetString(index uint16) (string, error) {
	if h == nil {
		return "", fmt.Errorf("nil global heap")
	}
	data, ok := h.objects[index]
	if !ok {
		return "", fmt.Errorf("object index %d not found in global heap", index)
	}
	return cstring(data), nil
}

// ParseGlobalHeapID decodes a little-endian collection address of
// offsetSize bytes followed by a 4-byte object index.
func ParseGlobalHeapID(data []byte, offsetSize int) (GlobalHeapID, error) {
	if offsetSize != 2 && offsetSize != 4 && offsetSize != 8 {
		return GlobalHeapID{}, fmt.Errorf("unsupported offset size: %d", offsetSize)
	}
	if len(data) < offsetSize+4 {
		return GlobalHeapID{}, fmt.Errorf("global heap ID too short: need %d bytes, have %d", offsetSize+4, len(data))
	}
	var addr uint64
	for i := offsetSize - 1; i >= 0; i-- {
		addr = addr<<8 | uint64(data[i])
	}
	return GlobalHeapID{
		CollectionAddress: addr,
		ObjectIndex:       binary.LittleEndian.Uint32(data[offsetSize:]),
	}, nil
}
